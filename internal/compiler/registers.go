package compiler

// registers.go tracks register assignment during term compilation: which
// temporary register a variable or subterm has been given, and the next
// free temporary.

import (
	"github.com/smoynes/wam/internal/cell"
	"github.com/smoynes/wam/internal/term"
)

// registers allocates fresh temporary (X) registers for a single goal's
// argument and structure layout, starting just past the goal's own argument
// registers, per spec.md §4.5's numbering rule.
type registers struct {
	next int
	temp map[string]cell.Reg
}

func newRegisters(argc int) *registers {
	return &registers{
		next: argc + 1,
		temp: make(map[string]cell.Reg),
	}
}

// fresh allocates and returns the next unused temporary register.
func (r *registers) fresh() cell.Reg {
	reg := cell.X(r.next)
	r.next++

	return reg
}

// lookup returns the register already assigned to a temporary variable, if
// any.
func (r *registers) lookup(name string) (cell.Reg, bool) {
	reg, ok := r.temp[name]
	return reg, ok
}

// assign records that a temporary variable now lives in reg.
func (r *registers) assign(name string, reg cell.Reg) {
	r.temp[name] = reg
}

// pending is one entry in the breadth-first worklist used by structure
// decomposition (fact/head compilation): a non-variable argument that was
// given a placeholder register via UnifyVariable and whose own
// GetStructure/Unify* sequence is emitted only once every sibling argument
// in the current structure has been handled, per spec.md §4.6 (scenario 6).
type pending struct {
	term term.Term
	reg  int
}
