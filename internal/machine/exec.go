package machine

// exec.go defines the instruction executor: Step runs one instruction to
// completion, Run drives Step from a functor's entry address until control
// returns to the top level, per spec.md §2 item 4.

import (
	"fmt"

	"github.com/smoynes/wam/internal/cell"
)

// Run executes the compiled instruction stream for functor f from its
// entry address until control returns to the top level, or a structural
// error occurs. Run does not itself report unification failure as an
// error; call Failed afterwards.
//
// The top-level return address is fixed at the code address one past
// everything currently loaded, an address no Call inside the program can
// ever legitimately target, so reaching it again via Proceed or Deallocate
// unambiguously means f (and everything it called) is done.
// A query compiled per spec.md §4.5 ends in its own Call, so by convention
// it must be the last clause loaded before Run is invoked on it: that
// Call's saved continuation then lands on exactly this address too.
func (m *Machine) Run(f cell.Functor) error {
	entry, err := m.code.Entry(f)
	if err != nil {
		return err
	}

	halt := m.code.Len()

	m.P = entry
	m.CP = halt
	m.fail = false

	m.log.Info("run", "functor", f.String())

	for m.P != halt {
		if err := m.Step(); err != nil {
			return fmt.Errorf("exec: %w", err)
		}

		if m.fail {
			m.log.Debug("unification failed", "P", m.P)
			return nil
		}
	}

	return nil
}

// Step executes a single instruction at P and advances P, unless the
// instruction jumps (Call, Proceed, Deallocate), in which case it has
// already set P itself.
func (m *Machine) Step() error {
	instr, err := m.code.At(m.P)
	if err != nil {
		return err
	}

	m.log.Debug("step", "P", m.P, "instr", instr.String(), "mode", m.mode)

	if err := instr.Execute(m); err != nil {
		return err
	}

	if _, ok := instr.(jumps); !ok {
		m.P++
	}

	return nil
}
