package machine

// code.go holds the code store: a linear instruction vector plus a map
// from functor to entry address, spec.md §2 item 5.

import (
	"fmt"

	"github.com/smoynes/wam/internal/cell"
)

// CodeStore is a linear instruction vector plus a map of functor to entry
// address, analogous to an object-code loader's symbol table.
type CodeStore struct {
	instrs  []Instruction
	entries map[cell.Functor]int
}

// NewCodeStore creates an empty code store.
func NewCodeStore() *CodeStore {
	return &CodeStore{
		entries: make(map[cell.Functor]int),
	}
}

// Load appends instrs to the code area and records f's entry address as the
// index of the first instruction.
func (c *CodeStore) Load(f cell.Functor, instrs []Instruction) {
	entry := len(c.instrs)
	c.entries[f] = entry
	c.instrs = append(c.instrs, instrs...)
}

// Entry returns the entry address for f, or an unknown-functor error.
func (c *CodeStore) Entry(f cell.Functor) (int, error) {
	addr, ok := c.entries[f]
	if !ok {
		return 0, &UnknownFunctorError{Functor: f}
	}

	return addr, nil
}

// At returns the instruction at code address p.
func (c *CodeStore) At(p int) (Instruction, error) {
	if p < 0 || p >= len(c.instrs) {
		return nil, fmt.Errorf("%w: code address %d", ErrInvalidCell, p)
	}

	return c.instrs[p], nil
}

// Len returns the number of instructions loaded.
func (c *CodeStore) Len() int { return len(c.instrs) }
