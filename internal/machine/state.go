package machine

// state.go assembles the machine from its smaller parts: heap, register
// file, environment stack, PDL and code store.

import (
	"fmt"
	"strings"

	"github.com/smoynes/wam/internal/cell"
	"github.com/smoynes/wam/internal/log"
)

// Mode is the structure-matching sub-protocol that follows a GetStructure
// instruction.
type Mode uint8

const (
	// Read mode decomposes an existing structure: UnifyVariable/UnifyValue
	// pull values out of the heap at S.
	Read Mode = iota
	// Write mode constructs a new structure: UnifyVariable/UnifyValue
	// append new cells to the heap.
	Write
)

func (m Mode) String() string {
	if m == Read {
		return "READ"
	}

	return "WRITE"
}

// regSlot holds an optional register cell, so that reading an X register
// that was never written is detectable (register-underflow, spec.md §7).
type regSlot struct {
	set  bool
	cell cell.Cell
}

// Machine is the abstract machine: a heap of tagged cells, an X/Y register
// file, an environment stack, a unification work list (PDL) and a code
// store, exactly as described in spec.md §3.
type Machine struct {
	heap  []cell.Cell // Grows only at the tail; H == len(heap).
	x     []regSlot   // Temporary registers X(1..), 0-index unused.
	stack []cell.Cell // Environment frames; flat, addressed by index.
	pdl   []cell.Addr // Unification work list (LIFO).

	code *CodeStore

	// Control registers.
	P, CP int // Program counter, continuation program counter.
	S     int // Subterm pointer, used during structure matching.
	E     int // Base of the current environment frame, or 0 for none.

	mode Mode
	fail bool

	log *log.Logger
}

// New creates a fresh, empty machine.
func New(opts ...Option) *Machine {
	m := &Machine{
		heap:  make([]cell.Cell, 0, 64),
		x:     make([]regSlot, 1, 16),   // index 0 unused; X is 1-indexed.
		stack: make([]cell.Cell, 1, 64), // index 0 unused; E == 0 means "no frame".
		code:  NewCodeStore(),
		log:   log.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithLogger overrides the machine's logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) { m.log = l }
}

func (m *Machine) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "P: %d CP: %d S: %d E: %d MODE: %s FAIL: %t\n",
		m.P, m.CP, m.S, m.E, m.mode, m.fail)
	fmt.Fprintf(&b, "H: %d heap: %v\n", len(m.heap), m.heap)

	return b.String()
}

// H returns the index of the next free heap slot.
func (m *Machine) H() int { return len(m.heap) }

// Heap returns the cell at heap index i.
func (m *Machine) Heap(i int) cell.Cell { return m.heap[i] }

// pushHeap appends a cell to the heap and returns its index.
func (m *Machine) pushHeap(c cell.Cell) int {
	m.heap = append(m.heap, c)

	return len(m.heap) - 1
}

// setHeap overwrites an existing heap cell; used only by bind, which mutates
// cells in place and never appends (spec.md §3 invariants).
func (m *Machine) setHeap(i int, c cell.Cell) {
	m.heap[i] = c
}

// GetX returns the cell held in temporary register i, or a register-underflow
// error if it was never written.
func (m *Machine) GetX(i int) (cell.Cell, error) {
	if i <= 0 || i >= len(m.x) || !m.x[i].set {
		return cell.Cell{}, fmt.Errorf("%w: X%d", ErrRegisterUnderflow, i)
	}

	return m.x[i].cell, nil
}

// SetX stores a cell in temporary register i, growing the register file as
// needed.
func (m *Machine) SetX(i int, c cell.Cell) {
	for i >= len(m.x) {
		m.x = append(m.x, regSlot{})
	}

	m.x[i] = regSlot{set: true, cell: c}
}

// GetY returns the cell held in permanent register i of the current
// environment frame.
func (m *Machine) GetY(i int) (cell.Cell, error) {
	if m.E == 0 {
		return cell.Cell{}, fmt.Errorf("%w: Y%d: no environment", ErrRegisterUnderflow, i)
	}

	idx := m.E + 3 + (i - 1)
	if idx >= len(m.stack) {
		return cell.Cell{}, fmt.Errorf("%w: Y%d", ErrRegisterUnderflow, i)
	}

	return m.stack[idx], nil
}

// SetY stores a cell in permanent register i of the current environment
// frame.
func (m *Machine) SetY(i int, c cell.Cell) {
	idx := m.E + 3 + (i - 1)
	for idx >= len(m.stack) {
		m.stack = append(m.stack, cell.Cell{})
	}

	m.stack[idx] = c
}

// Get reads the cell at a store address, whichever store it names.
func (m *Machine) Get(a cell.Addr) (cell.Cell, error) {
	if a.IsHeap() {
		if a.Heap < 0 || a.Heap >= len(m.heap) {
			return cell.Cell{}, fmt.Errorf("%w: heap index %d", ErrInvalidCell, a.Heap)
		}

		return m.heap[a.Heap], nil
	}

	if a.Reg.IsPerm() {
		return m.GetY(a.Reg.N)
	}

	return m.GetX(a.Reg.N)
}

// Set writes the cell at a store address, whichever store it names. Writing
// to the heap through Set only ever mutates a cell already present
// (binding); new heap cells are appended through pushHeap.
func (m *Machine) Set(a cell.Addr, c cell.Cell) {
	if a.IsHeap() {
		m.setHeap(a.Heap, c)
		return
	}

	if a.Reg.IsPerm() {
		m.SetY(a.Reg.N, c)
		return
	}

	m.SetX(a.Reg.N, c)
}

// Code returns the machine's code store.
func (m *Machine) Code() *CodeStore { return m.code }

// Load appends a compiled instruction stream to the code store under the
// given functor, recording its entry address.
func (m *Machine) Load(f cell.Functor, instrs []Instruction) {
	m.code.Load(f, instrs)
}

// Failed reports whether the last unification failed.
func (m *Machine) Failed() bool { return m.fail }

// allocateFrame pushes a new environment frame of n permanent-variable
// slots, per spec.md §4.7.
func (m *Machine) allocateFrame(n int) {
	base := len(m.stack)

	m.stack = append(m.stack, cell.Cell{Tag: cell.RefTag, Ref: m.E})  // previous E
	m.stack = append(m.stack, cell.Cell{Tag: cell.RefTag, Ref: m.CP}) // saved CP
	m.stack = append(m.stack, cell.Cell{Tag: cell.RefTag, Ref: n})    // permanent count

	for i := 0; i < n; i++ {
		m.stack = append(m.stack, cell.Cell{})
	}

	m.E = base
}

// deallocateFrame restores P and E from the current frame, per spec.md
// §4.4's instruction table: the saved continuation becomes the live program
// counter directly, so a rule's last body goal returns all the way to
// whoever called the rule rather than merely to the rule's own Deallocate.
func (m *Machine) deallocateFrame() {
	cp := m.stack[m.E+1].Ref
	m.E = m.stack[m.E].Ref
	m.CP = cp
	m.P = cp
}
