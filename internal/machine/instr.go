package machine

// instr.go defines the 14-instruction abstract-machine instruction set and
// its execution semantics, spec.md §4.4. Each instruction is a small value
// type implementing Instruction, dispatched by the executor in exec.go —
// the same "one type per opcode, one Execute method" shape the teacher
// uses for its CPU operations (see the elsie lineage's BR/AND/ADD family).

import (
	"fmt"

	"github.com/smoynes/wam/internal/cell"
)

// Instruction is a single abstract-machine operation. Execute performs the
// operation against m, returning a structural error if one occurs.
// Unification failure is communicated through m.fail, not through the
// returned error — see spec.md §7.
type Instruction interface {
	Execute(m *Machine) error
	fmt.Stringer
}

// jumps is implemented by instructions that set P themselves (Call,
// Proceed, Deallocate); the executor skips its default P++ for them.
type jumps interface {
	jumps()
}

// PutStructure writes Str(H+1) then Func(f) at the end of the heap, stores
// Str(H+1) in Xi, and advances H by 2.
type PutStructure struct {
	Functor cell.Functor
	Xi      int
}

func (i PutStructure) String() string { return fmt.Sprintf("put_structure %s, X%d", i.Functor, i.Xi) }

func (i PutStructure) Execute(m *Machine) error {
	addr := m.pushHeap(cell.Cell{})
	m.pushHeap(cell.NewFunc(i.Functor))
	m.setHeap(addr, cell.NewStr(addr+1))
	m.SetX(i.Xi, cell.NewStr(addr+1))

	return nil
}

// SetVariable appends Ref(H) to the heap and stores it in Xi.
type SetVariable struct {
	Xi int
}

func (i SetVariable) String() string { return fmt.Sprintf("set_variable X%d", i.Xi) }

func (i SetVariable) Execute(m *Machine) error {
	addr := m.pushHeap(cell.Cell{})
	ref := cell.NewRef(addr)
	m.setHeap(addr, ref)
	m.SetX(i.Xi, ref)

	return nil
}

// SetValue appends a copy of Xi's cell to the heap.
type SetValue struct {
	Xi int
}

func (i SetValue) String() string { return fmt.Sprintf("set_value X%d", i.Xi) }

func (i SetValue) Execute(m *Machine) error {
	c, err := m.GetX(i.Xi)
	if err != nil {
		return err
	}

	m.pushHeap(c)

	return nil
}

// GetStructure dereferences Xi. If it is a Ref, a new structure is
// constructed (write mode). If it is a Str whose functor matches f, S is
// set just past the Func descriptor (read mode). Otherwise unification
// fails.
type GetStructure struct {
	Functor cell.Functor
	Xi      int
}

func (i GetStructure) String() string { return fmt.Sprintf("get_structure %s, X%d", i.Functor, i.Xi) }

func (i GetStructure) Execute(m *Machine) error {
	addr, c, err := m.deref(cell.RegAddr(cell.X(i.Xi)))
	if err != nil {
		return err
	}

	switch {
	case c.IsRef():
		strAddr := m.pushHeap(cell.Cell{})
		m.pushHeap(cell.NewFunc(i.Functor))

		str := cell.NewStr(strAddr + 1)
		m.setHeap(strAddr, str)
		m.bind(addr, c, cell.HeapAddr(strAddr), str)
		m.mode = Write

	case c.IsStr():
		f, err := m.functorAt(c.Str)
		if err != nil {
			return err
		}

		if f != i.Functor {
			m.fail = true
			return nil
		}

		m.S = c.Str + 1
		m.mode = Read

	default:
		m.fail = true
	}

	return nil
}

// UnifyVariable either reads the next heap argument into Xi (read mode) or
// constructs a fresh variable and writes it to both the heap and Xi (write
// mode), then advances S.
type UnifyVariable struct {
	Xi int
}

func (i UnifyVariable) String() string { return fmt.Sprintf("unify_variable X%d", i.Xi) }

func (i UnifyVariable) Execute(m *Machine) error {
	switch m.mode {
	case Read:
		c, err := m.Get(cell.HeapAddr(m.S))
		if err != nil {
			return err
		}

		m.SetX(i.Xi, c)
	case Write:
		addr := m.pushHeap(cell.Cell{})
		ref := cell.NewRef(addr)
		m.setHeap(addr, ref)
		m.SetX(i.Xi, ref)
	}

	m.S++

	return nil
}

// UnifyValue either unifies Xi against the next heap argument (read mode)
// or appends a copy of Xi to the heap (write mode), then advances S.
type UnifyValue struct {
	Xi int
}

func (i UnifyValue) String() string { return fmt.Sprintf("unify_value X%d", i.Xi) }

func (i UnifyValue) Execute(m *Machine) error {
	switch m.mode {
	case Read:
		if err := m.unify(cell.RegAddr(cell.X(i.Xi)), cell.HeapAddr(m.S)); err != nil {
			return err
		}
	case Write:
		c, err := m.GetX(i.Xi)
		if err != nil {
			return err
		}

		m.pushHeap(c)
	}

	m.S++

	return nil
}

// PutVariable appends Ref(H) to the heap and stores it in both Xn (or Yn,
// for a permanent variable's first occurrence in a body goal's argument
// list) and the argument register Ai.
type PutVariable struct {
	Xn cell.Reg
	Ai int
}

func (i PutVariable) String() string { return fmt.Sprintf("put_variable %s, X%d", i.Xn, i.Ai) }

func (i PutVariable) Execute(m *Machine) error {
	addr := m.pushHeap(cell.Cell{})
	ref := cell.NewRef(addr)
	m.setHeap(addr, ref)
	m.Set(cell.RegAddr(i.Xn), ref)
	m.SetX(i.Ai, ref)

	return nil
}

// PutValue copies Xn's (or Yn's) cell into argument register Ai.
type PutValue struct {
	Xn cell.Reg
	Ai int
}

func (i PutValue) String() string { return fmt.Sprintf("put_value %s, X%d", i.Xn, i.Ai) }

func (i PutValue) Execute(m *Machine) error {
	c, err := m.Get(cell.RegAddr(i.Xn))
	if err != nil {
		return err
	}

	m.SetX(i.Ai, c)

	return nil
}

// GetVariable copies argument register Ai's cell into Xn (or Yn).
type GetVariable struct {
	Xn cell.Reg
	Ai int
}

func (i GetVariable) String() string { return fmt.Sprintf("get_variable %s, X%d", i.Xn, i.Ai) }

func (i GetVariable) Execute(m *Machine) error {
	c, err := m.GetX(i.Ai)
	if err != nil {
		return err
	}

	m.Set(cell.RegAddr(i.Xn), c)

	return nil
}

// GetValue unifies Xn (or Yn) against argument register Ai.
type GetValue struct {
	Xn cell.Reg
	Ai int
}

func (i GetValue) String() string { return fmt.Sprintf("get_value %s, X%d", i.Xn, i.Ai) }

func (i GetValue) Execute(m *Machine) error {
	return m.unify(cell.RegAddr(i.Xn), cell.RegAddr(cell.X(i.Ai)))
}

// Allocate pushes a new environment frame of n permanent-variable slots.
type Allocate struct {
	N int
}

func (i Allocate) String() string { return fmt.Sprintf("allocate %d", i.N) }

func (i Allocate) Execute(m *Machine) error {
	m.allocateFrame(i.N)
	return nil
}

// Deallocate restores P and E from the current environment frame. Like
// Call and Proceed, it sets P itself rather than simply falling through to
// the next instruction.
type Deallocate struct{}

func (i Deallocate) String() string { return "deallocate" }

func (i Deallocate) jumps() {}

func (i Deallocate) Execute(m *Machine) error {
	m.deallocateFrame()
	return nil
}

// Call transfers control to the entry address of functor F, saving the
// return address in CP.
type Call struct {
	Functor cell.Functor
}

func (i Call) String() string { return fmt.Sprintf("call %s", i.Functor) }

func (i Call) jumps() {}

func (i Call) Execute(m *Machine) error {
	entry, err := m.code.Entry(i.Functor)
	if err != nil {
		return err
	}

	m.CP = m.P + 1
	m.P = entry

	return nil
}

// Proceed returns control to the continuation program counter.
type Proceed struct{}

func (i Proceed) String() string { return "proceed" }

func (i Proceed) jumps() {}

func (i Proceed) Execute(m *Machine) error {
	m.P = m.CP
	return nil
}
