package machine

// unify.go implements unify, spec.md §4.3.

import "github.com/smoynes/wam/internal/cell"

// unify unifies the terms denoted by two store addresses. It pushes both
// onto the PDL, clears fail, and loops until the PDL is empty or fail is
// set: pop two, dereference each; if the dereferenced addresses are equal,
// continue; if either side is a Ref cell, bind them; otherwise both are
// structures — equal functors push their argument pairs onto the PDL so
// that the lowest-indexed pair is popped first, unequal functors set fail.
func (m *Machine) unify(a1, a2 cell.Addr) error {
	m.pdl = m.pdl[:0]
	m.pdl = append(m.pdl, a1, a2)
	m.fail = false

	for len(m.pdl) > 0 && !m.fail {
		x := m.pdl[len(m.pdl)-1]
		y := m.pdl[len(m.pdl)-2]
		m.pdl = m.pdl[:len(m.pdl)-2]

		da1, c1, err := m.deref(x)
		if err != nil {
			return err
		}

		da2, c2, err := m.deref(y)
		if err != nil {
			return err
		}

		if addrEqual(da1, da2) {
			continue
		}

		if c1.IsRef() || c2.IsRef() {
			m.bind(da1, c1, da2, c2)
			continue
		}

		if !c1.IsStr() || !c2.IsStr() {
			m.fail = true
			continue
		}

		f1, err := m.functorAt(c1.Str)
		if err != nil {
			return err
		}

		f2, err := m.functorAt(c2.Str)
		if err != nil {
			return err
		}

		if f1 != f2 {
			m.fail = true
			continue
		}

		// Push argument pairs so that, being a LIFO, the lowest-indexed
		// siblings are unified first (spec.md §5).
		for i := f1.Arity; i >= 1; i-- {
			m.pdl = append(m.pdl, cell.HeapAddr(c1.Str+i), cell.HeapAddr(c2.Str+i))
		}
	}

	return nil
}

// functorAt reads the functor descriptor expected at a Str cell's target
// heap address.
func (m *Machine) functorAt(addr int) (cell.Functor, error) {
	f, err := m.Get(cell.HeapAddr(addr))
	if err != nil {
		return cell.Functor{}, err
	}

	if !f.IsFunc() {
		return cell.Functor{}, &InvalidCellError{Addr: addr, Got: f}
	}

	return f.Func, nil
}

func addrEqual(a, b cell.Addr) bool {
	if a.Space != b.Space {
		return false
	}

	if a.Space == cell.HeapSpace {
		return a.Heap == b.Heap
	}

	return a.Reg == b.Reg
}

// Unify is the exported form of unify, used by tests to exercise §8's
// symmetry property directly.
func (m *Machine) Unify(a1, a2 cell.Addr) error {
	return m.unify(a1, a2)
}
