package machine

// deref.go implements dereference, spec.md §4.1.

import "github.com/smoynes/wam/internal/cell"

// deref follows Ref chains starting at store address a, returning the first
// store address whose cell is an unbound Ref, a Str, or a Func. Ref→Ref
// chains are acyclic by construction (bind always writes the younger cell),
// so this always terminates.
func (m *Machine) deref(a cell.Addr) (cell.Addr, cell.Cell, error) {
	for {
		c, err := m.Get(a)
		if err != nil {
			return a, c, err
		}

		if !c.IsRef() {
			return a, c, nil
		}

		if a.IsHeap() && a.Heap == c.Ref {
			// Unbound: self-reference.
			return a, c, nil
		}

		// Step to the target heap cell. A register-resident Ref always
		// steps into the heap on its first hop, per spec.md §4.1.
		a = cell.HeapAddr(c.Ref)
	}
}

// Deref is the exported form of deref, used by the binding extractor and
// tests.
func (m *Machine) Deref(a cell.Addr) (cell.Addr, cell.Cell, error) {
	return m.deref(a)
}
