package machine

// bind.go implements bind, spec.md §4.2.

import "github.com/smoynes/wam/internal/cell"

// bind is called with two dereferenced addresses known to be unequal, at
// least one of which denotes a Ref cell. It writes the non-Ref side into
// the Ref cell; when both are Ref, the younger (higher heap address) cell
// is made to hold the older reference. This "older wins" rule keeps
// binding chains short and is the standard WAM convention. bind does not
// push to the PDL.
func (m *Machine) bind(a1 cell.Addr, c1 cell.Cell, a2 cell.Addr, c2 cell.Cell) {
	switch {
	case c1.IsRef() && c2.IsRef():
		// Both unbound: the younger (higher) address holds the older
		// reference. Non-heap addresses (registers) are never bind
		// targets in this core, since deref always lands on a heap
		// address for any bound or unbound variable; assume heap here.
		if a1.Heap > a2.Heap {
			m.setHeap(a1.Heap, cell.NewRef(a2.Heap))
		} else {
			m.setHeap(a2.Heap, cell.NewRef(a1.Heap))
		}
	case c1.IsRef():
		m.setHeap(a1.Heap, c2)
	case c2.IsRef():
		m.setHeap(a2.Heap, c1)
	}
}
