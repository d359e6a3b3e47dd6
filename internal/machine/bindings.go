package machine

// bindings.go implements the binding extractor, spec.md §4.8: rendering the
// term a query variable is bound to, after Run has completed, in surface
// syntax rather than as raw cells.

import (
	"fmt"
	"sort"
	"strings"

	"github.com/smoynes/wam/internal/cell"
)

// Bindings maps variable names to the register addresses the compiler
// assigned them. It is produced by the compiler alongside a query's or
// clause's instruction stream.
type Bindings map[string]cell.Addr

// Solution maps each query variable to the surface-syntax rendering of the
// term it denotes after a successful Run.
type Solution map[string]string

// Extract renders every variable in b against the machine's current store,
// per spec.md §4.8. A variable bound to itself (still unbound) is omitted
// from the result, matching the convention that unbound variables carry no
// useful answer.
func (m *Machine) Extract(b Bindings) (Solution, error) {
	names := make(map[cell.Addr]string, len(b))
	for name, addr := range b {
		names[addr] = name
	}

	sol := make(Solution, len(b))

	for name, addr := range b {
		term, unbound, err := m.renderAddr(addr, names)
		if err != nil {
			return nil, err
		}

		if unbound || term == name {
			continue
		}

		sol[name] = term
	}

	return sol, nil
}

// renderAddr dereferences addr and renders the term it denotes. The second
// return value reports whether the address is an unbound variable that
// names has no entry for; an unbound variable with a name renders as that
// name and reports false.
func (m *Machine) renderAddr(addr cell.Addr, names map[cell.Addr]string) (string, bool, error) {
	da, c, err := m.deref(addr)
	if err != nil {
		return "", false, err
	}

	switch {
	case c.IsRef():
		if name, ok := names[da]; ok {
			return name, false, nil
		}

		return fmt.Sprintf("_G%d", da.Heap), true, nil

	case c.IsStr():
		f, err := m.functorAt(c.Str)
		if err != nil {
			return "", false, err
		}

		if f.Arity == 0 {
			return f.Name, false, nil
		}

		args := make([]string, f.Arity)

		for i := 1; i <= f.Arity; i++ {
			arg, _, err := m.renderAddr(cell.HeapAddr(c.Str+i), names)
			if err != nil {
				return "", false, err
			}

			args[i-1] = arg
		}

		return fmt.Sprintf("%s(%s)", f.Name, strings.Join(args, ",")), false, nil

	case c.IsFunc():
		// A bare Func cell, reached directly rather than through a Str
		// cell, violates the "Func only ever follows Str" invariant
		// (spec.md §9(iii)).
		return "", false, &InvalidCellError{Addr: da.Heap, Got: c}

	default:
		return "", false, &InvalidCellError{Addr: da.Heap, Got: c}
	}
}

// DumpHeap renders every heap cell in store order, one per line, using the
// same pretty-printer Extract uses: a Str cell renders as its whole
// structure (`name(arg,...)`), a Ref cell renders with its binding's
// variable name when b has one targeting it, otherwise `_G<addr>`, and a
// bare Func cell (a structure's own functor descriptor slot) renders as
// `name/arity`. Intended for the `-dump-heap` debug flag.
func (m *Machine) DumpHeap(b Bindings) string {
	names := make(map[cell.Addr]string, len(b))
	for name, addr := range b {
		names[addr] = name
	}

	lines := make([]string, len(m.heap))

	for i, c := range m.heap {
		if c.IsFunc() {
			lines[i] = fmt.Sprintf("H%d: %s", i, c.Func)
			continue
		}

		term, _, err := m.renderAddr(cell.HeapAddr(i), names)
		if err != nil {
			lines[i] = fmt.Sprintf("H%d: <error: %v>", i, err)
			continue
		}

		lines[i] = fmt.Sprintf("H%d: %s", i, term)
	}

	return strings.Join(lines, "\n")
}

// String renders a Solution deterministically, sorted by variable name, in
// the "Name = term" form used by the CLI and golden tests.
func (s Solution) String() string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}

	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("%s = %s", name, s[name])
	}

	return strings.Join(lines, "\n")
}
