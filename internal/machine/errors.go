package machine

// errors.go defines the structural/programmer error channel, kept entirely
// separate from unification failure (the fail flag). See spec.md §7.

import (
	"errors"
	"fmt"

	"github.com/smoynes/wam/internal/cell"
)

// Structural error sentinels, one per kind enumerated in spec.md §7. Wrap a
// detail value with fmt.Errorf("%w: ...", ErrX, ...) and test with
// errors.Is.
var (
	// ErrUnknownFunctor is returned when Call targets a functor with no
	// entry address in the code store.
	ErrUnknownFunctor = errors.New("unknown functor")

	// ErrInvalidCell is returned when a Str cell points at a non-Func
	// cell, or binding extraction reaches a bare Func cell not preceded
	// by a Str (spec.md §9(iii)).
	ErrInvalidCell = errors.New("invalid cell")

	// ErrRegisterUnderflow is returned when an X or Y register is read
	// before it has ever been written.
	ErrRegisterUnderflow = errors.New("register underflow")

	// ErrMalformedAST is returned for a rule with an empty body or a
	// compound with no arguments.
	ErrMalformedAST = errors.New("malformed ast")
)

// UnknownFunctorError names the functor that had no code-store entry.
type UnknownFunctorError struct {
	Functor cell.Functor
}

func (e *UnknownFunctorError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownFunctor, e.Functor)
}

func (e *UnknownFunctorError) Is(target error) bool {
	return target == ErrUnknownFunctor
}

// InvalidCellError names the heap address whose contents violated a cell
// invariant.
type InvalidCellError struct {
	Addr int
	Got  cell.Cell
}

func (e *InvalidCellError) Error() string {
	return fmt.Sprintf("%s: heap[%d] = %s", ErrInvalidCell, e.Addr, e.Got)
}

func (e *InvalidCellError) Is(target error) bool {
	return target == ErrInvalidCell
}
