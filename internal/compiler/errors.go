package compiler

// errors.go validates an AST before lowering it, aggregating every
// violation found rather than stopping at the first, per spec.md §7's
// malformed-AST structural error kind.

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/smoynes/wam/internal/machine"
	"github.com/smoynes/wam/internal/term"
)

// validateCompound checks that a compound has at least one argument,
// recursively through its nested compounds.
func validateCompound(c term.Compound) error {
	var errs *multierror.Error

	if len(c.Args) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("%w: %s: zero-arity compound", machine.ErrMalformedAST, c.Name))
	}

	for _, a := range c.Args {
		if nested, ok := a.(term.Compound); ok {
			if err := validateCompound(nested); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}

	return errs.ErrorOrNil()
}

// validateRule checks that a rule has at least one body goal, and that the
// head and every body goal are well-formed compounds.
func validateRule(r term.Rule) error {
	var errs *multierror.Error

	if len(r.Body) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("%w: %s: empty body", machine.ErrMalformedAST, r.Head.Name))
	}

	if err := validateCompound(r.Head); err != nil {
		errs = multierror.Append(errs, err)
	}

	for _, goal := range r.Body {
		if err := validateCompound(goal); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	return errs.ErrorOrNil()
}
