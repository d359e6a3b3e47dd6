package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/smoynes/wam/internal/cell"
	"github.com/smoynes/wam/internal/compiler"
	"github.com/smoynes/wam/internal/log"
	"github.com/smoynes/wam/internal/machine"
	"github.com/smoynes/wam/internal/parser"
	"github.com/smoynes/wam/internal/term"
)

// queryFunctor names the synthetic entry point a compiled query is loaded
// under, so Run can be invoked on it directly; see
// internal/compiler/golden_test.go for the convention this follows.
var queryFunctor = cell.Functor{Name: "query", Arity: 0}

// parseFile opens fn and parses every clause in it.
func parseFile(logger *log.Logger, fn string) ([]term.Clause, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := parser.NewParser(logger)

	return p.Parse(f)
}

// loadProgram compiles each clause and loads it into m under its head's
// functor. It also returns each clause's own bindings, keyed by that same
// functor, so that a query calling into a clause can surface the clause's
// variables alongside its own (spec.md §8 scenario 2).
func loadProgram(m *machine.Machine, clauses []term.Clause) (map[cell.Functor]machine.Bindings, error) {
	bindings := make(map[cell.Functor]machine.Bindings, len(clauses))

	for _, c := range clauses {
		switch c := c.(type) {
		case term.Compound:
			instrs, b, err := compiler.CompileFact(c)
			if err != nil {
				return nil, err
			}

			f := cell.Functor{Name: c.Name, Arity: c.Arity()}
			m.Load(f, instrs)
			bindings[f] = b

		case term.Rule:
			instrs, b, err := compiler.CompileRule(c)
			if err != nil {
				return nil, err
			}

			f := cell.Functor{Name: c.Head.Name, Arity: c.Head.Arity()}
			m.Load(f, instrs)
			bindings[f] = b

		default:
			return nil, fmt.Errorf("%w: unrecognized clause %T", machine.ErrMalformedAST, c)
		}
	}

	return bindings, nil
}

// soleGoal parses fn and returns its single clause as a query goal. A query
// file with a rule, or with anything but exactly one clause, is rejected.
func soleGoal(logger *log.Logger, fn string) (term.Compound, error) {
	clauses, err := parseFile(logger, fn)
	if err != nil {
		return term.Compound{}, err
	}

	if len(clauses) != 1 {
		return term.Compound{}, fmt.Errorf("%w: query file must contain exactly one goal, found %d",
			machine.ErrMalformedAST, len(clauses))
	}

	goal, ok := clauses[0].(term.Compound)
	if !ok {
		return term.Compound{}, fmt.Errorf("%w: a query must be a single goal, not a rule",
			machine.ErrMalformedAST)
	}

	return goal, nil
}

// printInstructions lists a compiled instruction stream, one per line, in
// the shape `cmd wam compile` prints.
func printInstructions(out io.Writer, label string, instrs []machine.Instruction) {
	fmt.Fprintf(out, "%s:\n", label)

	for _, i := range instrs {
		fmt.Fprintf(out, "\t%s\n", i)
	}
}
