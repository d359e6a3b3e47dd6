// Package term defines the AST the parser produces and the compiler
// consumes: atoms, variables, compounds and rules.
package term

import (
	"fmt"
	"strings"
)

// Term is any first-order term: an Atom, a Var, or a Compound.
type Term interface {
	fmt.Stringer
	term()
}

// Atom is a nullary constant, e.g. a or 'hello world'.
type Atom struct {
	Name string
}

func (Atom) term() {}

func (a Atom) String() string { return a.Name }

// Var is a variable, named by its surface-syntax spelling (beginning with an
// uppercase letter or underscore). Equality is by name.
type Var struct {
	Name string
}

func (Var) term() {}

func (v Var) String() string { return v.Name }

// Compound is a first-order compound term: a functor applied to one or more
// arguments. Arity always equals len(Args); a Compound with zero args has no
// direct representation (use Atom instead).
type Compound struct {
	Name string
	Args []Term
}

func (Compound) term() {}

// Arity is the compound's argument count.
func (c Compound) Arity() int { return len(c.Args) }

func (c Compound) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}

	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ","))
}

// Rule is a program clause head :- body, where body is one or more goals.
// A Rule with a single body goal compiles the same as a fact whose sole
// "extra" goal happens to be a call; a genuine fact has no Rule
// representation (it compiles directly from its Compound head).
type Rule struct {
	Head Compound
	Body []Compound
}

func (r Rule) String() string {
	goals := make([]string, len(r.Body))
	for i, g := range r.Body {
		goals[i] = g.String()
	}

	return fmt.Sprintf("%s :- %s", r.Head, strings.Join(goals, ", "))
}

// Clause is a top-level program clause read by the parser: either a fact
// (a bare Compound) or a Rule. The compiler's two entry points,
// CompileFact and CompileRule, mirror this split.
type Clause interface {
	clause()
}

func (Compound) clause() {}
func (Rule) clause()     {}

// Vars returns every distinct variable occurring in t, in order of first
// occurrence, depth-first left-to-right.
func Vars(t Term) []Var {
	var vars []Var

	seen := map[string]bool{}

	var walk func(Term)
	walk = func(t Term) {
		switch t := t.(type) {
		case Var:
			if !seen[t.Name] {
				seen[t.Name] = true
				vars = append(vars, t)
			}
		case Compound:
			for _, a := range t.Args {
				walk(a)
			}
		}
	}

	walk(t)

	return vars
}
