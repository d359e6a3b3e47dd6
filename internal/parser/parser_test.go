package parser_test

import (
	"strings"
	"testing"

	"github.com/smoynes/wam/internal/log"
	"github.com/smoynes/wam/internal/parser"
	"github.com/smoynes/wam/internal/term"
)

func newParser(t *testing.T) *parser.Parser {
	t.Helper()
	return parser.NewParser(log.DefaultLogger())
}

func TestParse_Fact(t *testing.T) {
	p := newParser(t)

	clauses, err := p.Parse(strings.NewReader(`edge(a, b).`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(clauses) != 1 {
		t.Fatalf("len(clauses) = %d, want 1", len(clauses))
	}

	fact, ok := clauses[0].(term.Compound)
	if !ok {
		t.Fatalf("clauses[0] = %T, want term.Compound", clauses[0])
	}

	if fact.Name != "edge" || fact.Arity() != 2 {
		t.Errorf("fact = %s, want edge/2", fact)
	}

	a, ok := fact.Args[0].(term.Atom)
	if !ok || a.Name != "a" {
		t.Errorf("fact.Args[0] = %v, want atom a", fact.Args[0])
	}
}

func TestParse_Rule(t *testing.T) {
	p := newParser(t)

	clauses, err := p.Parse(strings.NewReader(`path(X, Y) :- edge(X, Y).
path(X, Z) :- edge(X, Y), path(Y, Z).`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(clauses) != 2 {
		t.Fatalf("len(clauses) = %d, want 2", len(clauses))
	}

	rule, ok := clauses[1].(term.Rule)
	if !ok {
		t.Fatalf("clauses[1] = %T, want term.Rule", clauses[1])
	}

	if rule.Head.Name != "path" || len(rule.Body) != 2 {
		t.Errorf("rule = %s, want path/2 with two body goals", rule)
	}

	if rule.Body[1].Name != "path" {
		t.Errorf("rule.Body[1] = %s, want recursive call to path", rule.Body[1])
	}
}

func TestParse_NestedCompound(t *testing.T) {
	p := newParser(t)

	clauses, err := p.Parse(strings.NewReader(`p(f(X), h(Y, f(a)), Y).`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	fact := clauses[0].(term.Compound)
	if fact.Arity() != 3 {
		t.Fatalf("fact.Arity() = %d, want 3", fact.Arity())
	}

	inner, ok := fact.Args[1].(term.Compound)
	if !ok || inner.Name != "h" || inner.Arity() != 2 {
		t.Fatalf("fact.Args[1] = %v, want h/2", fact.Args[1])
	}

	nested, ok := inner.Args[1].(term.Compound)
	if !ok || nested.Name != "f" || nested.Arity() != 1 {
		t.Errorf("inner.Args[1] = %v, want f/1", inner.Args[1])
	}
}

func TestParse_DistinctAnonymousVariables(t *testing.T) {
	p := newParser(t)

	clauses, err := p.Parse(strings.NewReader(`q(_, _).`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	fact := clauses[0].(term.Compound)
	v0 := fact.Args[0].(term.Var)
	v1 := fact.Args[1].(term.Var)

	if v0.Name == v1.Name {
		t.Errorf("both anonymous variables parsed as %q, want distinct names", v0.Name)
	}
}

func TestParse_QuotedAtom(t *testing.T) {
	p := newParser(t)

	clauses, err := p.Parse(strings.NewReader(`greeting('hello world').`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	fact := clauses[0].(term.Compound)
	a := fact.Args[0].(term.Atom)

	if a.Name != "hello world" {
		t.Errorf("atom = %q, want %q", a.Name, "hello world")
	}
}

func TestParse_SyntaxErrorRecoversAndContinues(t *testing.T) {
	p := newParser(t)

	clauses, err := p.Parse(strings.NewReader(`broken(.
edge(a, b).`))
	if err == nil {
		t.Fatal("Parse: want a syntax error for the malformed first clause")
	}

	if len(clauses) != 1 {
		t.Fatalf("len(clauses) = %d, want 1 (the clause after recovery)", len(clauses))
	}

	fact := clauses[0].(term.Compound)
	if fact.Name != "edge" {
		t.Errorf("recovered clause = %s, want edge/2", fact)
	}
}
