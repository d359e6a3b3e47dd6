package compiler

// golden_test.go contains end-to-end tests: source terms are compiled,
// loaded and run, and the resulting bindings are checked against known-good
// output, the same "golden test" shape the teacher's assembler package
// uses for source-to-machine-code checks.

import (
	"testing"

	"github.com/smoynes/wam/internal/machine"
	"github.com/smoynes/wam/internal/term"
)

// TestGolden_RuleChaining is spec.md §8 scenario 4: two facts, a two-goal
// rule joining them, and a query. U and V must resolve to a and c, and the
// rule's Allocate(2) must be its very first instruction.
func TestGolden_RuleChaining(t *testing.T) {
	m := machine.New()

	qFact, _, err := CompileFact(c("q", a("a"), a("b")))
	if err != nil {
		t.Fatalf("CompileFact(q): %v", err)
	}

	m.Load(functorOf("q", 2), qFact)

	rFact, _, err := CompileFact(c("r", a("b"), a("c")))
	if err != nil {
		t.Fatalf("CompileFact(r): %v", err)
	}

	m.Load(functorOf("r", 2), rFact)

	rule := term.Rule{
		Head: c("p", v("X"), v("Y")),
		Body: []term.Compound{
			c("q", v("X"), v("Z")),
			c("r", v("Z"), v("Y")),
		},
	}

	ruleInstrs, _, err := CompileRule(rule)
	if err != nil {
		t.Fatalf("CompileRule: %v", err)
	}

	if _, ok := ruleInstrs[0].(machine.Allocate); !ok {
		t.Fatalf("first instruction = %T, want machine.Allocate", ruleInstrs[0])
	}

	if got := ruleInstrs[0].(machine.Allocate).N; got != 2 {
		t.Errorf("Allocate(%d), want Allocate(2)", got)
	}

	m.Load(functorOf("p", 2), ruleInstrs)

	query, bindings, err := CompileQuery(c("p", v("U"), v("V")))
	if err != nil {
		t.Fatalf("CompileQuery: %v", err)
	}

	m.Load(functorOf("query", 0), query)

	if err := m.Run(functorOf("query", 0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if m.Failed() {
		t.Fatal("Run failed, want success")
	}

	sol, err := m.Extract(bindings)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if sol["U"] != "a" {
		t.Errorf("U = %q, want %q", sol["U"], "a")
	}

	if sol["V"] != "c" {
		t.Errorf("V = %q, want %q", sol["V"], "c")
	}
}

// TestGolden_UnificationFailure is spec.md §8 scenario 3: p(a) against
// p(b) must fail.
func TestGolden_UnificationFailure(t *testing.T) {
	m := machine.New()

	fact, _, err := CompileFact(c("p", a("b")))
	if err != nil {
		t.Fatalf("CompileFact: %v", err)
	}

	m.Load(functorOf("p", 1), fact)

	query, _, err := CompileQuery(c("p", a("a")))
	if err != nil {
		t.Fatalf("CompileQuery: %v", err)
	}

	m.Load(functorOf("query", 0), query)

	if err := m.Run(functorOf("query", 0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !m.Failed() {
		t.Fatal("Run succeeded, want failure")
	}
}

// TestGolden_QueryAndProgramBindings is spec.md §8 scenario 2: query
// p(f(X), h(Y, f(a)), Y). against fact p(Z, h(Z, W), f(W)). Both the
// query's variables and the fact's own must be extractable, merged into one
// solution, not just the query's.
func TestGolden_QueryAndProgramBindings(t *testing.T) {
	m := machine.New()

	fact := c("p", v("Z"), c("h", v("Z"), v("W")), c("f", v("W")))

	factInstrs, factBindings, err := CompileFact(fact)
	if err != nil {
		t.Fatalf("CompileFact: %v", err)
	}

	m.Load(functorOf("p", 3), factInstrs)

	query := c("p", c("f", v("X")), c("h", v("Y"), c("f", a("a"))), v("Y"))

	queryInstrs, queryBindings, err := CompileQuery(query)
	if err != nil {
		t.Fatalf("CompileQuery: %v", err)
	}

	m.Load(functorOf("query", 0), queryInstrs)

	if err := m.Run(functorOf("query", 0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if m.Failed() {
		t.Fatal("Run failed, want success")
	}

	bindings := make(machine.Bindings, len(queryBindings)+len(factBindings))
	for name, addr := range queryBindings {
		bindings[name] = addr
	}

	for name, addr := range factBindings {
		if _, ok := bindings[name]; !ok {
			bindings[name] = addr
		}
	}

	sol, err := m.Extract(bindings)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for name, want := range map[string]string{
		"W": "f(a)",
		"X": "f(a)",
		"Y": "f(f(a))",
		"Z": "f(f(a))",
	} {
		if sol[name] != want {
			t.Errorf("%s = %q, want %q", name, sol[name], want)
		}
	}
}
