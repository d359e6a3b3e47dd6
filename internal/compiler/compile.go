package compiler

// compile.go lowers terms and rules to the abstract machine's instruction
// set, spec.md §4.5-§4.7: a two-pass pipeline, mirroring the teacher's
// assembler (parse then generate), except both passes here work over an
// already-parsed term.Term rather than source text.

import (
	"github.com/smoynes/wam/internal/cell"
	"github.com/smoynes/wam/internal/machine"
	"github.com/smoynes/wam/internal/term"
)

// goalKind selects which half of spec.md §4.5/§4.6 a goalCompiler lowers: a
// query goal is generative (Put/Set, ends in Call), a head or fact goal is
// consumptive (Get/Unify, ends in Proceed for a standalone fact).
type goalKind uint8

const (
	queryGoal goalKind = iota
	factGoal
)

// goalCompiler lowers one compound (a query, a fact, or a single rule body
// goal/head) to instructions. perm and permSeen are shared across every
// goal of a rule, so a permanent variable's register and "have we emitted
// its first occurrence yet" state persist across Calls; regs is local to
// this goal, since X registers do not survive a Call, except that a rule's
// head and first body goal share one regs (they form a single chunk, with
// no Call between them).
type goalCompiler struct {
	kind goalKind

	regs *registers

	perm     map[string]cell.Reg
	permSeen map[string]bool

	instrs []machine.Instruction
	queue  []pending
}

func newGoalCompiler(kind goalKind, argc int, perm map[string]cell.Reg, permSeen map[string]bool) *goalCompiler {
	if perm == nil {
		perm = map[string]cell.Reg{}
	}

	if permSeen == nil {
		permSeen = map[string]bool{}
	}

	return &goalCompiler{
		kind:     kind,
		regs:     newRegisters(argc),
		perm:     perm,
		permSeen: permSeen,
	}
}

func (g *goalCompiler) emit(i machine.Instruction) { g.instrs = append(g.instrs, i) }

// varReg returns the register a variable is already bound to, and whether this
// is the first time the goal compiler has seen it (permanent variables
// remember this across goals; temporaries only within this goal).
func (g *goalCompiler) varReg(name string) (reg cell.Reg, first bool) {
	if r, ok := g.perm[name]; ok {
		first = !g.permSeen[name]
		g.permSeen[name] = true

		return r, first
	}

	if r, ok := g.regs.lookup(name); ok {
		return r, false
	}

	r := g.regs.fresh()
	g.regs.assign(name, r)

	return r, true
}

// top lowers the goal's top-level argument list, where each argument
// occupies its natural position register X(1..n).
func (g *goalCompiler) top(args []term.Term) {
	for i, a := range args {
		ai := i + 1

		switch t := a.(type) {
		case term.Var:
			reg, first := g.varReg(t.Name)
			if g.kind == queryGoal {
				if first {
					g.emit(machine.PutVariable{Xn: reg, Ai: ai})
				} else {
					g.emit(machine.PutValue{Xn: reg, Ai: ai})
				}
			} else {
				if first {
					g.emit(machine.GetVariable{Xn: reg, Ai: ai})
				} else {
					g.emit(machine.GetValue{Xn: reg, Ai: ai})
				}
			}

		case term.Atom:
			f := cell.Functor{Name: t.Name, Arity: 0}
			if g.kind == queryGoal {
				g.emit(machine.PutStructure{Functor: f, Xi: ai})
			} else {
				g.emit(machine.GetStructure{Functor: f, Xi: ai})
			}

		case term.Compound:
			f := cell.Functor{Name: t.Name, Arity: len(t.Args)}
			if g.kind == queryGoal {
				g.emit(machine.PutStructure{Functor: f, Xi: ai})
				g.args(t.Args)
			} else {
				g.emit(machine.GetStructure{Functor: f, Xi: ai})
				g.args(t.Args)
			}
		}
	}

	if g.kind == factGoal {
		g.drain()
	}
}

// args lowers one structure's argument list once its PutStructure/
// GetStructure has already been emitted. Query-mode builds nested compounds
// immediately, deepest subterm first (spec.md §4.5); fact-mode defers each
// non-variable argument to the breadth-first worklist (spec.md §4.6,
// confirmed by its scenario 6), only assigning it a placeholder register
// here.
func (g *goalCompiler) args(args []term.Term) {
	for _, a := range args {
		switch t := a.(type) {
		case term.Var:
			reg, first := g.varReg(t.Name)
			if g.kind == queryGoal {
				if first {
					g.emit(machine.SetVariable{Xi: reg.N})
				} else {
					g.emit(machine.SetValue{Xi: reg.N})
				}
			} else {
				if first {
					g.emit(machine.UnifyVariable{Xi: reg.N})
				} else {
					g.emit(machine.UnifyValue{Xi: reg.N})
				}
			}

		case term.Atom:
			if g.kind == queryGoal {
				reg := g.regs.fresh()
				g.emit(machine.PutStructure{Functor: cell.Functor{Name: t.Name, Arity: 0}, Xi: reg.N})
				g.emit(machine.SetValue{Xi: reg.N})
			} else {
				reg := g.regs.fresh()
				g.emit(machine.UnifyVariable{Xi: reg.N})
				g.queue = append(g.queue, pending{term: t, reg: reg.N})
			}

		case term.Compound:
			reg := g.regs.fresh()

			if g.kind == queryGoal {
				g.emit(machine.PutStructure{Functor: cell.Functor{Name: t.Name, Arity: len(t.Args)}, Xi: reg.N})
				g.args(t.Args)
				g.emit(machine.SetValue{Xi: reg.N})
			} else {
				g.emit(machine.UnifyVariable{Xi: reg.N})
				g.queue = append(g.queue, pending{term: t, reg: reg.N})
			}
		}
	}
}

// drain processes the fact-mode worklist breadth-first: each queued
// argument gets its GetStructure emitted against the placeholder register
// assigned when it was enqueued, and its own arguments are lowered the same
// way, possibly enqueueing further nested structures.
func (g *goalCompiler) drain() {
	for len(g.queue) > 0 {
		p := g.queue[0]
		g.queue = g.queue[1:]

		switch t := p.term.(type) {
		case term.Atom:
			g.emit(machine.GetStructure{Functor: cell.Functor{Name: t.Name, Arity: 0}, Xi: p.reg})
		case term.Compound:
			g.emit(machine.GetStructure{Functor: cell.Functor{Name: t.Name, Arity: len(t.Args)}, Xi: p.reg})
			g.args(t.Args)
		}
	}
}

// compileBindings maps each variable in args to the register its
// representative cell was loaded into, for use with Machine.Extract after Run.
func compileBindings(g *goalCompiler, args []term.Term) machine.Bindings {
	b := make(machine.Bindings)

	seen := map[string]bool{}

	var walk func(term.Term)
	walk = func(t term.Term) {
		switch t := t.(type) {
		case term.Var:
			if seen[t.Name] {
				return
			}

			seen[t.Name] = true

			if reg, ok := g.perm[t.Name]; ok {
				b[t.Name] = cell.RegAddr(reg)
			} else if reg, ok := g.regs.lookup(t.Name); ok {
				b[t.Name] = cell.RegAddr(reg)
			}
		case term.Compound:
			for _, a := range t.Args {
				walk(a)
			}
		}
	}

	for _, a := range args {
		walk(a)
	}

	return b
}

// CompileQuery lowers a query compound to a Put/Set instruction stream
// ending in Call, per spec.md §4.5, along with the bindings needed to read
// back its variables after Run.
func CompileQuery(q term.Compound) ([]machine.Instruction, machine.Bindings, error) {
	if err := validateCompound(q); err != nil {
		return nil, nil, err
	}

	g := newGoalCompiler(queryGoal, len(q.Args), nil, nil)
	g.top(q.Args)
	g.emit(machine.Call{Functor: functorOf(q.Name, len(q.Args))})

	return g.instrs, compileBindings(g, q.Args), nil
}

// CompileFact lowers a fact compound to a Get/Unify instruction stream
// ending in Proceed, per spec.md §4.6, along with the bindings needed to
// read the fact's own variables back out after Run (spec.md §8 scenario 2:
// a program's variables are bound just as much as the query's).
func CompileFact(f term.Compound) ([]machine.Instruction, machine.Bindings, error) {
	if err := validateCompound(f); err != nil {
		return nil, nil, err
	}

	g := newGoalCompiler(factGoal, len(f.Args), nil, nil)
	g.top(f.Args)
	g.emit(machine.Proceed{})

	return g.instrs, compileBindings(g, f.Args), nil
}

// CompileRule lowers a rule to Allocate(n), the head (as a fact without its
// trailing Proceed), each body goal (as a query), and a trailing
// Deallocate, per spec.md §4.7. Permanent variables are assigned Y
// registers up front and shared across every goal's compiler. The returned
// bindings cover the head's own variables, mirroring CompileFact; they are
// only meaningful while the rule's environment frame is still live, since
// Deallocate releases the Y registers they may point into.
func CompileRule(r term.Rule) ([]machine.Instruction, machine.Bindings, error) {
	if err := validateRule(r); err != nil {
		return nil, nil, err
	}

	perm := map[string]cell.Reg{}
	for i, name := range permanentVars(r) {
		perm[name] = cell.Y(i + 1)
	}

	permSeen := map[string]bool{}

	var instrs []machine.Instruction

	instrs = append(instrs, machine.Allocate{N: len(perm)})

	// The head and first body goal share temporaries, which are numbered
	// past both goals' argument registers.
	argc := len(r.Head.Args)
	if n := len(r.Body[0].Args); n > argc {
		argc = n
	}

	head := newGoalCompiler(factGoal, argc, perm, permSeen)
	head.top(r.Head.Args)
	instrs = append(instrs, head.instrs...)

	for i, goal := range r.Body {
		body := newGoalCompiler(queryGoal, len(goal.Args), perm, permSeen)
		if i == 0 {
			body.regs = head.regs
		}

		body.top(goal.Args)
		body.emit(machine.Call{Functor: functorOf(goal.Name, len(goal.Args))})
		instrs = append(instrs, body.instrs...)
	}

	instrs = append(instrs, machine.Deallocate{})

	return instrs, compileBindings(head, r.Head.Args), nil
}

// functorOf names the entry point a compiled clause or query should be
// loaded or called under.
func functorOf(name string, arity int) cell.Functor {
	return cell.Functor{Name: name, Arity: arity}
}
