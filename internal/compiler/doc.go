// Package compiler lowers first-order terms and rules (internal/term) to
// the abstract machine's instruction set (internal/machine).
//
// Three entry points mirror the three clause shapes a program admits:
//
//	CompileQuery(term.Compound) ([]machine.Instruction, machine.Bindings, error)
//	CompileFact(term.Compound)  ([]machine.Instruction, machine.Bindings, error)
//	CompileRule(term.Rule)      ([]machine.Instruction, machine.Bindings, error)
//
// A query is generative: it builds argument structures with
// PutStructure/SetVariable/SetValue and ends in a Call. A fact is
// consumptive: it decomposes the caller's arguments with
// GetStructure/UnifyVariable/UnifyValue and ends in Proceed. A rule
// prepends permanent-variable analysis and an Allocate/Deallocate pair
// around a head (compiled as a fact, minus its Proceed) and a sequence of
// body goals (each compiled as a query). Every entry point also returns the
// bindings needed to read its own variables back out of the store after
// Run, so that a query's bindings and the program clause it matched can be
// merged into one rendered solution (spec.md §8 scenario 2).
package compiler
