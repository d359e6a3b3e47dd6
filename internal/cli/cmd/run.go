package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/smoynes/wam/internal/cell"
	"github.com/smoynes/wam/internal/cli"
	"github.com/smoynes/wam/internal/compiler"
	"github.com/smoynes/wam/internal/log"
	"github.com/smoynes/wam/internal/machine"
)

// Runner is the command that parses a program and a query, compiles and
// loads both, runs the query, and prints its bindings.
//
//	wam run -program facts.pl -query goal.pl
func Runner() cli.Command {
	return &runner{log: log.DefaultLogger()}
}

type runner struct {
	program  string
	query    string
	trace    bool
	dumpHeap bool

	log *log.Logger
}

func (runner) Description() string {
	return "compile and run a query against a program"
}

func (runner) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `run -program FILE -query FILE [-trace] [-dump-heap] [-loglevel LEVEL]

Runs a query against a program, printing each bound variable as "Var = term",
sorted lexicographically. Prints "false." on unification failure. With
-dump-heap, also prints the final contents of every heap cell.`)

	return err
}

func (r *runner) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.StringVar(&r.program, "program", "", "program `file`")
	fs.StringVar(&r.query, "query", "", "query `file`")
	fs.BoolVar(&r.trace, "trace", false, "log every instruction fetched and executed")
	fs.BoolVar(&r.dumpHeap, "dump-heap", false, "print every heap cell after running")
	fs.Func("loglevel", "set log `level`", func(s string) error {
		var level slog.Level

		if err := level.UnmarshalText([]byte(s)); err != nil {
			return err
		}

		log.LogLevel.Set(level)

		return nil
	})

	return fs
}

// Run implements cli.Command.
func (r *runner) Run(_ context.Context, _ []string, out io.Writer, logger *log.Logger) int {
	if r.trace {
		log.LogLevel.Set(log.Debug)
	}

	clauses, err := parseFile(logger, r.program)
	if err != nil {
		logger.Error("parse error", "program", r.program, "err", err)
		return 2
	}

	goal, err := soleGoal(logger, r.query)
	if err != nil {
		logger.Error("parse error", "query", r.query, "err", err)
		return 2
	}

	m := machine.New(machine.WithLogger(logger))

	progBindings, err := loadProgram(m, clauses)
	if err != nil {
		logger.Error("compile error", "err", err)
		return 2
	}

	instrs, bindings, err := compiler.CompileQuery(goal)
	if err != nil {
		logger.Error("compile error", "query", goal, "err", err)
		return 2
	}

	m.Load(queryFunctor, instrs)

	if err := m.Run(queryFunctor); err != nil {
		logger.Error("execution error", "err", err)
		return 2
	}

	// Merge in the bindings of the clause the query actually called, so the
	// rendered solution includes the program's own variables, not just the
	// query's (spec.md §8 scenario 2). The query's own bindings take
	// precedence on a name collision.
	calledFunctor := cell.Functor{Name: goal.Name, Arity: goal.Arity()}
	for name, addr := range progBindings[calledFunctor] {
		if _, ok := bindings[name]; !ok {
			bindings[name] = addr
		}
	}

	if r.dumpHeap {
		fmt.Fprintln(out, m.DumpHeap(bindings))
	}

	if m.Failed() {
		fmt.Fprintln(out, "false.")
		return 1
	}

	sol, err := m.Extract(bindings)
	if err != nil {
		logger.Error("execution error", "err", err)
		return 2
	}

	fmt.Fprintln(out, sol.String())

	return 0
}
