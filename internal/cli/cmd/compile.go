package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/smoynes/wam/internal/cli"
	"github.com/smoynes/wam/internal/compiler"
	"github.com/smoynes/wam/internal/log"
	"github.com/smoynes/wam/internal/term"
)

// Compiler is the command that compiles a program (and optionally a query)
// and prints the resulting instruction streams, without running them.
//
//	wam compile -program facts.pl [-query goal.pl]
func Compiler() cli.Command {
	return &compileCmd{log: log.DefaultLogger()}
}

type compileCmd struct {
	program string
	query   string

	log *log.Logger
}

func (compileCmd) Description() string {
	return "compile a program and print its instructions"
}

func (compileCmd) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `compile -program FILE [-query FILE]

Compiles every clause in the program (and the query, if given) and prints
the instruction listing for each, without running anything.`)

	return err
}

func (c *compileCmd) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	fs.StringVar(&c.program, "program", "", "program `file`")
	fs.StringVar(&c.query, "query", "", "query `file`")

	return fs
}

// Run implements cli.Command.
func (c *compileCmd) Run(_ context.Context, _ []string, out io.Writer, logger *log.Logger) int {
	clauses, err := parseFile(logger, c.program)
	if err != nil {
		logger.Error("parse error", "program", c.program, "err", err)
		return 2
	}

	for _, clause := range clauses {
		switch clause := clause.(type) {
		case term.Compound:
			instrs, _, err := compiler.CompileFact(clause)
			if err != nil {
				logger.Error("compile error", "clause", clause, "err", err)
				return 2
			}

			printInstructions(out, clause.String(), instrs)

		case term.Rule:
			instrs, _, err := compiler.CompileRule(clause)
			if err != nil {
				logger.Error("compile error", "clause", clause, "err", err)
				return 2
			}

			printInstructions(out, clause.String(), instrs)
		}
	}

	if c.query == "" {
		return 0
	}

	goal, err := soleGoal(logger, c.query)
	if err != nil {
		logger.Error("parse error", "query", c.query, "err", err)
		return 2
	}

	instrs, _, err := compiler.CompileQuery(goal)
	if err != nil {
		logger.Error("compile error", "query", goal, "err", err)
		return 2
	}

	printInstructions(out, "?- "+goal.String(), instrs)

	return 0
}
