// cmd/wam is the command-line interface to the Warren Abstract Machine: it
// compiles Prolog-like facts, rules and queries and runs them.
package main

import (
	"context"
	"os"

	"github.com/smoynes/wam/internal/cli"
	"github.com/smoynes/wam/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Runner(),
	cmd.Compiler(),
}

func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
