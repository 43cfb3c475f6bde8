// Package schema implements the command that prints the JSON schemas of chomsky's file formats.
package schema

import (
	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName = "schema"

	GrammarSchema = "grammar"
	ReportSchema  = "report"
)

// NewCommand returns the schema command.
func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Print the JSON schema of grammar descriptions or of JSON reports.",
		UsageText: "chomsky schema [grammar|report]",
		Action: errors.WithPanicHandling(func(cliCtx *cli.Context) error {
			name := GrammarSchema
			if cliCtx.Args().Present() {
				name = cliCtx.Args().First()
			}

			return Run(opts, name)
		}),
	}
}
