// Package validate implements the command that checks grammar description files without running them.
package validate

import (
	"github.com/edwloef/chomsky/cli/flags/global"
	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName = "validate"

	StrictFlagName = "strict"
)

// NewCommand returns the validate command.
func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Load and compile grammar files.",
		UsageText: "chomsky validate [options] <glob>...",
		Description: `Parses and compiles every grammar file matching the given patterns. Patterns support
'**' to match any number of directories. All failures are reported together.

Example:
  chomsky validate --strict 'grammars/**/*.json' 'grammars/**/*.hcl'`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  StrictFlagName,
				Usage: "Rejects grammars whose words use symbols missing from var_symbols and term_symbols.",
			},
		},
		Action: errors.WithPanicHandling(func(cliCtx *cli.Context) error {
			if !cliCtx.Args().Present() {
				return cli.ShowCommandHelp(cliCtx, CommandName)
			}

			// --strict may also be given before the command name or through its env var, both
			// handled by the app-level copy of the flag
			if ctx := global.SetIn(cliCtx, StrictFlagName); ctx != nil {
				opts.Strict = ctx.Bool(StrictFlagName)
			}

			return Run(cliCtx.Context, opts, cliCtx.Args().Slice()...)
		}),
	}
}
