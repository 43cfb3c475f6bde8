// Package commands assembles the chomsky commands.
package commands

import (
	"github.com/edwloef/chomsky/cli/commands/run"
	"github.com/edwloef/chomsky/cli/commands/schema"
	"github.com/edwloef/chomsky/cli/commands/validate"
	"github.com/edwloef/chomsky/options"
	"github.com/urfave/cli/v2"
)

// New returns all commands.
func New(opts *options.Options) []*cli.Command {
	return []*cli.Command{
		run.NewCommand(opts),
		validate.NewCommand(opts),
		schema.NewCommand(opts),
	}
}
