// Package cli configures the chomsky CLI app and its commands.
package cli

import (
	"context"

	"github.com/edwloef/chomsky/cli/commands"
	"github.com/edwloef/chomsky/cli/commands/run"
	"github.com/edwloef/chomsky/cli/flags/global"
	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/internal/telemetry"
	"github.com/edwloef/chomsky/options"
	"github.com/edwloef/chomsky/pkg/log"
	"github.com/edwloef/chomsky/pkg/log/formats"
	"github.com/gruntwork-io/go-commons/version"
	"github.com/urfave/cli/v2"
)

const AppName = "chomsky"

// App is the chomsky CLI app.
type App struct {
	*cli.App
	opts *options.Options
}

// NewApp creates the chomsky CLI App.
func NewApp(opts *options.Options) *App {
	app := &cli.App{
		Name:  AppName,
		Usage: "Derive the terminal words of a semi-Thue system.",
		UsageText: `chomsky [global options] <grammar-file> [max-iters]
chomsky [global options] <command> [command options] [arguments...]`,
		Version:   version.GetVersion(),
		Writer:    opts.Writer,
		ErrWriter: opts.ErrWriter,
		// the run flags are accepted without the command name, e.g. `chomsky --max-iters 3 grammar.json`
		Flags:    append(global.NewFlags(opts), run.NewFlags(opts)...),
		Commands: commands.New(opts),
		Action: errors.WithPanicHandling(func(cliCtx *cli.Context) error {
			if !cliCtx.Args().Present() {
				return cli.ShowAppHelp(cliCtx)
			}

			return run.Action(opts)(cliCtx)
		}),
		Before: beforeAction(opts),
		After:  afterAction(),
		// errors are reported by the entrypoint, which also decides the exit code
		ExitErrHandler: func(*cli.Context, error) {},
	}

	return &App{App: app, opts: opts}
}

// RunContext runs the app with a logger carried on ctx.
func (app *App) RunContext(ctx context.Context, args []string) error {
	ctx = log.ContextWithLogger(ctx, app.opts.Logger)

	return app.App.RunContext(ctx, args)
}

func beforeAction(opts *options.Options) cli.BeforeFunc {
	return func(cliCtx *cli.Context) error {
		if err := setupLogger(opts); err != nil {
			return err
		}

		tlm, err := telemetry.NewTelemeter(cliCtx.Context, AppName, cliCtx.App.Version, opts.ErrWriter, opts.Telemetry)
		if err != nil {
			return err
		}

		cliCtx.Context = telemetry.ContextWithTelemeter(cliCtx.Context, tlm)
		cliCtx.Context = log.ContextWithLogger(cliCtx.Context, opts.Logger)

		opts.Logger.Debugf("%s version %s", AppName, cliCtx.App.Version)

		return nil
	}
}

func afterAction() cli.AfterFunc {
	return func(cliCtx *cli.Context) error {
		// the context of a canceled run is done, flush with a fresh one
		return telemetry.TelemeterFromContext(cliCtx.Context).Shutdown(context.WithoutCancel(cliCtx.Context))
	}
}

func setupLogger(opts *options.Options) error {
	if err := opts.Logger.SetLevel(opts.LogLevel); err != nil {
		return errors.ErrorWithExitCode{Err: err, ExitCode: run.UsageExitCode}
	}

	formatter, err := formats.ParseFormat(opts.LogFormat, opts.ErrWriter)
	if err != nil {
		return errors.ErrorWithExitCode{Err: err, ExitCode: run.UsageExitCode}
	}

	if keyValue, ok := formatter.(*formats.KeyValueFormatter); ok && opts.NoColor {
		keyValue.DisableColors = true
	}

	opts.Logger.SetOptions(log.WithOutput(opts.ErrWriter), log.WithFormatter(formatter))

	return nil
}
