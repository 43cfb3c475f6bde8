package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/edwloef/chomsky/cli"
	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/options"
	"github.com/edwloef/chomsky/pkg/log"
)

// The main entrypoint for chomsky
func main() {
	opts := options.NewOptions()

	defer errors.Recover(checkForErrorsAndExit(opts.Logger))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewApp(opts).RunContext(ctx, os.Args)

	cancel()
	checkForErrorsAndExit(opts.Logger)(err)
}

// If there is an error, display it in the console and exit with a non-zero exit code. Otherwise, exit 0.
func checkForErrorsAndExit(logger log.Logger) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		}

		logger.Error(err.Error())

		if errStack := errors.ErrorStack(err); errStack != "" {
			logger.Trace(errStack)
		}

		// exit with the underlying error code
		os.Exit(errors.ExitCode(err))
	}
}
