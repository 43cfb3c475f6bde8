package global

import "github.com/urfave/cli/v2"

// SetIn returns the innermost context of cliCtx's lineage in which the flag was set on the
// command line or through its env vars, or nil if it was set nowhere.
func SetIn(cliCtx *cli.Context, flagName string) *cli.Context {
	for _, ctx := range cliCtx.Lineage() {
		if ctx.IsSet(flagName) {
			return ctx
		}
	}

	return nil
}
