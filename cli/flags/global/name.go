package global

import "strings"

// EnvVarName converts a flag name to its environment variable, e.g. `max-iters` to `CHOMSKY_MAX_ITERS`.
func EnvVarName(flagName string) string {
	return EnvVarPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}
