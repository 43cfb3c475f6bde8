package global_test

import (
	"testing"

	"github.com/edwloef/chomsky/cli/flags/global"
	"github.com/edwloef/chomsky/options"
	"github.com/stretchr/testify/assert"
)

func TestEnvVarName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		flagName string
		expected string
	}{
		{"log-level", "CHOMSKY_LOG_LEVEL"},
		{"max-iters", "CHOMSKY_MAX_ITERS"},
		{"telemetry-trace-exporter-http-endpoint", "CHOMSKY_TELEMETRY_TRACE_EXPORTER_HTTP_ENDPOINT"},
		{"strict", "CHOMSKY_STRICT"},
	}

	for _, tc := range testCases {
		t.Run(tc.flagName, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, global.EnvVarName(tc.flagName))
		})
	}
}

func TestNewFlagsUniqueNames(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}

	for _, flag := range global.NewFlags(options.NewOptions()) {
		for _, name := range flag.Names() {
			assert.False(t, seen[name], "duplicate flag %s", name)
			seen[name] = true
		}
	}

	assert.True(t, seen[global.LogLevelFlagName])
	assert.True(t, seen[global.TelemetryMetricExporterFlagName])
}
