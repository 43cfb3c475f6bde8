package run_test

import (
	"testing"

	"github.com/edwloef/chomsky/cli/commands/run"
	"github.com/edwloef/chomsky/internal/closure"
	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name             string
		args             []string
		expectedPath     string
		expectedMaxIters int
		expectedErr      bool
	}{
		{name: "path only", args: []string{"g.json"}, expectedPath: "g.json", expectedMaxIters: closure.NoLimit},
		{name: "path and cap", args: []string{"g.json", "7"}, expectedPath: "g.json", expectedMaxIters: 7},
		{name: "zero cap", args: []string{"g.json", "0"}, expectedPath: "g.json", expectedMaxIters: 0},
		{name: "no args", args: nil, expectedErr: true},
		{name: "negative cap", args: []string{"g.json", "-3"}, expectedErr: true},
		{name: "not a number", args: []string{"g.json", "3.5"}, expectedErr: true},
		{name: "too many", args: []string{"g.json", "1", "extra"}, expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := options.NewOptions()

			err := run.ParseArgs(opts, tc.args)
			if tc.expectedErr {
				require.Error(t, err)
				assert.Equal(t, run.UsageExitCode, errors.ExitCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedPath, opts.GrammarPath)
			assert.Equal(t, tc.expectedMaxIters, opts.MaxIters)
		})
	}
}
