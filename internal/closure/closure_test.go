package closure_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/edwloef/chomsky/internal/closure"
	"github.com/edwloef/chomsky/internal/grammar"
	"github.com/edwloef/chomsky/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, start string, terms []string, rules ...string) *grammar.Grammar {
	t.Helper()

	require.Zero(t, len(rules)%2, "rules are from/to pairs")

	desc := &grammar.Description{
		TermSymbols: terms,
		StartSymbol: start,
	}

	for i := 0; i < len(rules); i += 2 {
		desc.Rules = append(desc.Rules, grammar.RuleDescription{From: rules[i], To: rules[i+1]})
	}

	g, err := grammar.Compile(context.Background(), desc, grammar.WithLogger(discardLogger()))
	require.NoError(t, err)

	return g
}

func discardLogger() log.Logger {
	return log.New(log.WithOutput(io.Discard))
}

func run(t *testing.T, g *grammar.Grammar, opts ...closure.Option) *closure.Result {
	t.Helper()

	opts = append([]closure.Option{closure.WithLogger(discardLogger())}, opts...)

	result, err := closure.Run(context.Background(), g, opts...)
	require.NoError(t, err)

	return result
}

func TestRunScenarios(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		start         string
		terms         []string
		rules         []string
		maxIters      int
		expectedIters int
		expectedWords []string
		fixpoint      bool
	}{
		{
			name:          "balanced words capped at two generations",
			start:         "S",
			terms:         []string{"a", "b"},
			rules:         []string{"S", "aSb", "S", ""},
			maxIters:      2,
			expectedIters: 2,
			expectedWords: []string{"", "ab"},
		},
		{
			name:          "terminal start word",
			start:         "ab",
			terms:         []string{"a", "b"},
			rules:         []string{"S", "aSb"},
			maxIters:      closure.NoLimit,
			expectedIters: 0,
			expectedWords: []string{"ab"},
			fixpoint:      true,
		},
		{
			name:          "terminal start word with a matching rule",
			start:         "ab",
			terms:         []string{"a", "b"},
			rules:         []string{"a", "b"},
			maxIters:      closure.NoLimit,
			expectedIters: 0,
			expectedWords: []string{"ab"},
			fixpoint:      true,
		},
		{
			name:          "zero cap processes no generation",
			start:         "S",
			terms:         []string{"a", "b"},
			rules:         []string{"S", "aSb", "S", ""},
			maxIters:      0,
			expectedIters: 0,
			expectedWords: []string{},
		},
		{
			name:          "empty word is a result",
			start:         "S",
			terms:         []string{"a"},
			rules:         []string{"S", ""},
			maxIters:      closure.NoLimit,
			expectedIters: 1,
			expectedWords: []string{""},
			fixpoint:      true,
		},
		{
			name:          "finite language reaches fixpoint",
			start:         "S",
			terms:         []string{"a", "b"},
			rules:         []string{"S", "AB", "A", "a", "B", "b"},
			maxIters:      closure.NoLimit,
			expectedIters: 3,
			expectedWords: []string{"ab"},
			fixpoint:      true,
		},
		{
			name:          "one derived word per occurrence",
			start:         "aXbXc",
			terms:         []string{"a", "b", "c", "d"},
			rules:         []string{"X", "d"},
			maxIters:      closure.NoLimit,
			expectedIters: 2,
			expectedWords: []string{"adbdc"},
			fixpoint:      true,
		},
		{
			name:          "multi-byte symbols",
			start:         "σ",
			terms:         []string{"α", "β"},
			rules:         []string{"σ", "ασβ", "σ", "αβ"},
			maxIters:      3,
			expectedIters: 3,
			expectedWords: []string{"αααβββ", "ααββ", "αβ"},
		},
		{
			name:          "cycle without terminal words stops at the cap",
			start:         "A",
			terms:         []string{"a"},
			rules:         []string{"A", "B", "B", "A"},
			maxIters:      5,
			expectedIters: 5,
			expectedWords: []string{},
		},
		{
			name:          "grammar without rules",
			start:         "S",
			terms:         []string{"a"},
			maxIters:      closure.NoLimit,
			expectedIters: 1,
			expectedWords: []string{},
			fixpoint:      true,
		},
	}

	for _, tc := range testCases {
		for _, scheduler := range closure.Schedulers {
			t.Run(tc.name+"/"+scheduler.String(), func(t *testing.T) {
				t.Parallel()

				g := compile(t, tc.start, tc.terms, tc.rules...)
				result := run(t, g, closure.WithMaxIters(tc.maxIters), closure.WithScheduler(scheduler), closure.WithParallelism(4))

				assert.Equal(t, tc.expectedIters, result.Iterations)
				assert.Equal(t, tc.expectedWords, result.Words())
				assert.Equal(t, len(tc.expectedWords), result.Len())
				assert.Equal(t, tc.fixpoint, result.Fixpoint)
				assert.Len(t, result.Generations, tc.expectedIters)
			})
		}
	}
}

func TestRunGenerationStatistics(t *testing.T) {
	t.Parallel()

	g := compile(t, "S", []string{"a", "b"}, "S", "aSb", "S", "")
	result := run(t, g, closure.WithMaxIters(2))

	assert.Equal(t, []closure.Generation{
		{Index: 1, Frontier: 1, Derived: 2, Next: 1, Results: 1},
		{Index: 2, Frontier: 1, Derived: 2, Next: 1, Results: 2},
	}, result.Generations)
	assert.True(t, result.Contains("ab"))
	assert.False(t, result.Contains("aSb"))
}

func TestRunDeduplicatesWithinGeneration(t *testing.T) {
	t.Parallel()

	// both occurrences of X lead to the same word in the second generation
	g := compile(t, "XX", []string{"a"}, "X", "a")
	result := run(t, g)

	require.Len(t, result.Generations, 2)
	assert.Equal(t, 2, result.Generations[0].Derived)
	assert.Equal(t, 2, result.Generations[0].Next)
	assert.Equal(t, 2, result.Generations[1].Derived)
	assert.Equal(t, 1, result.Generations[1].Results)
	assert.Equal(t, []string{"aa"}, result.Words())
}

func TestRunNoDeduplicationAgainstHistory(t *testing.T) {
	t.Parallel()

	g := compile(t, "A", []string{"a"}, "A", "B", "B", "A")
	result := run(t, g, closure.WithMaxIters(4))

	for _, generation := range result.Generations {
		assert.Equal(t, 1, generation.Frontier)
		assert.Equal(t, 1, generation.Next)
	}
}

func TestRunSchedulersAgree(t *testing.T) {
	t.Parallel()

	grammars := map[string]*grammar.Grammar{
		"palindromes": compile(t, "S", []string{"a", "b"}, "S", "aSa", "S", "bSb", "S", "a", "S", "b", "S", ""),
		"dyck":        compile(t, "S", []string{"(", ")"}, "S", "SS", "S", "(S)", "S", ""),
		"expressions": compile(t, "E", []string{"x", "+", "*"}, "E", "E+T", "E", "T", "T", "T*x", "T", "x"),
	}

	for name, g := range grammars {
		for maxIters := 0; maxIters <= 4; maxIters++ {
			t.Run(fmt.Sprintf("%s/%d", name, maxIters), func(t *testing.T) {
				t.Parallel()

				sequential := run(t, g, closure.WithMaxIters(maxIters), closure.WithScheduler(closure.SequentialScheduler))
				parallel := run(t, g, closure.WithMaxIters(maxIters), closure.WithScheduler(closure.ParallelScheduler), closure.WithParallelism(3))

				assert.Equal(t, sequential.Iterations, parallel.Iterations)
				assert.Equal(t, sequential.Words(), parallel.Words())
				assert.Equal(t, sequential.Generations, parallel.Generations)
				assert.LessOrEqual(t, sequential.Iterations, maxIters)

				for _, word := range sequential.Words() {
					assert.True(t, g.IsTerminalOnly(word), "word %q is not terminal-only", word)
				}
			})
		}
	}
}

func TestRunIdempotentAtFixpoint(t *testing.T) {
	t.Parallel()

	g := compile(t, "S", []string{"a", "b", "c"}, "S", "AB", "A", "a", "A", "c", "B", "b")

	atFixpoint := run(t, g)
	require.True(t, atFixpoint.Fixpoint)

	for _, maxIters := range []int{atFixpoint.Iterations, atFixpoint.Iterations + 1, atFixpoint.Iterations + 10} {
		capped := run(t, g, closure.WithMaxIters(maxIters))

		assert.Equal(t, atFixpoint.Words(), capped.Words())
		assert.Equal(t, atFixpoint.Iterations, capped.Iterations)
	}
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	g := compile(t, "S", []string{"a", "b"}, "S", "aSb", "S", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, scheduler := range closure.Schedulers {
		result, err := closure.Run(ctx, g, closure.WithScheduler(scheduler), closure.WithLogger(discardLogger()))
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
	}
}

func TestRunLogsGenerations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := log.New(log.WithOutput(&buf), log.WithLevel(log.DebugLevel))

	g := compile(t, "S", []string{"a"}, "S", "a")
	_ = run(t, g, closure.WithLogger(logger))

	assert.Contains(t, buf.String(), "Derived 1 words from 1, next frontier 0, results 1")
}

func TestParseScheduler(t *testing.T) {
	t.Parallel()

	scheduler, err := closure.ParseScheduler("Parallel")
	require.NoError(t, err)
	assert.Equal(t, closure.ParallelScheduler, scheduler)

	_, err = closure.ParseScheduler("threaded")

	var schedulerErr closure.UnknownSchedulerError
	require.ErrorAs(t, err, &schedulerErr)
	assert.Equal(t, "threaded", schedulerErr.Name)
}
