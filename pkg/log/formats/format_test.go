package formats_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/edwloef/chomsky/pkg/log"
	"github.com/edwloef/chomsky/pkg/log/formats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	formatter, err := formats.ParseFormat("", &buf)
	require.NoError(t, err)
	assert.Equal(t, formats.KeyValueFormatterName, formatter.Name())

	keyValue, ok := formatter.(*formats.KeyValueFormatter)
	require.True(t, ok)
	assert.True(t, keyValue.DisableColors, "colors are off when not writing to a terminal")

	formatter, err = formats.ParseFormat(" JSON ", &buf)
	require.NoError(t, err)
	assert.Equal(t, formats.JSONFormatterName, formatter.Name())

	_, err = formats.ParseFormat("pretty", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key-value, json")

	assert.False(t, formats.IsTerminal(&buf))
}

func TestKeyValueFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	formatter := formats.NewKeyValueFormatter()
	formatter.DisableColors = true
	formatter.DisableTimestamp = true

	logger := log.New(log.WithOutput(&buf), log.WithFormatter(formatter))
	logger.WithField(log.FieldKeyGeneration, 3).WithField(log.FieldKeyGrammar, "an bn.json").Info("Derived 4 words")

	assert.Equal(t, `level=info msg="Derived 4 words" generation=3 grammar="an bn.json"`+"\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	formatter := formats.NewJSONFormatter()
	formatter.DisableTimestamp = true

	logger := log.New(log.WithOutput(&buf), log.WithFormatter(formatter))
	logger.WithError(errors.New("frontier exhausted")).WithField(log.FieldKeyGeneration, 2).Warn("stopped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))

	assert.Equal(t, "stopped", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.InDelta(t, 2, entry["generation"], 0)
	assert.Equal(t, "frontier exhausted", entry["error"])
	assert.NotContains(t, entry, "time")
}
