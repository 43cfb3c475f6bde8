package formats

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/pkg/log"
)

const (
	KeyValueFormatterName = "key-value"

	defaultKeyValueFormatterTimestampFormat = time.RFC3339
)

// KeyValueFormatter implements formats.Formatter
var _ Formatter = new(KeyValueFormatter)

// KeyValueFormatter renders entries as `time=... level=... msg=... key=value`.
type KeyValueFormatter struct {
	colors log.CompiledColorScheme

	// DisableTimestamp allows disabling automatic timestamps in output
	DisableTimestamp bool

	// DisableColors disables ANSI colors of the level and prefix values.
	DisableColors bool

	// Timestamp format to use for display when a full timestamp is printed.
	TimestampFormat string
}

// NewKeyValueFormatter returns a new KeyValueFormatter instance with default values.
func NewKeyValueFormatter() *KeyValueFormatter {
	return &KeyValueFormatter{
		colors:          log.DefaultColorScheme(),
		TimestampFormat: defaultKeyValueFormatterTimestampFormat,
	}
}

// Name implements Formatter.
func (formatter *KeyValueFormatter) Name() string {
	return KeyValueFormatterName
}

// Format implements log.Formatter.
func (formatter *KeyValueFormatter) Format(entry *log.Entry) ([]byte, error) {
	buf := entry.Buffer
	if buf == nil {
		buf = new(bytes.Buffer)
	}

	fields := entry.Fields
	fields.FixKeyClashes()

	var pairs []string

	if !formatter.DisableTimestamp && formatter.TimestampFormat != "" {
		pairs = append(pairs, formatter.pair(log.FieldKeyTime, entry.Time.Format(formatter.TimestampFormat), log.TimestampStyle))
	}

	level := entry.Level.String()
	if !formatter.DisableColors {
		level = formatter.colors.LevelColorFunc(entry.Level)(level)
	}

	pairs = append(pairs, log.FieldKeyLevel+"="+level)

	if val, ok := fields[log.FieldKeyPrefix].(string); ok && val != "" {
		pairs = append(pairs, formatter.pair(log.FieldKeyPrefix, val, log.PrefixStyle))
	}

	if entry.Message != "" {
		pairs = append(pairs, formatter.pair(log.FieldKeyMsg, entry.Message, log.None))
	}

	for _, key := range fields.Keys(log.FieldKeyPrefix) {
		pairs = append(pairs, formatter.pair(key, fields[key], log.None))
	}

	if _, err := buf.WriteString(strings.Join(pairs, " ")); err != nil {
		return nil, errors.New(err)
	}

	if err := buf.WriteByte('\n'); err != nil {
		return nil, errors.New(err)
	}

	return buf.Bytes(), nil
}

func (formatter *KeyValueFormatter) pair(key string, value any, style log.ColorStyleName) string {
	str := quoteIfNeeded(fmt.Sprint(value))

	if !formatter.DisableColors && style != log.None {
		str = formatter.colors.ColorFunc(style)(str)
	}

	return key + "=" + str
}

func quoteIfNeeded(str string) string {
	if str == "" || strings.ContainsAny(str, " \t\n\"=") {
		return fmt.Sprintf("%q", str)
	}

	return str
}
