package formats

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/pkg/log"
)

const (
	JSONFormatterName = "json"

	defaultJSONFormatterTimestampFormat = time.RFC3339
)

// JSONFormatter implements formats.Formatter
var _ Formatter = new(JSONFormatter)

// JSONFormatter renders every entry as a single JSON object.
type JSONFormatter struct {
	// DisableTimestamp allows disabling automatic timestamps in output
	DisableTimestamp bool

	// Timestamp format to use for display when a full timestamp is printed.
	TimestampFormat string

	// EnableIndent enables indent.
	EnableIndent bool
}

// NewJSONFormatter returns a new JSONFormatter instance with default values.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		TimestampFormat: defaultJSONFormatterTimestampFormat,
	}
}

// Name implements Formatter.
func (formatter *JSONFormatter) Name() string {
	return JSONFormatterName
}

// Format implements log.Formatter.
func (formatter *JSONFormatter) Format(entry *log.Entry) ([]byte, error) {
	buf := entry.Buffer
	if buf == nil {
		buf = new(bytes.Buffer)
	}

	fields := make(log.Fields, len(entry.Fields)+3)

	for k, v := range entry.Fields {
		switch v := v.(type) {
		case error:
			// Otherwise errors are ignored by `encoding/json`
			fields[k] = v.Error()
		default:
			fields[k] = v
		}
	}

	fields.FixKeyClashes()

	if !formatter.DisableTimestamp && formatter.TimestampFormat != "" {
		fields[log.FieldKeyTime] = entry.Time.Format(formatter.TimestampFormat)
	}

	fields[log.FieldKeyMsg] = entry.Message
	fields[log.FieldKeyLevel] = entry.Level.String()

	encoder := json.NewEncoder(buf)
	if formatter.EnableIndent {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(fields); err != nil {
		return nil, errors.Errorf("failed to marshal fields to JSON, %w", err)
	}

	return buf.Bytes(), nil
}
