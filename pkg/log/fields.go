package log

import (
	"slices"
	"sort"
)

const (
	FieldKeyPrefix     = "prefix"
	FieldKeyMsg        = "msg"
	FieldKeyLevel      = "level"
	FieldKeyTime       = "time"
	FieldKeyGrammar    = "grammar"
	FieldKeyGeneration = "generation"
)

var logKeys = []string{
	FieldKeyMsg,
	FieldKeyLevel,
	FieldKeyTime,
}

// Fields type, used to pass to `WithFields`.
type Fields map[string]any

// Keys returns the sorted keys of the fields, except for removeKeys.
func (fields Fields) Keys(removeKeys ...string) []string {
	keys := make([]string, 0, len(fields))

	for key := range fields {
		if slices.Contains(removeKeys, key) {
			continue
		}

		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// FixKeyClashes renames user fields named `time`, `msg` or `level` to `fields.<name>`,
// so a formatter never silently drops them.
func (fields Fields) FixKeyClashes() {
	for _, key := range logKeys {
		if val, ok := fields[key]; ok {
			fields["fields."+key] = val
			delete(fields, key)
		}
	}
}
