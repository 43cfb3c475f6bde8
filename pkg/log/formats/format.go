// Package formats contains the formatters that render log entries, selected by name with ParseFormat.
package formats

import (
	"io"
	"os"
	"strings"

	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/pkg/log"
	"github.com/mattn/go-isatty"
)

// Formatter is a named log.Formatter.
type Formatter interface {
	log.Formatter

	Name() string
}

// Formatters is a list of formatters.
type Formatters []Formatter

// Names returns the names of the formatters.
func (formatters Formatters) Names() []string {
	strs := make([]string, len(formatters))

	for i, formatter := range formatters {
		strs[i] = formatter.Name()
	}

	return strs
}

func (formatters Formatters) String() string {
	return strings.Join(formatters.Names(), ", ")
}

// AllFormatters returns a fresh instance of every formatter. Colors of the key-value formatter
// are only enabled when out is a terminal.
func AllFormatters(out io.Writer) Formatters {
	keyValue := NewKeyValueFormatter()
	keyValue.DisableColors = !IsTerminal(out)

	return Formatters{
		keyValue,
		NewJSONFormatter(),
	}
}

// ParseFormat returns the formatter with the given name.
func ParseFormat(name string, out io.Writer) (Formatter, error) {
	all := AllFormatters(out)

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = KeyValueFormatterName
	}

	for _, formatter := range all {
		if formatter.Name() == name {
			return formatter, nil
		}
	}

	return nil, errors.Errorf("invalid log format %q, supported formats: %s", name, all)
}

// IsTerminal reports whether out is a file descriptor attached to a terminal.
func IsTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
