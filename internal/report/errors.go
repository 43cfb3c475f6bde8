package report

import (
	"fmt"
	"strings"
)

// UnsupportedFormatError is returned for an unknown report format.
type UnsupportedFormatError struct {
	Name string
}

func (err UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported report format %q, expected one of %v", err.Name, Formats)
}

// SchemaValidationError represents a schema validation error with details.
type SchemaValidationError struct {
	Errors []string
}

func (err *SchemaValidationError) Error() string {
	return fmt.Sprintf("schema validation failed with %d error(s):\n- %s", len(err.Errors), strings.Join(err.Errors, "\n- "))
}
