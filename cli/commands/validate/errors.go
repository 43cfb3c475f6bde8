package validate

import "fmt"

// NoMatchError is returned when a pattern matches no file.
type NoMatchError struct {
	Pattern string
}

func (err NoMatchError) Error() string {
	return fmt.Sprintf("no grammar file matches %q", err.Pattern)
}
