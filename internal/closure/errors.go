package closure

import "fmt"

// UnknownSchedulerError is returned for a scheduler name that is not supported.
type UnknownSchedulerError struct {
	Name string
}

func (err UnknownSchedulerError) Error() string {
	return fmt.Sprintf("unknown scheduler %q, expected one of %v", err.Name, Schedulers)
}
