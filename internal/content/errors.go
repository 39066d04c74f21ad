package content

import "fmt"

// ValidationError reports a missing required field on a create payload.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
