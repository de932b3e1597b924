package plan

import "fmt"

// ValidationError represents a single field validation failure in a
// course record.
type ValidationError struct {
	Course string // course code the field belongs to
	Field  string // field name
	Reason string // human-readable reason for failure
	Value  any    // the value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("course %q, field %q: %s", e.Course, e.Field, e.Reason)
	}
	return fmt.Sprintf("course %q, field %q: %s (got %v)", e.Course, e.Field, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns all validation errors if err is an
// AggregateError. Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
