package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ReferenceError reports a prerequisite or co-requisite edge pointing at a
// course code that does not exist in the plan.
type ReferenceError struct {
	Course  string // course declaring the edge
	Missing string // code that did not resolve
	Kind    string // "prerequisite" or "corequisite"
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("course %q references unknown %s %q", e.Course, e.Kind, e.Missing)
}

// SelfReferenceError reports a course listing itself as its own
// prerequisite or co-requisite.
type SelfReferenceError struct {
	Course string
	Kind   string
}

func (e *SelfReferenceError) Error() string {
	return fmt.Sprintf("course %q lists itself as a %s", e.Course, e.Kind)
}

// CycleError reports a cycle in the prerequisite relation, naming one
// course involved in it.
type CycleError struct {
	Course string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("prerequisite cycle detected involving course %q", e.Course)
}

// UnknownCourseError reports a status update targeting a course code that
// is absent from the curriculum. The update is rejected without mutating
// any state.
type UnknownCourseError struct {
	Course string
}

func (e *UnknownCourseError) Error() string {
	return fmt.Sprintf("unknown course %q", e.Course)
}

// InvariantViolation reports an internal consistency failure detected
// after load. It is unrecoverable: by construction the compiler rejects
// every input that could lead here, so retrying cannot help.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Reason
}
