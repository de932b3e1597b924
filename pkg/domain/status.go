package domain

import "fmt"

// Status is the progress of a single course, as declared in plan documents
// and mutated by user action. The integer values are part of the wire
// format and must not be reordered.
type Status int

const (
	// StatusNotTaken marks a course the student has not started.
	StatusNotTaken Status = 0
	// StatusInProgress marks a course the student is currently enrolled in.
	StatusInProgress Status = 1
	// StatusCompleted marks a course the student has passed.
	StatusCompleted Status = 2
)

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	return s == StatusNotTaken || s == StatusInProgress || s == StatusCompleted
}

func (s Status) String() string {
	switch s {
	case StatusNotTaken:
		return "not-taken"
	case StatusInProgress:
		return "in-progress"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Eligibility is the label a resolution pass assigns to each course.
type Eligibility string

const (
	// EligibilityCompleted: the course itself is already completed.
	EligibilityCompleted Eligibility = "completed"
	// EligibilityEligible: the course can be enrolled in right now.
	EligibilityEligible Eligibility = "eligible"
	// EligibilityLocked: at least one prerequisite is not completed, or
	// at least one co-requisite has not been started.
	EligibilityLocked Eligibility = "locked"
)
