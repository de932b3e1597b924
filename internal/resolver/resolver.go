// Package resolver computes per-course eligibility labels from a
// curriculum and a progress snapshot. It is a pure function of its
// inputs: no I/O, no mutation, no traversal beyond one hop.
package resolver

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
)

// Resolve labels every course in the curriculum.
//
// A course is completed if its own status is completed. It is eligible if
// its status is not-taken or in-progress, every prerequisite is
// completed, and no co-requisite is still not-taken. Anything else is
// locked. Prerequisite satisfaction is a local check on already-resolved
// statuses, not a transitive walk: acyclicity was enforced once at load
// time, and statuses are only ever set by direct user action on the
// course itself.
func Resolve(cur *domain.Curriculum, progress domain.Progress) map[string]domain.Eligibility {
	out := make(map[string]domain.Eligibility, cur.Len())
	for _, course := range cur.Courses() {
		out[course.Code] = resolveOne(course, progress)
	}
	return out
}

func resolveOne(course *domain.Course, progress domain.Progress) domain.Eligibility {
	if progress.Get(course.Code) == domain.StatusCompleted {
		return domain.EligibilityCompleted
	}
	for _, pre := range course.Prerequisites {
		if progress.Get(pre) != domain.StatusCompleted {
			return domain.EligibilityLocked
		}
	}
	for _, co := range course.Corequisites {
		if progress.Get(co) == domain.StatusNotTaken {
			return domain.EligibilityLocked
		}
	}
	return domain.EligibilityEligible
}

// CheckInvariants verifies that a progress snapshot covers the whole
// curriculum with valid statuses. The compiler and the engine make this
// state unreachable; a failure here is fatal, not recoverable.
func CheckInvariants(cur *domain.Curriculum, progress domain.Progress) error {
	for _, code := range cur.Codes() {
		status, ok := progress[code]
		if !ok {
			return &domain.InvariantViolation{
				Reason: fmt.Sprintf("progress missing course %q", code),
			}
		}
		if !status.Valid() {
			return &domain.InvariantViolation{
				Reason: fmt.Sprintf("course %q has status %d outside the enum", code, int(status)),
			}
		}
	}
	return nil
}
