package domain

// Progress is the mutable per-session status overlay on a Curriculum.
// It maps every course code of the curriculum to its current Status.
// Progress is owned by exactly one session; it is never shared.
type Progress map[string]Status

// NewProgress seeds a progress map from the curriculum's declared statuses.
func NewProgress(cur *Curriculum) Progress {
	p := make(Progress, cur.Len())
	for _, course := range cur.Courses() {
		p[course.Code] = course.DeclaredStatus
	}
	return p
}

// Get returns the status for a course code, defaulting to not-taken if
// the code is absent. Stores and resolvers that require the code to exist
// must check membership through the Curriculum.
func (p Progress) Get(code string) Status {
	return p[code]
}

// Clone returns an independent copy. Stores copy on read and write so a
// caller can never mutate persisted state through a shared reference.
func (p Progress) Clone() Progress {
	out := make(Progress, len(p))
	for code, status := range p {
		out[code] = status
	}
	return out
}

// Reset sets every course back to not-taken.
func (p Progress) Reset() {
	for code := range p {
		p[code] = StatusNotTaken
	}
}
