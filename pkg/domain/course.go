package domain

import "sort"

// Course represents a single subject in a curriculum graph.
// Prerequisite and co-requisite edges reference other courses by code.
type Course struct {
	// Code is the unique, stable identifier (e.g. "COM-11101").
	Code string `json:"code"`

	// Name is the display name.
	Name string `json:"name"`

	// Credits is the credit weight of the course.
	Credits int `json:"credits"`

	// Prerequisites lists course codes that must be completed before this
	// course becomes eligible.
	Prerequisites []string `json:"prerequisites"`

	// Corequisites lists course codes that must be in progress or
	// completed concurrently with this course.
	Corequisites []string `json:"corequisites"`

	// Semester is the declared curriculum semester, used for display
	// grouping only.
	Semester int `json:"semester"`

	// DeclaredStatus is the status carried by the plan document. It seeds
	// a fresh Progress and is never mutated afterwards.
	DeclaredStatus Status `json:"status"`
}

// Curriculum is the immutable graph of a study plan. It is only ever
// constructed by the compiler, which guarantees the referential,
// self-reference and acyclicity invariants before it escapes.
type Curriculum struct {
	name    string
	courses map[string]*Course
	order   []string
}

// NewCurriculum assembles a curriculum from validated courses.
// Callers outside the compiler should not use this directly; a curriculum
// built from unchecked edges breaks the resolver's invariants.
func NewCurriculum(name string, courses map[string]*Course) *Curriculum {
	order := make([]string, 0, len(courses))
	for code := range courses {
		order = append(order, code)
	}
	sort.Strings(order)
	return &Curriculum{name: name, courses: courses, order: order}
}

// Name returns the plan name this curriculum was built from.
func (c *Curriculum) Name() string { return c.name }

// Len returns the number of courses.
func (c *Curriculum) Len() int { return len(c.courses) }

// Course looks up a course by code.
func (c *Curriculum) Course(code string) (*Course, bool) {
	course, ok := c.courses[code]
	return course, ok
}

// Codes returns all course codes in deterministic (sorted) order.
func (c *Curriculum) Codes() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Courses returns all courses in deterministic order.
func (c *Curriculum) Courses() []*Course {
	out := make([]*Course, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.courses[code])
	}
	return out
}

// BySemester groups course codes by declared semester, each group sorted
// by code. Display helper for the UI collaborator.
func (c *Curriculum) BySemester() map[int][]string {
	groups := make(map[int][]string)
	for _, code := range c.order {
		sem := c.courses[code].Semester
		groups[sem] = append(groups[sem], code)
	}
	return groups
}
