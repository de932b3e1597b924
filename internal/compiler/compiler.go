// Package compiler builds validated Curriculum graphs out of plan
// documents. All structural invariants (referential integrity, no
// self-loops, acyclic prerequisites) are enforced here, so downstream
// code never has to re-check them.
package compiler

import (
	"sort"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/plan"
)

// Compile converts a decoded plan document into an immutable Curriculum.
// The build is two-pass: courses first, then edge validation, so edge
// checks always see the full course set. On any error no curriculum is
// returned; a partially-built graph never escapes.
func Compile(name string, doc plan.Document) (*domain.Curriculum, error) {
	courses := make(map[string]*domain.Course, len(doc))
	for code, cd := range doc {
		courses[code] = &domain.Course{
			Code:           code,
			Name:           cd.Name,
			Credits:        cd.Credits,
			Prerequisites:  append([]string(nil), cd.Prerequisites...),
			Corequisites:   append([]string(nil), cd.Corequisites...),
			Semester:       cd.Semester,
			DeclaredStatus: domain.Status(cd.Status),
		}
	}

	// Deterministic validation order so the same broken plan always
	// reports the same error.
	codes := make([]string, 0, len(courses))
	for code := range courses {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		course := courses[code]
		if err := checkEdges(courses, course, course.Prerequisites, "prerequisite"); err != nil {
			return nil, err
		}
		if err := checkEdges(courses, course, course.Corequisites, "corequisite"); err != nil {
			return nil, err
		}
	}

	if err := detectCycles(courses, codes); err != nil {
		return nil, err
	}

	return domain.NewCurriculum(name, courses), nil
}

func checkEdges(courses map[string]*domain.Course, course *domain.Course, edges []string, kind string) error {
	for _, target := range edges {
		if target == course.Code {
			return &domain.SelfReferenceError{Course: course.Code, Kind: kind}
		}
		if _, ok := courses[target]; !ok {
			return &domain.ReferenceError{Course: course.Code, Missing: target, Kind: kind}
		}
	}
	return nil
}

// detectCycles runs a depth-first search over the prerequisite relation
// with three node sets: permanent (fully visited, known safe), temporary
// (on the current recursion stack) and unvisited. Hitting a temporary
// node means the prerequisite relation loops back on itself.
func detectCycles(courses map[string]*domain.Course, codes []string) error {
	permanent := make(map[string]bool, len(courses))
	temporary := make(map[string]bool)

	var visit func(code string) error
	visit = func(code string) error {
		if permanent[code] {
			return nil
		}
		if temporary[code] {
			return &domain.CycleError{Course: code}
		}

		temporary[code] = true
		for _, pre := range courses[code].Prerequisites {
			if err := visit(pre); err != nil {
				return err
			}
		}
		delete(temporary, code)
		permanent[code] = true
		return nil
	}

	for _, code := range codes {
		if err := visit(code); err != nil {
			return err
		}
	}
	return nil
}
