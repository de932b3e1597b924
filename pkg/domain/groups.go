package domain

import "sort"

// CoreqGroup is a set of courses linked (directly or transitively) by
// co-requisite edges. Members are meant to be enrolled in together; the
// group with a single member is the common case of a course without
// co-requisites.
type CoreqGroup struct {
	// Codes are the member course codes, sorted.
	Codes []string
}

// Semester returns the earliest declared semester among the members,
// used for display ordering.
func (g CoreqGroup) Semester(cur *Curriculum) int {
	min := 0
	for i, code := range g.Codes {
		course, ok := cur.Course(code)
		if !ok {
			continue
		}
		if i == 0 || course.Semester < min {
			min = course.Semester
		}
	}
	return min
}

// CoreqGroups partitions the curriculum into connected components over
// the co-requisite relation. Edges are treated as undirected: if A lists
// B as a co-requisite, A and B land in the same group regardless of
// whether B lists A back.
func CoreqGroups(cur *Curriculum) []CoreqGroup {
	// Undirected adjacency over coreq edges.
	adj := make(map[string][]string, cur.Len())
	for _, course := range cur.Courses() {
		for _, co := range course.Corequisites {
			adj[course.Code] = append(adj[course.Code], co)
			adj[co] = append(adj[co], course.Code)
		}
	}

	seen := make(map[string]bool, cur.Len())
	var groups []CoreqGroup
	for _, code := range cur.Codes() {
		if seen[code] {
			continue
		}
		// Depth-first walk of the component.
		var comp []string
		stack := []string{code}
		for len(stack) > 0 {
			curCode := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[curCode] {
				continue
			}
			seen[curCode] = true
			comp = append(comp, curCode)
			stack = append(stack, adj[curCode]...)
		}
		sort.Strings(comp)
		groups = append(groups, CoreqGroup{Codes: comp})
	}
	return groups
}

// GroupFor returns the co-requisite group containing code, or false if
// the code is not part of the curriculum.
func GroupFor(cur *Curriculum, code string) (CoreqGroup, bool) {
	if _, ok := cur.Course(code); !ok {
		return CoreqGroup{}, false
	}
	for _, g := range CoreqGroups(cur) {
		for _, member := range g.Codes {
			if member == code {
				return g, true
			}
		}
	}
	return CoreqGroup{}, false
}

// GroupEnrollable reports whether the whole group can be started together:
// no member is completed yet and every member's prerequisites are
// completed.
func GroupEnrollable(cur *Curriculum, progress Progress, g CoreqGroup) bool {
	for _, code := range g.Codes {
		if progress.Get(code) == StatusCompleted {
			return false
		}
		course, ok := cur.Course(code)
		if !ok {
			return false
		}
		for _, pre := range course.Prerequisites {
			if progress.Get(pre) != StatusCompleted {
				return false
			}
		}
	}
	return true
}
