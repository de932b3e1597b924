// Package tui renders eligibility listings for the terminal.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/espalier/pkg/domain"
)

// Renderer colors eligibility listings using the terminal's color
// profile, degrading gracefully on dumb terminals.
type Renderer struct {
	profile termenv.Profile
}

// NewRenderer detects the terminal color profile.
func NewRenderer() *Renderer {
	return &Renderer{profile: termenv.ColorProfile()}
}

func (r *Renderer) paint(s string, hex string) string {
	return termenv.String(s).Foreground(r.profile.Color(hex)).String()
}

func (r *Renderer) labelTag(label domain.Eligibility) string {
	switch label {
	case domain.EligibilityCompleted:
		return r.paint("✔ completed", "#22c55e")
	case domain.EligibilityEligible:
		return r.paint("● eligible ", "#38bdf8")
	default:
		return r.paint("✖ locked   ", "#9ca3af")
	}
}

// RenderCurriculum prints the curriculum grouped by semester, one line
// per course with its eligibility label.
func (r *Renderer) RenderCurriculum(cur *domain.Curriculum, elig map[string]domain.Eligibility) string {
	var sb strings.Builder

	sb.WriteString(r.paint(fmt.Sprintf("Plan: %s (%d courses)", cur.Name(), cur.Len()), "#a78bfa"))
	sb.WriteString("\n\n")

	bySem := cur.BySemester()
	semesters := make([]int, 0, len(bySem))
	for sem := range bySem {
		semesters = append(semesters, sem)
	}
	sort.Ints(semesters)

	for _, sem := range semesters {
		sb.WriteString(r.paint(fmt.Sprintf("Semestre %d", sem), "#f472b6"))
		sb.WriteString("\n")
		for _, code := range bySem[sem] {
			course, _ := cur.Course(code)
			sb.WriteString(fmt.Sprintf("  %s  %s - %s (%d cr)\n",
				r.labelTag(elig[code]), code, course.Name, course.Credits))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderGroups prints enrollable co-requisite packages, one bullet per
// package.
func (r *Renderer) RenderGroups(cur *domain.Curriculum, groups []domain.CoreqGroup) string {
	var sb strings.Builder
	if len(groups) == 0 {
		sb.WriteString("No courses available right now.\n")
		return sb.String()
	}
	for _, g := range groups {
		labels := make([]string, 0, len(g.Codes))
		for _, code := range g.Codes {
			course, ok := cur.Course(code)
			if !ok {
				continue
			}
			labels = append(labels, fmt.Sprintf("%s - %s (S%d)", code, course.Name, course.Semester))
		}
		sb.WriteString(" • " + strings.Join(labels, "  |  ") + "\n")
	}
	return sb.String()
}
