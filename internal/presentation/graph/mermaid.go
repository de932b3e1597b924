// Package graph renders curriculum graphs as Mermaid flowcharts.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart from a curriculum.
// Prerequisite edges are solid arrows into the dependent course;
// co-requisite edges are dotted. When an eligibility overlay is
// provided, courses are styled by label (completed/eligible/locked).
func GenerateMermaid(cur *domain.Curriculum, overlay map[string]domain.Eligibility) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, course := range cur.Courses() {
		safeID := sanitizeMermaidID(course.Code)

		label := fmt.Sprintf("    %s[\"%s <br/> %s (S%d)\"]\n",
			safeID, course.Code, escapeMermaidLabel(course.Name), course.Semester)
		sb.WriteString(label)

		for _, pre := range course.Prerequisites {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeMermaidID(pre), safeID))
		}
		for _, co := range course.Corequisites {
			sb.WriteString(fmt.Sprintf("    %s -. coreq .-> %s\n", sanitizeMermaidID(co), safeID))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Eligibility Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds
		sb.WriteString("    classDef completed fill:#dcfce7,stroke:#15803d,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef eligible fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef locked fill:#f3f4f6,stroke:#9ca3af,stroke-width:1px,color:#000;\n")

		for _, code := range cur.Codes() {
			label, ok := overlay[code]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(code), label))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
