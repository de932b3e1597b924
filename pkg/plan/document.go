package plan

import (
	"github.com/aretw0/espalier/pkg/domain"
)

// Format identifies the serialization of a plan document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// CourseDoc is the per-course record of a plan document.
// The mapstructure tags match the wire keys for both JSON and YAML.
type CourseDoc struct {
	Name          string   `json:"name" yaml:"name" mapstructure:"name"`
	Credits       int      `json:"credits" yaml:"credits" mapstructure:"credits"`
	Prerequisites []string `json:"prerequisites" yaml:"prerequisites" mapstructure:"prerequisites"`
	Corequisites  []string `json:"corequisites" yaml:"corequisites" mapstructure:"corequisites"`
	Status        int      `json:"status" yaml:"status" mapstructure:"status"`
	Semester      int      `json:"semester" yaml:"semester" mapstructure:"semester"`
}

// Document is a full plan: course code to attributes.
type Document map[string]CourseDoc

// FromCurriculum serializes a curriculum plus a progress snapshot back
// into document shape, overwriting each status from the progress.
func FromCurriculum(cur *domain.Curriculum, progress domain.Progress) Document {
	doc := make(Document, cur.Len())
	for _, course := range cur.Courses() {
		status := course.DeclaredStatus
		if progress != nil {
			status = progress.Get(course.Code)
		}
		doc[course.Code] = CourseDoc{
			Name:          course.Name,
			Credits:       course.Credits,
			Prerequisites: append([]string(nil), course.Prerequisites...),
			Corequisites:  append([]string(nil), course.Corequisites...),
			Status:        int(status),
			Semester:      course.Semester,
		}
	}
	return doc
}
