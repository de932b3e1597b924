package plan

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/espalier/pkg/domain"
)

// Parse decodes raw JSON or YAML bytes into a validated Document.
func Parse(data []byte, format Format) (Document, error) {
	raw := make(map[string]any)
	switch format {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid json document: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid yaml document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported plan format: %q", format)
	}
	return Decode(raw)
}

// Decode converts a loosely-typed document (as produced by json/yaml
// unmarshaling) into a typed Document. All field failures across all
// courses are collected into a single AggregateError so a malformed plan
// is reported in one pass.
func Decode(raw map[string]any) (Document, error) {
	doc := make(Document, len(raw))
	var errs []error

	for code, entry := range raw {
		if code == "" {
			errs = append(errs, &ValidationError{Course: code, Field: "code", Reason: "empty course code"})
			continue
		}

		fields, ok := entry.(map[string]any)
		if !ok {
			errs = append(errs, &ValidationError{
				Course: code,
				Field:  "",
				Reason: fmt.Sprintf("expected object, got %T", entry),
			})
			continue
		}

		var cd CourseDoc
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &cd,
			WeaklyTypedInput: true, // json.Number / float64 → int
		})
		if err != nil {
			return nil, fmt.Errorf("decoder setup failed: %w", err)
		}
		if err := decoder.Decode(fields); err != nil {
			errs = append(errs, &ValidationError{Course: code, Field: "", Reason: err.Error()})
			continue
		}

		errs = append(errs, validateCourse(code, cd)...)
		doc[code] = cd
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return doc, nil
}

func validateCourse(code string, cd CourseDoc) []error {
	var errs []error
	if cd.Name == "" {
		errs = append(errs, &ValidationError{Course: code, Field: "name", Reason: "required"})
	}
	if cd.Credits < 0 {
		errs = append(errs, &ValidationError{Course: code, Field: "credits", Reason: "must not be negative", Value: cd.Credits})
	}
	if !domain.Status(cd.Status).Valid() {
		errs = append(errs, &ValidationError{Course: code, Field: "status", Reason: "must be 0, 1 or 2", Value: cd.Status})
	}
	if cd.Semester < 0 {
		errs = append(errs, &ValidationError{Course: code, Field: "semester", Reason: "must not be negative", Value: cd.Semester})
	}
	for i, pre := range cd.Prerequisites {
		if pre == "" {
			errs = append(errs, &ValidationError{Course: code, Field: fmt.Sprintf("prerequisites[%d]", i), Reason: "empty course code"})
		}
	}
	for i, co := range cd.Corequisites {
		if co == "" {
			errs = append(errs, &ValidationError{Course: code, Field: fmt.Sprintf("corequisites[%d]", i), Reason: "empty course code"})
		}
	}
	return errs
}

// EncodeJSON serializes the document as indented JSON, the format used for
// progress downloads.
func EncodeJSON(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// EncodeYAML serializes the document as YAML.
func EncodeYAML(doc Document) ([]byte, error) {
	return yaml.Marshal(doc)
}
