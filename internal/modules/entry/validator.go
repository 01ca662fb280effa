package entry

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/typeless-cms/core/internal/models"
)

// Violation is one failed validation rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate folds the field definitions over a candidate data object and
// collects every violation. Required fields must be present and
// non-null; NUMBER, BOOLEAN and EMAIL get structural checks. Every
// other declared type accepts any JSON value; the schema describes
// intent rather than enforcing structure.
//
// Create validates the full data object; update does too whenever a new
// data object is supplied, regardless of which keys it carries.
func Validate(data models.JSONMap, fields []models.FieldDefinitionModel) []Violation {
	var violations []Violation

	for _, field := range fields {
		value, present := data[field.Name]

		if field.Required && (!present || value == nil) {
			violations = append(violations, Violation{
				Field:   field.Name,
				Message: fmt.Sprintf("Field '%s' is required", field.DisplayName),
			})
			continue
		}
		if !present || value == nil {
			continue
		}

		switch field.Type {
		case models.FieldNumber:
			if !isNumeric(value) {
				violations = append(violations, Violation{
					Field:   field.Name,
					Message: fmt.Sprintf("Field '%s' must be a number", field.DisplayName),
				})
			}
		case models.FieldBoolean:
			if _, ok := value.(bool); !ok {
				violations = append(violations, Violation{
					Field:   field.Name,
					Message: fmt.Sprintf("Field '%s' must be a boolean", field.DisplayName),
				})
			}
		case models.FieldEmail:
			s, ok := value.(string)
			if !ok || !emailPattern.MatchString(s) {
				violations = append(violations, Violation{
					Field:   field.Name,
					Message: fmt.Sprintf("Field '%s' must be a valid email address", field.DisplayName),
				})
			}
		}
	}

	return violations
}

func isNumeric(value interface{}) bool {
	switch v := value.(type) {
	case float64, float32, int, int32, int64:
		return true
	case json.Number:
		_, err := v.Float64()
		return err == nil
	}
	return false
}
