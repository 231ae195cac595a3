package validate

import "github.com/go-playground/validator/v10"

var v = validator.New()

// Struct validates a request DTO against its `validate` tags. It returns a
// field-to-tag map on failure, nil on success.
func Struct(s interface{}) map[string]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": "invalid"}
	}

	fields := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		fields[ve.Field()] = ve.Tag()
	}
	return fields
}
