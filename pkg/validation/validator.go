// Package validation provides structural validation for built graphs and
// tag-based validation for records crossing the persistence boundary.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rharris115/callable-graph/internal/app/dto"
)

// Validate is the shared validator instance.
var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// Report field names from JSON tags so validation errors match the
	// serialized shape.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// ValidateStruct validates a struct against its `validate` tags.
func ValidateStruct(s any) error {
	if err := Validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ValidateInvocationLog validates a log record before persistence.
func ValidateInvocationLog(log *dto.InvocationLog) error {
	return ValidateStruct(log)
}
