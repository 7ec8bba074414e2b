package forms

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// RegisterValidators adds the custom tags used by the query forms
func RegisterValidators(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"weekday":      Weekday,
		"exportFormat": ExportFormat,
		"notblank":     validators.NotBlank,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
