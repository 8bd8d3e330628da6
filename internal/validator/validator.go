package validator

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Get returns the process-wide validator instance.
func Get() *validator.Validate {
	return validate
}
