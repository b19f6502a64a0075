package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError collects the individual field failures of a form submission.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, ", ")
}

// ContactForm carries the fields of a contact page submission.
type ContactForm struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Message string `validate:"required"`
}

var contactMessages = map[string]string{
	"Name.required":    "Name is required",
	"Email.required":   "Email is required",
	"Email.email":      "Email must be a valid address",
	"Message.required": "Message is required",
}

// ValidateContactForm checks the three required contact fields.
func ValidateContactForm(form ContactForm) error {
	form.Name = strings.TrimSpace(form.Name)
	form.Message = strings.TrimSpace(form.Message)

	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var failures []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		key := fieldErr.Field() + "." + fieldErr.Tag()
		if msg, ok := contactMessages[key]; ok {
			failures = append(failures, msg)
		} else {
			failures = append(failures, fmt.Sprintf("%s: %s", fieldErr.Field(), fieldErr.Tag()))
		}
	}
	return &ValidationError{Errors: failures}
}
