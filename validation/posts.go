package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New()

// ErrMissingFields is the inline message shown when a post form is submitted
// without a title or content.
var ErrMissingFields = errors.New("Title and content are required")

// PostForm carries the user-editable fields of a post submission.
type PostForm struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

// ValidatePostForm checks the presence of both required fields. Whitespace-only
// values count as missing.
func ValidatePostForm(form PostForm) error {
	form.Title = strings.TrimSpace(form.Title)
	form.Content = strings.TrimSpace(form.Content)

	if err := validate.Struct(form); err != nil {
		return ErrMissingFields
	}
	return nil
}
