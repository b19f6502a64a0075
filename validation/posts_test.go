package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePostForm(t *testing.T) {
	tests := []struct {
		name    string
		form    PostForm
		wantErr bool
	}{
		{name: "valid", form: PostForm{Title: "A title", Content: "Some content"}},
		{name: "missing title", form: PostForm{Content: "Some content"}, wantErr: true},
		{name: "missing content", form: PostForm{Title: "A title"}, wantErr: true},
		{name: "whitespace only title", form: PostForm{Title: "   ", Content: "Some content"}, wantErr: true},
		{name: "both missing", form: PostForm{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePostForm(tt.form)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingFields)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
