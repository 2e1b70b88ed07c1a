package validator

import (
	"errors"
	"strings"
	"testing"

	"rentwise-portal-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_ContactForm(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		form      domain.ContactForm
		wantField string
		wantMsg   string
	}{
		{name: "only last name", form: domain.ContactForm{LastName: "Doe"}},
		{name: "full form", form: domain.ContactForm{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Message: "Hi"}},
		{name: "missing last name", form: domain.ContactForm{FirstName: "Jane"}, wantField: "lastName", wantMsg: domain.MsgLastNameRequired},
		{name: "bad email", form: domain.ContactForm{LastName: "Doe", Email: "nope"}, wantField: "email", wantMsg: "Email is not valid"},
		{name: "long first name", form: domain.ContactForm{FirstName: strings.Repeat("a", 81), LastName: "Doe"}, wantField: "firstName", wantMsg: "firstName is invalid (max)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *domain.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantField, validationErr.Field)
			assert.Equal(t, tt.wantMsg, validationErr.Message)
		})
	}
}
