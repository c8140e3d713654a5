package contact_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/internal/contact"
	"github.com/dmitrymomot/landing/pkg/validator"
)

func validSubmission() contact.Submission {
	return contact.Submission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "I would like to know more about your plans.",
	}
}

func TestSubmission_Normalize(t *testing.T) {
	t.Parallel()

	got := contact.Submission{
		Name:    "  Jane \t\n Doe ",
		Email:   "  Jane.Doe@Example.COM ",
		Message: "\x1b[31mHello\x1b[0m\r\n\n\n\nthere  ",
	}.Normalize()

	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "jane.doe@example.com", got.Email)
	assert.Equal(t, "Hello\n\nthere", got.Message)
}

func TestSubmission_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validSubmission().Validate())
	})

	t.Run("all empty", func(t *testing.T) {
		t.Parallel()
		err := contact.Submission{}.Validate()
		require.ErrorIs(t, err, validator.ErrValidationFailed)

		errs := validator.Extract(err)
		assert.Equal(t, []string{"name", "email", "message"}, errs.Fields())
		assert.Len(t, errs, 3)
	})

	t.Run("bad email and short message", func(t *testing.T) {
		t.Parallel()
		s := validSubmission()
		s.Email = "not-an-email"
		s.Message = "hi"

		errs := validator.Extract(s.Validate())
		assert.True(t, errs.Has(contact.FieldEmail))
		assert.True(t, errs.Has(contact.FieldMessage))
		assert.False(t, errs.Has(contact.FieldName))
	})

	t.Run("too long", func(t *testing.T) {
		t.Parallel()
		s := validSubmission()
		s.Name = strings.Repeat("n", contact.MaxNameLength+1)
		s.Message = strings.Repeat("m", contact.MaxMessageLength+1)

		errs := validator.Extract(s.Validate())
		assert.Equal(t, []string{"name", "message"}, errs.Fields())
	})
}
