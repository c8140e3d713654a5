package contact

import (
	"github.com/dmitrymomot/landing/pkg/sanitizer"
	"github.com/dmitrymomot/landing/pkg/validator"
)

// Form field names. They match the JSON and form keys of the endpoint.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

const (
	MaxNameLength    = 100
	MaxEmailLength   = 254
	MinMessageLength = 10
	MaxMessageLength = 2000
)

// Submission is what the visitor typed into the contact form.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

var (
	normalizeName    = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.SingleLine)
	normalizeMessage = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.CollapseBlankLines, sanitizer.Trim)
)

// Normalize returns a copy with whitespace, control characters and email
// casing cleaned up. Lengths are left alone so Validate can reject them.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    normalizeName(s.Name),
		Email:   sanitizer.Apply(s.Email, sanitizer.RemoveControlChars, sanitizer.NormalizeEmail),
		Message: normalizeMessage(s.Message),
	}
}

// Validate returns validator.ValidationErrors listing every failed rule, or nil.
// An empty message only reports the required rule.
func (s Submission) Validate() error {
	rules := []validator.Rule{
		validator.Required(FieldName, s.Name),
		validator.MaxRunes(FieldName, s.Name, MaxNameLength),
		validator.Required(FieldEmail, s.Email),
		validator.Email(FieldEmail, s.Email),
		validator.MaxRunes(FieldEmail, s.Email, MaxEmailLength),
		validator.Required(FieldMessage, s.Message),
		validator.MaxRunes(FieldMessage, s.Message, MaxMessageLength),
	}
	if s.Message != "" {
		rules = append(rules, validator.MinRunes(FieldMessage, s.Message, MinMessageLength))
	}
	return validator.Apply(rules...)
}
