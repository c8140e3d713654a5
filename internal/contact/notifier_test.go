package contact_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/internal/contact"
	"github.com/dmitrymomot/landing/pkg/email"
	"github.com/dmitrymomot/landing/pkg/i18n"
)

type recordingSender struct {
	sent []email.SendEmailParams
	err  error
}

func (s *recordingSender) SendEmail(_ context.Context, p email.SendEmailParams) error {
	s.sent = append(s.sent, p)
	return s.err
}

func emailCatalog(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(), i18n.MapSource{
		"en": {"email": map[string]any{
			"subject":   "New message from %{name}",
			"heading":   "New contact message",
			"name":      "Name",
			"email":     "Email",
			"message":   "Message",
			"locale":    "Language",
			"submitted": "Submitted",
		}},
	})
	require.NoError(t, err)
	return tr
}

func TestEmailNotifier(t *testing.T) {
	t.Parallel()

	rec := contact.Record{
		ID:         uuid.New(),
		Submission: contact.Submission{Name: "Jane <b>", Email: "jane@example.com", Message: "Hello\nthere"},
		Locale:     "id",
		CreatedAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	t.Run("sends rendered message", func(t *testing.T) {
		t.Parallel()
		sender := &recordingSender{}
		n := contact.NewEmailNotifier(sender, emailCatalog(t), "owner@example.com", "en")

		require.NoError(t, n.Notify(context.Background(), rec))
		require.Len(t, sender.sent, 1)

		msg := sender.sent[0]
		assert.Equal(t, "owner@example.com", msg.SendTo)
		assert.Equal(t, "jane@example.com", msg.ReplyTo)
		assert.Equal(t, "New message from Jane <b>", msg.Subject)
		assert.Equal(t, "contact", msg.Tag)
		assert.Contains(t, msg.BodyHTML, "Jane &lt;b&gt;")
		assert.Contains(t, msg.BodyHTML, rec.ID.String())
		assert.Contains(t, msg.BodyHTML, "Language")
	})

	t.Run("sender error is returned as is", func(t *testing.T) {
		t.Parallel()
		sendErr := errors.New("postmark down")
		n := contact.NewEmailNotifier(&recordingSender{err: sendErr}, emailCatalog(t), "owner@example.com", "en")
		assert.ErrorIs(t, n.Notify(context.Background(), rec), sendErr)
	})

	t.Run("missing labels", func(t *testing.T) {
		t.Parallel()
		sender := &recordingSender{}
		n := contact.NewEmailNotifier(sender, emailCatalog(t), "owner@example.com", "fr")
		assert.ErrorIs(t, n.Notify(context.Background(), rec), i18n.ErrLanguageNotSupported)
		assert.Empty(t, sender.sent)
	})

	t.Run("bad recipient", func(t *testing.T) {
		t.Parallel()
		n := contact.NewEmailNotifier(&recordingSender{}, emailCatalog(t), "not-an-address", "en")
		assert.ErrorIs(t, n.Notify(context.Background(), rec), email.ErrInvalidParams)
	})
}
