package contact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/landing/internal/contact"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, contact.DefaultConfig().Validate())

	cfg := contact.DefaultConfig()
	cfg.WebhookURL = "https://hooks.example.com/contact"
	assert.NoError(t, cfg.Validate())

	bad := contact.DefaultConfig()
	bad.SendAttempts = 0
	bad.Store = "sqlite"
	bad.WebhookURL = "hooks.example.com"
	err := bad.Validate()
	for _, want := range []string{"CONTACT_SEND_ATTEMPTS", "CONTACT_STORE", "CONTACT_WEBHOOK_URL"} {
		assert.ErrorContains(t, err, want)
	}
}
