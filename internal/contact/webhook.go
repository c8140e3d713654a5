package contact

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/landing/pkg/retry"
	"github.com/dmitrymomot/landing/pkg/webhook"
)

// EventSubmitted is the webhook event type for a new submission.
const EventSubmitted = "contact.submitted"

// WebhookSender posts a JSON payload to an endpoint.
type WebhookSender interface {
	Send(ctx context.Context, endpoint string, data any) error
}

type webhookPayload struct {
	Event     string    `json:"event"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Locale    string    `json:"locale"`
	CreatedAt time.Time `json:"created_at"`
}

// WebhookNotifier posts each submission to a URL. Receivers can dedupe
// repeated deliveries by the submission id.
type WebhookNotifier struct {
	sender WebhookSender
	url    string
}

func NewWebhookNotifier(sender WebhookSender, url string) *WebhookNotifier {
	return &WebhookNotifier{sender: sender, url: url}
}

func (n *WebhookNotifier) Notify(ctx context.Context, rec Record) error {
	err := n.sender.Send(ctx, n.url, webhookPayload{
		Event:     EventSubmitted,
		ID:        rec.ID.String(),
		Name:      rec.Name,
		Email:     rec.Email,
		Message:   rec.Message,
		Locale:    rec.Locale,
		CreatedAt: rec.CreatedAt.UTC(),
	})
	if errors.Is(err, webhook.ErrPermanentFailure) || errors.Is(err, webhook.ErrInvalidURL) {
		return retry.Permanent(err)
	}
	return err
}

// Notifiers fans a submission out to every notifier. All of them are called
// on each attempt. The joined error is permanent only when every failure was.
func Notifiers(ns ...Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context, rec Record) error {
		var errs []error
		permanent := true
		for _, n := range ns {
			err := n.Notify(ctx, rec)
			if err == nil {
				continue
			}
			if retry.IsPermanent(err) {
				if inner := errors.Unwrap(err); inner != nil {
					err = inner
				}
			} else {
				permanent = false
			}
			errs = append(errs, err)
		}
		if len(errs) == 0 {
			return nil
		}
		if permanent {
			return retry.Permanent(errors.Join(errs...))
		}
		return errors.Join(errs...)
	})
}
