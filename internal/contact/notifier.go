package contact

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/landing/pkg/email"
	"github.com/dmitrymomot/landing/pkg/email/templates"
	"github.com/dmitrymomot/landing/pkg/retry"
)

// Notifier tells the site owner about a new submission.
type Notifier interface {
	Notify(ctx context.Context, rec Record) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, rec Record) error

func (f NotifierFunc) Notify(ctx context.Context, rec Record) error { return f(ctx, rec) }

// Catalog looks up localized strings.
type Catalog interface {
	Text(lang, key string, args ...string) (string, error)
}

//go:embed templates/notification.html
var notificationFS embed.FS

var notificationTemplate = template.Must(template.ParseFS(notificationFS, "templates/notification.html"))

type emailLabels struct {
	Name      string
	Email     string
	Message   string
	Locale    string
	Submitted string
}

type notificationData struct {
	Locale    string
	Heading   string
	Labels    emailLabels
	Record    Record
	Submitted string
}

// EmailNotifier mails every submission to a fixed address, with Reply-To set
// to the visitor. Labels are written in the given locale.
type EmailNotifier struct {
	sender email.EmailSender
	cat    Catalog
	to     string
	locale string
}

func NewEmailNotifier(sender email.EmailSender, cat Catalog, to, locale string) *EmailNotifier {
	return &EmailNotifier{sender: sender, cat: cat, to: to, locale: locale}
}

// Notify renders and sends the message. Rendering and address problems are
// returned as retry.Permanent errors.
func (n *EmailNotifier) Notify(ctx context.Context, rec Record) error {
	subject, data, err := n.compose(rec)
	if err != nil {
		return retry.Permanent(err)
	}

	body, err := templates.Render(ctx, templ.FromGoHTML(notificationTemplate, data))
	if err != nil {
		return retry.Permanent(fmt.Errorf("render contact notification: %w", err))
	}

	params := email.SendEmailParams{
		SendTo:   n.to,
		ReplyTo:  rec.Email,
		Subject:  subject,
		BodyHTML: body,
		Tag:      "contact",
	}
	if err := params.Validate(); err != nil {
		return retry.Permanent(err)
	}
	return n.sender.SendEmail(ctx, params)
}

func (n *EmailNotifier) compose(rec Record) (string, notificationData, error) {
	var firstErr error
	text := func(key string, args ...string) string {
		s, err := n.cat.Text(n.locale, key, args...)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return s
	}

	subject := text("email.subject", "name", rec.Name)
	data := notificationData{
		Locale:  n.locale,
		Heading: text("email.heading"),
		Labels: emailLabels{
			Name:      text("email.name"),
			Email:     text("email.email"),
			Message:   text("email.message"),
			Locale:    text("email.locale"),
			Submitted: text("email.submitted"),
		},
		Record:    rec,
		Submitted: rec.CreatedAt.UTC().Format(time.RFC1123),
	}
	return subject, data, firstErr
}
