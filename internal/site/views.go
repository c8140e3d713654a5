package site

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/landing/pkg/handler"
	"github.com/dmitrymomot/landing/pkg/i18n"
)

// ContactStatusID is the element the contact endpoint patches for DataStar clients.
const ContactStatusID = "contact-status"

// Contact status kinds. They double as CSS modifiers.
const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusInvalid     = "invalid"
	StatusRateLimited = "rate_limited"
)

// ContactStatus is the message shown under the contact form.
type ContactStatus struct {
	Kind    string
	Message string
	Details []string
	// ResetAfterMs clears the message client side. Zero keeps it.
	ResetAfterMs int64
}

// Views renders the site's HTML. Labels of error views are looked up in the
// catalog using the locale of the rendering context.
type Views struct {
	cat  Catalog
	reg  *i18n.Registry
	tmpl *template.Template
}

func NewViews(cat Catalog, reg *i18n.Registry) (*Views, error) {
	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"status": func(kind, msg string) ContactStatus {
			return ContactStatus{Kind: kind, Message: msg}
		},
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse site templates: %w", err)
	}
	return &Views{cat: cat, reg: reg, tmpl: tmpl}, nil
}

// Page renders the whole landing page.
func (v *Views) Page(p Page) templ.Component {
	return templ.FromGoHTML(v.tmpl.Lookup("page"), p)
}

// ContactStatus renders the #contact-status fragment.
func (v *Views) ContactStatus(s ContactStatus) templ.Component {
	return templ.FromGoHTML(v.tmpl.Lookup("contact-status"), s)
}

type errorPageData struct {
	handler.ErrorPageParams
	Locale         string
	Title          string
	RetryLabel     string
	HomeLabel      string
	HomeURL        string
	RequestIDLabel string
}

// ErrorPage fits handler.ErrorHandlerConfig.ErrorPage.
func (v *Views) ErrorPage(p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		locale := v.locale(ctx)
		data := errorPageData{
			ErrorPageParams: p,
			Locale:          locale,
			Title:           v.text(locale, "errors.title", "Something went wrong"),
			RetryLabel:      v.text(locale, "errors.retry", "Try again"),
			HomeLabel:       v.text(locale, "errors.home", "Back to home"),
			HomeURL:         v.reg.LocalizedPath(locale, "/"),
			RequestIDLabel:  v.text(locale, "errors.requestId", "Request ID"),
		}
		if p.StatusCode == http.StatusNotFound {
			data.Title = v.text(locale, "errors.notFound", p.Message)
			data.RetryURL = ""
		}
		return v.tmpl.ExecuteTemplate(w, "error", data)
	})
}

type toastData struct {
	handler.ErrorToastParams
	RequestIDLabel string
}

// ErrorToast fits handler.ErrorHandlerConfig.ErrorToast.
func (v *Views) ErrorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		locale := v.locale(ctx)
		return v.tmpl.ExecuteTemplate(w, "toast", toastData{
			ErrorToastParams: p,
			RequestIDLabel:   v.text(locale, "errors.requestId", "Request ID"),
		})
	})
}

func (v *Views) locale(ctx context.Context) string {
	if locale, ok := i18n.LocaleFromContext(ctx); ok && v.reg.IsSupported(locale) {
		return locale
	}
	return v.reg.DefaultLocale()
}

func (v *Views) text(locale, key, fallback string) string {
	s, err := v.cat.Text(locale, key)
	if err != nil || s == "" {
		return fallback
	}
	return s
}
