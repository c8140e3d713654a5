package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/dmitrymomot/landing/internal/site"
	"github.com/dmitrymomot/landing/pkg/binder"
	"github.com/dmitrymomot/landing/pkg/clientip"
	"github.com/dmitrymomot/landing/pkg/handler"
	"github.com/dmitrymomot/landing/pkg/i18n"
	"github.com/dmitrymomot/landing/pkg/logger"
	"github.com/dmitrymomot/landing/pkg/requestid"
	"github.com/dmitrymomot/landing/pkg/validator"
)

// StatusView renders the #contact-status fragment.
type StatusView func(site.ContactStatus) templ.Component

type submitRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
	// Locale is the page locale the form was rendered in. The endpoint lives
	// outside locale routing, so the form reports it.
	Locale string `json:"locale" form:"locale"`
}

type submitResponse struct {
	ID           uuid.UUID `json:"id"`
	Status       string    `json:"status"`
	ResetAfterMs int64     `json:"reset_after_ms"`
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

func WithHandlerLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithErrorHandler sets the handler for bind failures and unexpected errors.
func WithErrorHandler(eh handler.ErrorHandler) HandlerOption {
	return func(h *Handler) {
		if eh != nil {
			h.errorHandler = eh
		}
	}
}

// Handler serves POST /api/contact.
//
// JSON clients get a JSON envelope, DataStar clients a patch of the
// #contact-status element and plain form posts a 303 back to the localized
// page with ?contact=success or ?contact=error.
type Handler struct {
	service      *Service
	cat          Catalog
	reg          *i18n.Registry
	view         StatusView
	extract      i18n.LangExtractor
	cfg          Config
	log          *slog.Logger
	errorHandler handler.ErrorHandler
}

func NewHandler(svc *Service, cat Catalog, reg *i18n.Registry, view StatusView, cfg Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		service:      svc,
		cat:          cat,
		reg:          reg,
		view:         view,
		extract:      i18n.NewLangExtractor(reg),
		cfg:          cfg,
		log:          logger.Nop(),
		errorHandler: handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Submit returns the endpoint handler.
func (h *Handler) Submit() http.HandlerFunc {
	return handler.Wrap(h.submit,
		handler.WithBinders[submitRequest](binder.JSON(h.cfg.MaxBodyBytes), binder.Form(h.cfg.MaxBodyBytes)),
		handler.WithErrorHandler[submitRequest](h.errorHandler),
	)
}

func (h *Handler) submit(ctx handler.Context, req submitRequest) handler.Response {
	r := ctx.Request()
	locale := h.locale(r, req.Locale)
	meta := Meta{
		Locale:    locale,
		IP:        clientIP(r),
		RequestID: requestid.FromContext(ctx),
		UserAgent: r.UserAgent(),
	}

	var rec Record
	// The client shows the outcome and resets itself, so this form has no timer.
	form := NewForm(func(ctx context.Context, s Submission) error {
		var err error
		rec, err = h.service.Submit(ctx, s, meta)
		return err
	}, WithResetDelay(0))
	form.Fill(Submission{Name: req.Name, Email: req.Email, Message: req.Message})

	err := form.Submit(ctx)
	switch {
	case err == nil:
		return h.succeeded(r, locale, rec)
	case validator.Extract(err) != nil:
		return h.invalid(r, locale, validator.Extract(err))
	case errors.Is(err, ErrDeliveryFailed):
		return h.failed(r, locale)
	default:
		return handler.Error(err)
	}
}

func (h *Handler) succeeded(r *http.Request, locale string, rec Record) handler.Response {
	switch {
	case handler.IsDataStar(r):
		msg, err := h.text(locale, "contact.form.success")
		if err != nil {
			return handler.Error(err)
		}
		return h.patch(site.ContactStatus{
			Kind:         site.StatusSuccess,
			Message:      msg,
			ResetAfterMs: h.cfg.ResetDelay.Milliseconds(),
		})
	case handler.WantsJSON(r):
		return handler.JSON(submitResponse{
			ID:           rec.ID,
			Status:       string(StateSuccess),
			ResetAfterMs: h.cfg.ResetDelay.Milliseconds(),
		}, handler.WithJSONStatus(http.StatusCreated))
	default:
		return handler.Redirect(h.pageURL(locale, site.StatusSuccess), http.StatusSeeOther)
	}
}

func (h *Handler) invalid(r *http.Request, locale string, errs validator.ValidationErrors) handler.Response {
	h.log.DebugContext(r.Context(), "contact submission rejected",
		logger.Component("contact"),
		logger.Locale(locale),
		slog.Any("fields", errs.Fields()),
	)
	localized, err := h.localize(locale, errs)
	if err != nil {
		return handler.Error(err)
	}
	switch {
	case handler.IsDataStar(r):
		var details []string
		for _, field := range errs.Fields() {
			label, err := h.text(locale, "contact.form."+field)
			if err != nil {
				return handler.Error(err)
			}
			for _, msg := range localized[field] {
				details = append(details, label+": "+msg)
			}
		}
		return h.patch(site.ContactStatus{Kind: site.StatusInvalid, Details: details})
	case handler.WantsJSON(r):
		return handler.JSONError(localized)
	default:
		return handler.Redirect(h.pageURL(locale, site.StatusError), http.StatusSeeOther)
	}
}

func (h *Handler) failed(r *http.Request, locale string) handler.Response {
	switch {
	case handler.IsDataStar(r):
		msg, err := h.text(locale, "contact.form.error")
		if err != nil {
			return handler.Error(err)
		}
		return h.patch(site.ContactStatus{
			Kind:         site.StatusError,
			Message:      msg,
			ResetAfterMs: h.cfg.ResetDelay.Milliseconds(),
		})
	case handler.WantsJSON(r):
		return handler.JSONError(handler.ErrBadGateway)
	default:
		return handler.Redirect(h.pageURL(locale, site.StatusError), http.StatusSeeOther)
	}
}

// RateLimited is the denied handler for the rate limiter in front of Submit.
// DataStar clients get a status patch; everyone else goes through the error
// handler with 429.
func (h *Handler) RateLimited() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !handler.IsDataStar(r) {
			h.errorHandler(handler.NewContext(w, r), handler.ErrTooManyRequests)
			return
		}
		msg, err := h.text(h.locale(r, ""), "contact.form.rateLimited")
		if err != nil {
			h.errorHandler(handler.NewContext(w, r), err)
			return
		}
		resp := h.patch(site.ContactStatus{
			Kind:         site.StatusRateLimited,
			Message:      msg,
			ResetAfterMs: h.cfg.ResetDelay.Milliseconds(),
		})
		if err := resp.Render(w, r); err != nil {
			h.errorHandler(handler.NewContext(w, r), err)
		}
	})
}

func (h *Handler) patch(s site.ContactStatus) handler.Response {
	return handler.Templ(h.view(s),
		handler.WithTarget("#"+site.ContactStatusID),
		handler.WithPatchMode(handler.PatchOuter),
	)
}

// pageURL is the landing page in locale with the outcome in the query and
// the contact section as fragment.
func (h *Handler) pageURL(locale, outcome string) string {
	u := url.URL{
		Path:     h.reg.LocalizedPath(locale, "/"),
		RawQuery: url.Values{"contact": {outcome}}.Encode(),
		Fragment: "contact",
	}
	return u.String()
}

// locale prefers the locale the form declares, then the routed locale, then
// the visitor's cookie or Accept-Language header.
func (h *Handler) locale(r *http.Request, declared string) string {
	if h.reg.IsSupported(declared) {
		return declared
	}
	if l, ok := i18n.LocaleFromContext(r.Context()); ok && h.reg.IsSupported(l) {
		return l
	}
	if l := h.extract(r); l != "" {
		return l
	}
	return h.reg.DefaultLocale()
}

// localize translates each validation message into locale. A missing key is
// an incomplete catalog and fails the request.
func (h *Handler) localize(locale string, errs validator.ValidationErrors) (handler.ValidationError, error) {
	out := handler.ValidationError{}
	for _, e := range errs {
		args := make([]string, 0, 2*len(e.Params))
		for k, v := range e.Params {
			args = append(args, k, v)
		}
		msg, err := h.text(locale, e.TranslationKey, args...)
		if err != nil {
			return nil, err
		}
		out.Add(e.Field, msg)
	}
	return out, nil
}

func (h *Handler) text(locale, key string, args ...string) (string, error) {
	s, err := h.cat.Text(locale, key, args...)
	if err != nil {
		return "", fmt.Errorf("contact: translate %q for %s: %w", key, locale, err)
	}
	return s, nil
}

func clientIP(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.GetIP(r)
}
