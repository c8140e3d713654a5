package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/landing/pkg/logger"
	"github.com/dmitrymomot/landing/pkg/requestid"
)

type ErrorPageParams struct {
	StatusCode int
	Message    string
	RequestID  string
	RetryURL   string
}

type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

// ErrorHandlerConfig selects the components rendered for failures.
// Nil components fall back to plain text or JSON.
type ErrorHandlerConfig struct {
	ErrorPage   func(ErrorPageParams) templ.Component
	ErrorToast  func(ErrorToastParams) templ.Component
	ToastTarget string // defaults to "#toast-container"
}

type errorInfo struct {
	status  int
	message string
	level   slog.Level
}

func classifyError(err error) errorInfo {
	info := errorInfo{
		status:  http.StatusInternalServerError,
		message: http.StatusText(http.StatusInternalServerError),
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.status = httpErr.Code
		info.message = http.StatusText(httpErr.Code)
	}
	var valErr ValidationError
	if errors.As(err, &valErr) {
		info.status = http.StatusUnprocessableEntity
		info.message = valErr.Error()
	}

	info.level = slog.LevelError
	if info.status < http.StatusInternalServerError {
		info.level = slog.LevelWarn
	}
	return info
}

// NewErrorHandler logs err and answers in the shape the client expects:
// JSON for JSON clients, a toast patch for DataStar and an error page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if log == nil {
		log = logger.Nop()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.level, "request error",
			logger.Component("error_handler"),
			logger.Error(err),
			logger.Status(info.status),
			slog.String("method", r.Method),
			logger.Path(r.URL.Path),
		)

		var resp Response
		switch {
		case WantsJSON(r):
			resp = JSONError(err)
		case IsDataStar(r) && cfg.ErrorToast != nil:
			kind := "error"
			if info.status < http.StatusInternalServerError {
				kind = "warning"
			}
			resp = Templ(cfg.ErrorToast(ErrorToastParams{Message: info.message, Type: kind, RequestID: reqID}),
				WithTarget(cfg.ToastTarget), WithPatchMode(PatchPrepend))
		case cfg.ErrorPage != nil && !IsDataStar(r):
			resp = TemplWithStatus(info.status, cfg.ErrorPage(ErrorPageParams{
				StatusCode: info.status,
				Message:    info.message,
				RequestID:  reqID,
				RetryURL:   r.URL.Path,
			}))
		default:
			http.Error(w, info.message, info.status)
			return
		}

		if renderErr := resp.Render(w, r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Component("error_handler"),
				logger.Error(renderErr),
			)
		}
	}
}

// WantsJSON reports whether a non-DataStar client sent or accepts JSON.
func WantsJSON(r *http.Request) bool {
	if IsDataStar(r) {
		return false
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/json") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
