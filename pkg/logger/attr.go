package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component names the subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Locale records the resolved locale code.
func Locale(code string) slog.Attr {
	return slog.String("locale", code)
}

// Path records a request path.
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// RedirectTo records a redirect target.
func RedirectTo(target string) slog.Attr {
	return slog.String("redirect_to", target)
}

// RequestID records the request identifier.
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// SubmissionID records a contact submission identifier.
func SubmissionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("submission_id", id)
}

// Attempt records a 1-based retry attempt number.
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// Duration records an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Status records an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Group bundles attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}
