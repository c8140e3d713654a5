package binder

import "errors"

var (
	// ErrBinderNotApplicable is returned when a binder does not handle the
	// request's content type. handler.Wrap moves on to the next binder.
	ErrBinderNotApplicable = errors.New("binder not applicable")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrInvalidQuery         = errors.New("invalid query parameter")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrInvalidTarget        = errors.New("bind target must be a non-nil pointer to struct")
)
