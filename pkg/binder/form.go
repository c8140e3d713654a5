package binder

import (
	"fmt"
	"net/http"
)

// Form binds urlencoded and multipart form bodies of at most maxBytes.
// Query parameters are not merged in.
func Form(maxBytes int64) Func {
	return func(r *http.Request, v any) error {
		mt := mediaType(r)
		if mt != "application/x-www-form-urlencoded" && mt != "multipart/form-data" {
			return ErrBinderNotApplicable
		}

		r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
		var err error
		if mt == "multipart/form-data" {
			err = r.ParseMultipartForm(maxBytes)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			if tooLarge(err) {
				return ErrBodyTooLarge
			}
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return bindValues(v, "form", r.PostForm, ErrInvalidForm)
	}
}

// Query binds URL query parameters. It always applies.
func Query() Func {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
