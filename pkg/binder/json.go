package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON decodes an application/json body of at most maxBytes into v.
// Unknown fields are ignored so browser clients may send extra signals.
func JSON(maxBytes int64) Func {
	return func(r *http.Request, v any) error {
		if mediaType(r) != "application/json" {
			return ErrBinderNotApplicable
		}

		body := http.MaxBytesReader(nil, r.Body, maxBytes)
		dec := json.NewDecoder(body)
		if err := dec.Decode(v); err != nil {
			switch {
			case tooLarge(err):
				return ErrBodyTooLarge
			case errors.Is(err, io.EOF):
				return fmt.Errorf("%w: empty body", ErrInvalidJSON)
			default:
				return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			}
		}

		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			if tooLarge(err) {
				return ErrBodyTooLarge
			}
			return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
		}
		return nil
	}
}
