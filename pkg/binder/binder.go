// Package binder decodes request bodies and query strings into structs.
//
// Each binder returns ErrBinderNotApplicable for content types it does not
// handle, so several can be chained:
//
//	handler.Wrap(h, handler.WithBinders[ContactRequest](
//		binder.JSON(64<<10),
//		binder.Form(64<<10),
//	))
//
// Form and query binders read `form:"name"` and `query:"name"` tags. Fields
// tagged "-" are skipped. Supported field types are string, bool, the integer
// kinds and []string.
package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Func binds r into v.
type Func func(r *http.Request, v any) error

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// tooLarge reports whether err came from http.MaxBytesReader.
func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func bindValues(v any, tag string, values url.Values, sentinel error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
		switch name {
		case "-":
			continue
		case "":
			name = strings.ToLower(sf.Name)
		}

		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}
		if err := setField(field, vals); err != nil {
			return fmt.Errorf("%w: field %s: %v", sentinel, name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, vals []string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(vals[0])
	case reflect.Bool:
		if vals[0] == "on" {
			field.SetBool(true)
			return nil
		}
		b, err := strconv.ParseBool(vals[0])
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(vals[0], 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(vals[0], 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		field.Set(reflect.ValueOf(append([]string(nil), vals...)))
	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	return nil
}
