package i18n

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// PrefixStrategy controls when the locale code appears as the first URL path segment.
type PrefixStrategy string

const (
	// PrefixAsNeeded omits the prefix for the default locale and requires it for every other locale.
	PrefixAsNeeded PrefixStrategy = "as-needed"
	// PrefixAlways requires a locale prefix on every path.
	PrefixAlways PrefixStrategy = "always"
	// PrefixNever keeps locales out of paths; the locale comes from a cookie or request headers.
	PrefixNever PrefixStrategy = "never"
)

// ParsePrefixStrategy parses s. Matching is case-insensitive.
func ParsePrefixStrategy(s string) (PrefixStrategy, error) {
	switch p := PrefixStrategy(strings.ToLower(strings.TrimSpace(s))); p {
	case PrefixAsNeeded, PrefixAlways, PrefixNever:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPrefixStrategy, s)
}

// Registry is the immutable set of supported locales, the default locale and
// the URL prefix strategy. It is safe for concurrent use.
type Registry struct {
	locales       []string
	defaultLocale string
	strategy      PrefixStrategy
	matcher       language.Matcher
	matchOrder    []string
}

// NewRegistry validates and builds a Registry. Locale codes are trimmed and
// lowercased and must be valid BCP 47 tags. Duplicates are collapsed while
// keeping the first occurrence order.
func NewRegistry(locales []string, defaultLocale string, strategy PrefixStrategy) (*Registry, error) {
	if _, err := ParsePrefixStrategy(string(strategy)); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(locales))
	for _, l := range locales {
		code := strings.ToLower(strings.TrimSpace(l))
		if code == "" {
			continue
		}
		if strings.ContainsAny(code, "/.?#") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLocaleCode, l)
		}
		if _, err := language.Parse(code); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLocaleCode, l, err)
		}
		if !slices.Contains(codes, code) {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return nil, ErrNoLocales
	}

	def := strings.ToLower(strings.TrimSpace(defaultLocale))
	if !slices.Contains(codes, def) {
		return nil, fmt.Errorf("%w: %q", ErrDefaultLocaleNotRegistered, defaultLocale)
	}

	// The matcher falls back to its first tag, so the default goes first.
	order := append([]string{def}, slices.DeleteFunc(slices.Clone(codes), func(c string) bool { return c == def })...)
	tags := make([]language.Tag, len(order))
	for i, c := range order {
		tags[i] = language.Make(c)
	}

	return &Registry{
		locales:       codes,
		defaultLocale: def,
		strategy:      strategy,
		matcher:       language.NewMatcher(tags),
		matchOrder:    order,
	}, nil
}

// Locales returns the registered locale codes in registration order.
func (r *Registry) Locales() []string { return slices.Clone(r.locales) }

// DefaultLocale returns the default locale code.
func (r *Registry) DefaultLocale() string { return r.defaultLocale }

// Strategy returns the prefix strategy.
func (r *Registry) Strategy() PrefixStrategy { return r.strategy }

// IsSupported reports whether code is a registered locale. The comparison is exact.
func (r *Registry) IsSupported(code string) bool {
	return slices.Contains(r.locales, code)
}

// Match picks the registered locale that best satisfies an Accept-Language
// header value. It returns "" when nothing matches.
func (r *Registry) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return ""
	}
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, idx, conf := r.matcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return r.matchOrder[idx]
}

// maxAcceptLanguageLength caps the header size handed to the parser.
const maxAcceptLanguageLength = 4096

// Resolution is the outcome of resolving a request path against a Registry.
type Resolution struct {
	// Locale is always a registered locale.
	Locale string
	// Path is the request path without the locale segment. It always starts with "/".
	Path string
	// Redirect is the path the client must be sent to, or "" when no redirect is needed.
	Redirect string
}

// Resolve maps a request path to its locale and canonical path under the
// registry's prefix strategy. An unregistered first segment is treated as no
// locale segment at all. Leading runs of slashes and backslashes collapse to
// one slash, so neither Path nor Redirect can be read as a host-relative URL.
// Resolve has no side effects.
func (r *Registry) Resolve(path string) Resolution {
	path = rootRelative(path)
	seg, rest := splitLocaleSegment(path)
	rest = rootRelative(rest)
	known := seg != "" && r.IsSupported(seg)

	switch r.strategy {
	case PrefixAlways:
		if known {
			return Resolution{Locale: seg, Path: rest}
		}
		return Resolution{Locale: r.defaultLocale, Path: path, Redirect: prefixed(r.defaultLocale, path)}

	case PrefixNever:
		if known {
			return Resolution{Locale: seg, Path: rest, Redirect: rest}
		}
		return Resolution{Locale: r.defaultLocale, Path: path}

	default:
		if !known {
			return Resolution{Locale: r.defaultLocale, Path: path}
		}
		if seg == r.defaultLocale {
			return Resolution{Locale: seg, Path: rest, Redirect: rest}
		}
		return Resolution{Locale: seg, Path: rest}
	}
}

// LocalizedPath returns the canonical URL path of path for locale. Unknown
// locales are replaced with the default locale. path must not carry a locale
// segment.
func (r *Registry) LocalizedPath(locale, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !r.IsSupported(locale) {
		locale = r.defaultLocale
	}
	switch r.strategy {
	case PrefixAlways:
		return prefixed(locale, path)
	case PrefixNever:
		return path
	default:
		if locale == r.defaultLocale {
			return path
		}
		return prefixed(locale, path)
	}
}

// SwitchPath returns a link target that switches the visitor to locale while
// staying on path. Under PrefixNever the prefixed form is returned; the
// routing middleware turns it into a cookie and a redirect to path.
func (r *Registry) SwitchPath(locale, path string) string {
	if r.strategy == PrefixNever {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		if !r.IsSupported(locale) {
			locale = r.defaultLocale
		}
		return prefixed(locale, path)
	}
	return r.LocalizedPath(locale, path)
}

// splitLocaleSegment splits "/id/pricing" into ("id", "/pricing") and "/id" into ("id", "/").
func splitLocaleSegment(path string) (string, string) {
	trimmed := path[1:]
	seg, rest, found := strings.Cut(trimmed, "/")
	if !found || rest == "" {
		return seg, "/"
	}
	return seg, "/" + rest
}

// rootRelative returns p with every leading '/' and '\' replaced by a single '/'.
func rootRelative(p string) string {
	return "/" + strings.TrimLeft(p, `/\`)
}

func prefixed(locale, path string) string {
	if path == "/" {
		return "/" + locale
	}
	return "/" + locale + path
}
