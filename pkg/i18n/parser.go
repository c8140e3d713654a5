package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes one translation file. The top level of a file maps locale
// codes to nested message trees:
//
//	en:
//	  hero:
//	    title: Build faster
//	id:
//	  hero:
//	    title: Bangun lebih cepat
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
	// SupportsFileExtension reports whether files with ext (with or without the leading dot) are handled.
	SupportsFileExtension(ext string) bool
}

// ParserForFile picks a parser from the file name extension.
func ParserForFile(name string) (Parser, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")); ext {
	case "yaml", "yml":
		return YAMLParser{}, nil
	case "json":
		return JSONParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, name)
	}
}

// YAMLParser reads YAML translation files.
type YAMLParser struct{}

func (YAMLParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return splitByLocale(raw)
}

func (YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

// JSONParser reads JSON translation files.
type JSONParser struct{}

func (JSONParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return splitByLocale(raw)
}

func (JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

func splitByLocale(raw map[string]any) (map[string]map[string]any, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidFileLayout
	}
	out := make(map[string]map[string]any, len(raw))
	for locale, tree := range raw {
		m, ok := normalizeMap(tree)
		if !ok {
			return nil, fmt.Errorf("%w: locale %q holds %T", ErrInvalidFileLayout, locale, tree)
		}
		out[locale] = m
	}
	return out, nil
}

// normalizeMap accepts the map shapes YAML and JSON decoders produce.
func normalizeMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}
