package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"slices"
)

// Source loads the full catalog for every locale it knows about.
type Source interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapSource serves translations already held in memory.
type MapSource map[string]map[string]any

func (s MapSource) Load(_ context.Context) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(s))
	for locale, tree := range s {
		out[locale] = maps.Clone(tree)
	}
	return out, nil
}

// FSSource reads every file in dir of fsys that parser supports and merges
// them. Later files (in lexical order) override top-level keys of earlier ones.
type FSSource struct {
	parser Parser
	fsys   fs.FS
	dir    string
}

// NewFSSource creates a source over fsys, typically an embed.FS.
func NewFSSource(parser Parser, fsys fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{parser: parser, fsys: fsys, dir: dir}
}

// NewDirSource reads translation files from a directory on disk.
func NewDirSource(parser Parser, dir string) *FSSource {
	return NewFSSource(parser, os.DirFS(dir), ".")
}

func (s *FSSource) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadSource, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := path.Ext(e.Name()); ext != "" && s.parser.SupportsFileExtension(ext) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoTranslationFiles, s.dir)
	}
	slices.Sort(names)

	all := make(map[string]map[string]any)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		p := path.Join(s.dir, name)
		content, err := fs.ReadFile(s.fsys, p)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadSource, err)
		}
		parsed, err := s.parser.Parse(ctx, content)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("%w %q", ErrFailedToParseFile, p), err)
		}
		for locale, tree := range parsed {
			if all[locale] == nil {
				all[locale] = make(map[string]any, len(tree))
			}
			maps.Copy(all[locale], tree)
		}
	}
	return all, nil
}
