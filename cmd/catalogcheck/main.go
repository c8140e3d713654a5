// Command catalogcheck verifies that every locale in a message directory
// defines every key the landing page renders. It exits non-zero and lists
// the gaps otherwise.
//
//	go run ./cmd/catalogcheck -dir internal/site/messages -locales en,id
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrymomot/landing/internal/site"
	"github.com/dmitrymomot/landing/pkg/i18n"
)

func main() {
	dir := flag.String("dir", "internal/site/messages", "directory with YAML or JSON message files")
	locales := flag.String("locales", "en,id", "comma separated locales that must be complete")
	flag.Parse()

	if err := run(context.Background(), *dir, splitList(*locales)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("catalog complete")
}

func run(ctx context.Context, dir string, locales []string) error {
	parser, err := parserFor(dir)
	if err != nil {
		return err
	}
	_, err = i18n.NewTranslator(ctx, i18n.NewDirSource(parser, dir),
		i18n.WithRequiredLanguages(locales...),
		i18n.WithRequiredKeys(site.Keys()...),
	)
	var incomplete *i18n.IncompleteCatalogError
	if errors.As(err, &incomplete) {
		return fmt.Errorf("catalog in %s is incomplete:\n%w", dir, err)
	}
	return err
}

// parserFor picks the parser of the first message file in dir.
func parserFor(dir string) (i18n.Parser, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if p, err := i18n.ParserForFile(e.Name()); err == nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no message files in %s", dir)
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
