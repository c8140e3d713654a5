package i18n_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/pkg/i18n"
)

const catalogYAML = `
en:
  nav:
    home: Home
  footer:
    links:
      privacy: Privacy Policy
  greeting: "Hello, %{name}!"
  pricing:
    plans:
      starter:
        features:
          - One project
          - Community support
  rating: 5
id:
  nav:
    home: Beranda
  footer:
    links:
      privacy: Kebijakan Privasi
  greeting: "Halo, %{name}!"
  pricing:
    plans:
      starter:
        features:
          - Satu proyek
          - Dukungan komunitas
`

func newTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()
	fsys := fstest.MapFS{"messages/all.yaml": {Data: []byte(catalogYAML)}}
	tr, err := i18n.NewTranslator(context.Background(), i18n.NewFSSource(i18n.YAMLParser{}, fsys, "messages"), opts...)
	require.NoError(t, err)
	return tr
}

func TestTranslator_Lookup(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	t.Run("dotted string", func(t *testing.T) {
		t.Parallel()
		v, err := tr.Lookup("id", "footer.links.privacy")
		require.NoError(t, err)
		assert.Equal(t, "Kebijakan Privasi", v)
	})

	t.Run("structured value", func(t *testing.T) {
		t.Parallel()
		v, err := tr.Lookup("en", "footer.links")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"privacy": "Privacy Policy"}, v)
	})

	t.Run("missing key fails without fallback", func(t *testing.T) {
		t.Parallel()
		_, err := tr.Lookup("id", "rating")
		require.Error(t, err)
		assert.ErrorIs(t, err, i18n.ErrMissingKey)

		var mk *i18n.MissingKeyError
		require.True(t, errors.As(err, &mk))
		assert.Equal(t, "id", mk.Locale)
		assert.Equal(t, "rating", mk.Key)
	})

	t.Run("path through a leaf", func(t *testing.T) {
		t.Parallel()
		_, err := tr.Lookup("en", "nav.home.extra")
		assert.ErrorIs(t, err, i18n.ErrMissingKey)
	})

	t.Run("unknown language", func(t *testing.T) {
		t.Parallel()
		_, err := tr.Lookup("fr", "nav.home")
		assert.ErrorIs(t, err, i18n.ErrLanguageNotSupported)
	})
}

func TestTranslator_TextAndStrings(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	s, err := tr.Text("id", "greeting", "name", "Budi")
	require.NoError(t, err)
	assert.Equal(t, "Halo, Budi!", s)

	s, err = tr.Text("en", "greeting")
	require.NoError(t, err)
	assert.Equal(t, "Hello, %{name}!", s)

	s, err = tr.Text("en", "rating")
	require.NoError(t, err)
	assert.Equal(t, "5", s)

	_, err = tr.Text("en", "footer.links")
	assert.ErrorIs(t, err, i18n.ErrUnexpectedValue)

	list, err := tr.Strings("id", "pricing.plans.starter.features")
	require.NoError(t, err)
	assert.Equal(t, []string{"Satu proyek", "Dukungan komunitas"}, list)

	_, err = tr.Strings("en", "nav.home")
	assert.ErrorIs(t, err, i18n.ErrUnexpectedValue)
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	t.Run("falls back to key and logs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		tr := newTranslator(t,
			i18n.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
			i18n.WithMissingTranslationsLogging(true),
		)
		assert.Equal(t, "Beranda", tr.T("id", "nav.home"))
		assert.Equal(t, "nav.missing", tr.T("id", "nav.missing"))
		assert.Contains(t, buf.String(), "translation lookup failed")
	})

	t.Run("empty without key fallback", func(t *testing.T) {
		t.Parallel()
		tr := newTranslator(t, i18n.WithFallbackToKey(false))
		assert.Empty(t, tr.T("en", "nav.missing"))
	})

	t.Run("context locale", func(t *testing.T) {
		t.Parallel()
		tr := newTranslator(t, i18n.WithDefaultLanguage("id"))
		assert.Equal(t, "Beranda", tr.Tc(context.Background(), "nav.home"))
		assert.Equal(t, "Home", tr.Tc(i18n.SetLocale(context.Background(), "en"), "nav.home"))
	})
}

func TestTranslator_Completeness(t *testing.T) {
	t.Parallel()

	t.Run("complete catalog loads", func(t *testing.T) {
		t.Parallel()
		tr := newTranslator(t,
			i18n.WithRequiredKeys("nav.home", "footer.links.privacy", "pricing.plans.starter.features"),
			i18n.WithRequiredLanguages("en", "id"),
		)
		assert.Equal(t, []string{"en", "id"}, tr.SupportedLanguages())
		assert.True(t, tr.HasTranslation("en", "nav.home"))
		assert.False(t, tr.HasTranslation("id", "rating"))
	})

	t.Run("every gap is reported", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"m/all.yaml": {Data: []byte(catalogYAML)}}
		_, err := i18n.NewTranslator(context.Background(), i18n.NewFSSource(i18n.YAMLParser{}, fsys, "m"),
			i18n.WithRequiredKeys("nav.home", "rating", "hero.title"),
			i18n.WithRequiredLanguages("en", "id", "ms"),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, i18n.ErrIncompleteCatalog)

		var ic *i18n.IncompleteCatalogError
		require.True(t, errors.As(err, &ic))
		assert.ElementsMatch(t, []i18n.MissingKeyError{
			{Locale: "en", Key: "hero.title"},
			{Locale: "id", Key: "rating"},
			{Locale: "id", Key: "hero.title"},
			{Locale: "ms", Key: "nav.home"},
			{Locale: "ms", Key: "rating"},
			{Locale: "ms", Key: "hero.title"},
		}, ic.Missing)
		assert.Contains(t, err.Error(), "id:rating")
	})

	t.Run("required languages default to catalog languages", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewTranslator(context.Background(), i18n.MapSource{
			"en": {"a": "A"},
			"id": {"b": "B"},
		}, i18n.WithRequiredKeys("a"))
		var ic *i18n.IncompleteCatalogError
		require.ErrorAs(t, err, &ic)
		assert.Equal(t, []i18n.MissingKeyError{{Locale: "id", Key: "a"}}, ic.Missing)
	})
}

func TestNewTranslator_NilSource(t *testing.T) {
	t.Parallel()
	_, err := i18n.NewTranslator(context.Background(), nil)
	assert.ErrorIs(t, err, i18n.ErrNilSource)
}
