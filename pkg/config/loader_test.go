package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/pkg/config"
)

type siteConfig struct {
	Locales       []string `env:"TEST_LOCALES" envDefault:"en,id"`
	DefaultLocale string   `env:"TEST_DEFAULT_LOCALE" envDefault:"en"`
}

func (c siteConfig) Validate() error {
	for _, l := range c.Locales {
		if l == c.DefaultLocale {
			return nil
		}
	}
	return errors.New("default locale not listed")
}

type requiredConfig struct {
	Token string `env:"TEST_REQUIRED_TOKEN,required"`
}

type cachedConfig struct {
	Value string `env:"TEST_CACHED_VALUE" envDefault:"first"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.Reset()
		var cfg siteConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, []string{"en", "id"}, cfg.Locales)
		assert.Equal(t, "en", cfg.DefaultLocale)
	})

	t.Run("validation failure", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_DEFAULT_LOCALE", "fr")

		var cfg siteConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("missing required value", func(t *testing.T) {
		config.Reset()
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[siteConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("cached per type", func(t *testing.T) {
		config.Reset()
		var first cachedConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_CACHED_VALUE", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value)

		config.Reset()
		var third cachedConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, "second", third.Value)
	})
}

func TestMustLoad(t *testing.T) {
	config.Reset()
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
