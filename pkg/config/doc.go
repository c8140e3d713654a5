// Package config loads typed application configuration from environment
// variables.
//
// It wraps github.com/joho/godotenv (optional .env file) and
// github.com/caarlos0/env/v11 (struct tag parsing). Each configuration type is
// parsed once per process and cached; later calls return the cached copy.
//
// A configuration type may implement Validator to reject values that parse
// correctly but make no sense together:
//
//	type ServerConfig struct {
//		Locales       []string `env:"LOCALES" envDefault:"en,id"`
//		DefaultLocale string   `env:"DEFAULT_LOCALE" envDefault:"en"`
//	}
//
//	func (c ServerConfig) Validate() error {
//		if !slices.Contains(c.Locales, c.DefaultLocale) {
//			return errors.New("default locale is not in LOCALES")
//		}
//		return nil
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// A failed load is not cached, so the next call parses again.
package config
