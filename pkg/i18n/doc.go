// Package i18n provides locale-aware routing and a message catalog for
// server-rendered pages.
//
// # Locale routing
//
// A Registry holds the supported locales, the default locale and the
// PrefixStrategy that decides when a locale appears as the first path segment:
//
//	reg, err := i18n.NewRegistry([]string{"en", "id"}, "en", i18n.PrefixAsNeeded)
//
//	reg.Resolve("/en/pricing") // {Locale: "en", Path: "/pricing", Redirect: "/pricing"}
//	reg.Resolve("/id/pricing") // {Locale: "id", Path: "/pricing"}
//	reg.Resolve("/fr/pricing") // {Locale: "en", Path: "/fr/pricing"}
//
// Resolve is pure. RoutingMiddleware applies it to requests: it issues 307
// redirects, stores the locale in the request context (see GetLocale) and
// strips the locale segment from r.URL.Path before routing continues.
// Under PrefixNever the locale comes from a cookie, the "lang" query
// parameter or Accept-Language, matched with golang.org/x/text/language.
//
// # Message catalog
//
// A Translator loads per-locale message trees from a Source (MapSource, or
// FSSource over an embed.FS or a directory) decoded by YAMLParser or
// JSONParser. Values are addressed by dotted key paths such as
// "footer.links.privacy".
//
// Lookup, Text and Strings are strict: a missing key is an error and there is
// no fallback to another locale. The catalog's completeness is meant to be
// enforced at startup with WithRequiredKeys, which makes NewTranslator fail
// with an *IncompleteCatalogError naming every gap:
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSSource(i18n.YAMLParser{}, messages, "messages"),
//		i18n.WithRequiredKeys(site.Keys()...),
//		i18n.WithRequiredLanguages(reg.Locales()...),
//	)
//
// T and Tc are lenient variants returning the key itself on failure, for
// places such as email subjects where an error has nowhere to go.
package i18n
