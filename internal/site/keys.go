package site

import "slices"

// Plans in display order. The middle one is highlighted.
var Plans = []string{"starter", "professional", "enterprise"}

// PopularPlan carries the "popular" badge.
const PopularPlan = "professional"

// features in display order with their icon names.
var features = []struct{ key, icon string }{
	{"feature1", "zap"},
	{"feature2", "users"},
	{"feature3", "pointer"},
	{"feature4", "headphones"},
	{"feature5", "trending-up"},
	{"feature6", "shield"},
}

var navSections = []string{"home", "features", "testimonials", "pricing", "contact"}

var staticKeys = []string{
	"meta.title",
	"meta.description",
	"nav.language",
	"nav.menu",
	"hero.badge",
	"hero.title",
	"hero.subtitle",
	"hero.description",
	"hero.ctaPrimary",
	"hero.ctaSecondary",
	"features.title",
	"features.subtitle",
	"testimonials.title",
	"testimonials.subtitle",
	"pricing.title",
	"pricing.subtitle",
	"pricing.monthly",
	"pricing.yearly",
	"pricing.perMonth",
	"pricing.perYear",
	"pricing.plans." + PopularPlan + ".popular",
	"contact.title",
	"contact.subtitle",
	"contact.form.name",
	"contact.form.email",
	"contact.form.message",
	"contact.form.submit",
	"contact.form.sending",
	"contact.form.success",
	"contact.form.error",
	"contact.form.rateLimited",
	"validation.required",
	"validation.email",
	"validation.min_length",
	"validation.max_length",
	"footer.tagline",
	"footer.quickLinks",
	"footer.legal",
	"footer.company",
	"footer.rights",
	"footer.links.privacy",
	"footer.links.terms",
	"footer.links.about",
	"errors.title",
	"errors.notFound",
	"errors.retry",
	"errors.home",
	"errors.requestId",
	"email.subject",
	"email.heading",
	"email.name",
	"email.email",
	"email.message",
	"email.locale",
	"email.submitted",
}

var planFields = []string{"name", "description", "price", "recurring", "cta", "features"}

// Keys returns every catalog key the site renders. Each registered locale
// must define all of them.
func Keys() []string {
	keys := slices.Clone(staticKeys)
	for _, s := range navSections {
		keys = append(keys, "nav."+s)
	}
	for _, f := range features {
		keys = append(keys, featureKey(f.key, "title"), featureKey(f.key, "description"))
	}
	for _, p := range Plans {
		for _, field := range planFields {
			keys = append(keys, planKey(p, field))
		}
	}
	slices.Sort(keys)
	return keys
}

func featureKey(feature, field string) string {
	return "features.items." + feature + "." + field
}

func planKey(plan, field string) string {
	return "pricing.plans." + plan + "." + field
}
