package site

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/dmitrymomot/landing/pkg/i18n"
)

// Catalog is the part of *i18n.Translator the page needs.
type Catalog interface {
	Text(lang, key string, args ...string) (string, error)
	Strings(lang, key string) ([]string, error)
}

// Page is the view model of the landing page for one locale.
type Page struct {
	Locale      string
	Title       string
	Description string

	Nav          Navigation
	Hero         Hero
	Features     Features
	Testimonials Testimonials
	Pricing      Pricing
	Contact      Contact
	Footer       Footer
}

type Navigation struct {
	Items         []Link
	Languages     []LanguageLink
	LanguageLabel string
	MenuLabel     string
}

type Link struct {
	Label string
	Href  string
}

type LanguageLink struct {
	Code    string
	Name    string
	Href    string
	Current bool
}

type Hero struct {
	Badge        string
	Title        string
	Subtitle     string
	Description  string
	CTAPrimary   string
	CTASecondary string
}

type Features struct {
	Title    string
	Subtitle string
	Items    []Feature
}

type Feature struct {
	Key         string
	Icon        string
	Title       string
	Description string
	Large       bool
}

type Testimonials struct {
	Title    string
	Subtitle string
	Items    []Testimonial
}

type Testimonial struct {
	Name    string
	Role    string
	Content string
	Rating  int
	Avatar  string
}

// Stars renders the rating as filled stars.
func (t Testimonial) Stars() string {
	return strings.Repeat("★", max(0, t.Rating))
}

type Pricing struct {
	Title    string
	Subtitle string
	Monthly  string
	Yearly   string
	Plans    []Plan
}

type Plan struct {
	Key           string
	Name          string
	Description   string
	Price         string
	Recurring     bool
	PeriodMonthly string // empty unless Recurring
	PeriodYearly  string // empty unless Recurring
	CTA           string
	Popular       bool
	PopularLabel  string
	Features      []string
}

type Contact struct {
	Title    string
	Subtitle string
	Action   string
	Form     ContactLabels
	// Status is "success" or "error" after a form post without JavaScript.
	Status string
}

type ContactLabels struct {
	Name        string
	Email       string
	Message     string
	Submit      string
	Sending     string
	Success     string
	Error       string
	RateLimited string
}

type Footer struct {
	Tagline    string
	QuickLinks string
	Legal      string
	Links      []Link
	LegalLinks []Link
	Company    string
	Rights     string
	Year       int
}

// ContactEndpoint receives contact form posts.
const ContactEndpoint = "/api/contact"

// Build assembles the page for locale. currentPath is the request path
// without its locale segment and is used for the language switcher. The first
// failed lookup aborts the build.
func Build(cat Catalog, locale string, reg *i18n.Registry, currentPath string) (Page, error) {
	if !reg.IsSupported(locale) {
		return Page{}, fmt.Errorf("%w: %q", i18n.ErrLanguageNotSupported, locale)
	}

	l := &lookup{cat: cat, locale: locale}
	p := Page{
		Locale:      locale,
		Title:       l.text("meta.title"),
		Description: l.text("meta.description"),
	}

	p.Nav = Navigation{
		LanguageLabel: l.text("nav.language"),
		MenuLabel:     l.text("nav.menu"),
	}
	for _, s := range navSections {
		p.Nav.Items = append(p.Nav.Items, Link{Label: l.text("nav." + s), Href: "#" + anchor(s)})
	}
	for _, code := range reg.Locales() {
		p.Nav.Languages = append(p.Nav.Languages, LanguageLink{
			Code:    code,
			Name:    languageName(code),
			Href:    reg.SwitchPath(code, currentPath),
			Current: code == locale,
		})
	}

	p.Hero = Hero{
		Badge:        l.text("hero.badge"),
		Title:        l.text("hero.title"),
		Subtitle:     l.text("hero.subtitle"),
		Description:  l.text("hero.description"),
		CTAPrimary:   l.text("hero.ctaPrimary"),
		CTASecondary: l.text("hero.ctaSecondary"),
	}

	p.Features = Features{Title: l.text("features.title"), Subtitle: l.text("features.subtitle")}
	for i, f := range features {
		p.Features.Items = append(p.Features.Items, Feature{
			Key:         f.key,
			Icon:        f.icon,
			Title:       l.text(featureKey(f.key, "title")),
			Description: l.text(featureKey(f.key, "description")),
			Large:       i == 0 || i == 2,
		})
	}

	p.Testimonials = Testimonials{
		Title:    l.text("testimonials.title"),
		Subtitle: l.text("testimonials.subtitle"),
		Items:    testimonials,
	}

	p.Pricing = Pricing{
		Title:    l.text("pricing.title"),
		Subtitle: l.text("pricing.subtitle"),
		Monthly:  l.text("pricing.monthly"),
		Yearly:   l.text("pricing.yearly"),
	}
	perMonth, perYear := l.text("pricing.perMonth"), l.text("pricing.perYear")
	for _, key := range Plans {
		plan := Plan{
			Key:         key,
			Name:        l.text(planKey(key, "name")),
			Description: l.text(planKey(key, "description")),
			Price:       l.text(planKey(key, "price")),
			Recurring:   l.text(planKey(key, "recurring")) == "true",
			CTA:         l.text(planKey(key, "cta")),
			Features:    l.strings(planKey(key, "features")),
			Popular:     key == PopularPlan,
		}
		if plan.Recurring {
			plan.PeriodMonthly, plan.PeriodYearly = perMonth, perYear
		}
		if plan.Popular {
			plan.PopularLabel = l.text(planKey(key, "popular"))
		}
		p.Pricing.Plans = append(p.Pricing.Plans, plan)
	}

	p.Contact = Contact{
		Title:    l.text("contact.title"),
		Subtitle: l.text("contact.subtitle"),
		Action:   ContactEndpoint,
		Form: ContactLabels{
			Name:        l.text("contact.form.name"),
			Email:       l.text("contact.form.email"),
			Message:     l.text("contact.form.message"),
			Submit:      l.text("contact.form.submit"),
			Sending:     l.text("contact.form.sending"),
			Success:     l.text("contact.form.success"),
			Error:       l.text("contact.form.error"),
			RateLimited: l.text("contact.form.rateLimited"),
		},
	}

	p.Footer = Footer{
		Tagline:    l.text("footer.tagline"),
		QuickLinks: l.text("footer.quickLinks"),
		Legal:      l.text("footer.legal"),
		Links: []Link{
			{Label: l.text("nav.features"), Href: "#features"},
			{Label: l.text("nav.pricing"), Href: "#pricing"},
			{Label: l.text("nav.contact"), Href: "#contact"},
		},
		LegalLinks: []Link{
			{Label: l.text("footer.links.privacy"), Href: "#"},
			{Label: l.text("footer.links.terms"), Href: "#"},
			{Label: l.text("footer.links.about"), Href: "#"},
		},
		Company: l.text("footer.company"),
		Rights:  l.text("footer.rights"),
		Year:    time.Now().Year(),
	}

	if l.err != nil {
		return Page{}, l.err
	}
	return p, nil
}

func anchor(section string) string {
	if section == "home" {
		return "hero"
	}
	return section
}

// languageName is the endonym of code, e.g. "English" or "Indonesia".
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(code)
}

// lookup keeps the first error so Build reads as a flat list of fields.
type lookup struct {
	cat    Catalog
	locale string
	err    error
}

func (l *lookup) text(key string) string {
	if l.err != nil {
		return ""
	}
	s, err := l.cat.Text(l.locale, key)
	if err != nil {
		l.err = err
	}
	return s
}

func (l *lookup) strings(key string) []string {
	if l.err != nil {
		return nil
	}
	list, err := l.cat.Strings(l.locale, key)
	if err != nil {
		l.err = err
	}
	return list
}
