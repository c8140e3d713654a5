package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption configures the DataStar patch of a templ response.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector the patch applies to.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the patch is merged into the DOM.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

type templResponse struct {
	partial templ.Component
	full    templ.Component
	status  int
	options []TemplOption
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.partial, t.options...)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 && t.status != http.StatusOK {
		w.WriteHeader(t.status)
	}
	return t.full.Render(r.Context(), w)
}

// Templ renders c as the page, or patches it in for DataStar requests.
func Templ(c templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: c, full: c, options: opts}
}

// TemplWithStatus is Templ with a status for non-DataStar responses.
// Server-sent event streams always answer 200.
func TemplWithStatus(status int, c templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: c, full: c, status: status, options: opts}
}

// TemplPartial patches partial for DataStar requests and renders full otherwise.
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}
