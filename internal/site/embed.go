package site

import (
	"embed"
	"io/fs"
)

//go:embed messages/*.yaml
var messagesFS embed.FS

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and script served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
