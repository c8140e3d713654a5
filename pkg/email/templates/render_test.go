package templates_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/pkg/email/templates"
)

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("body", func(t *testing.T) {
		t.Parallel()
		body, err := templates.Render(context.Background(), templ.Raw("<p>hello</p>"))
		require.NoError(t, err)
		assert.Equal(t, "<p>hello</p>", body)
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		_, err := templates.Render(context.Background(), templ.ComponentFunc(func(context.Context, io.Writer) error {
			return boom
		}))
		assert.ErrorIs(t, err, boom)
	})
}
