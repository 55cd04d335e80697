package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func NotFoundPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="not-found"><h1>Page not found</h1>`)
		h.raw(`<p>The page you were looking for does not exist.</p>`)
		h.raw(`<p><a href="/diary">Back to your diary</a></p></section>`)
		return h.err
	})
}
