package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// DeniedPage is the in-place authorization-denied view rendered when a
// signed-in user lacks the role for a route. It deliberately does not
// redirect; the URL stays put.
func DeniedPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Unauthorized</title>`)
		h.raw(`<link rel="stylesheet" href="/assets/css/app.css"></head><body>`)
		h.raw(`<main class="denied"><h1>Unauthorized</h1>`)
		h.raw(`<p>You don&#39;t have permission to access this page.</p>`)
		h.raw(`<p><a href="/diary">Back to your diary</a></p></main></body></html>`)
		return h.err
	})
}
