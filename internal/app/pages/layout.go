package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/daybook-app/daybook-web/internal/app/models"
)

// LayoutPage wraps page content in the application shell: head, navigation
// fitting the signed-in user, and footer.
func LayoutPage(data models.LayoutData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.rawf(`<title>%s</title>`, esc(data.Title))
		h.raw(`<link rel="stylesheet" href="/assets/css/app.css">`)
		h.raw(`<script src="/assets/js/app.js" defer></script>`)
		h.raw(`</head><body><header class="site-header"><span class="brand">Daybook</span><nav class="site-nav">`)

		for _, item := range data.Nav.Items {
			class := "nav-link"
			if item.Name == data.ActiveNav {
				class = "nav-link active"
			}
			h.rawf(`<a class="%s" href="%s">%s</a>`, class, esc(item.URL), esc(item.Name))
		}
		h.raw(`</nav>`)

		if data.User != nil {
			h.rawf(`<div class="session-box"><span class="username">%s</span>`, esc(data.User.Username))
			h.raw(`<form method="post" action="/logout"><button type="submit" class="link-button">Sign out</button></form></div>`)
		}
		h.raw(`</header><main class="content">`)

		if h.err != nil {
			return h.err
		}
		if data.Content != nil {
			if err := data.Content.Render(ctx, w); err != nil {
				return err
			}
		}

		h.raw(`</main><footer class="site-footer">Daybook, your personal diary</footer></body></html>`)
		return h.err
	})
}
