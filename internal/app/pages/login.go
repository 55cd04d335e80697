package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/daybook-app/daybook-web/internal/app/components/banner"
)

type LoginData struct {
	Username  string
	ReturnURL string
	Error     string
	Notice    string
}

// LoginPage renders the credential form. The return URL survives the round
// trip as a hidden field so a successful login lands back where the browser
// was headed.
func LoginPage(data LoginData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<section class="auth-card"><h1>Sign in</h1>`)
		if h.err != nil {
			return h.err
		}

		if data.Error != "" {
			if err := banner.Banner(banner.Props{ID: "login-error", Type: banner.TypeError, Message: data.Error}).Render(ctx, w); err != nil {
				return err
			}
		}
		if data.Notice != "" {
			if err := banner.Banner(banner.Props{ID: "login-notice", Type: banner.TypeSuccess, Message: data.Notice}).Render(ctx, w); err != nil {
				return err
			}
		}

		h.raw(`<form id="login-form" method="post" action="/login">`)
		if data.ReturnURL != "" {
			h.rawf(`<input type="hidden" name="returnUrl" value="%s">`, esc(data.ReturnURL))
		}
		h.rawf(`<label for="username">Username</label><input id="username" name="username" value="%s" autocomplete="username" required>`, esc(data.Username))
		h.raw(`<label for="password">Password</label><input id="password" name="password" type="password" autocomplete="current-password" required>`)
		h.raw(`<button type="submit">Sign in</button></form>`)
		h.raw(`<p class="auth-alt">No account yet? <a href="/register">Register with an invite</a></p></section>`)
		return h.err
	})
}
