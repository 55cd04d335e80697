package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/daybook-app/daybook-web/internal/app/components/banner"
	"github.com/daybook-app/daybook-web/internal/app/models"
)

type RegisterData struct {
	InviteCode string
	Email      string
	Username   string
	Captcha    *models.Captcha
	Error      string
	Notice     string
}

// RegisterPage renders the invite-gated registration form with the current
// captcha challenge inlined as a data URI.
func RegisterPage(data RegisterData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<section class="auth-card"><h1>Create your account</h1>`)
		if h.err != nil {
			return h.err
		}

		if data.Error != "" {
			if err := banner.Banner(banner.Props{ID: "register-error", Type: banner.TypeError, Message: data.Error}).Render(ctx, w); err != nil {
				return err
			}
		}
		if data.Notice != "" {
			if err := banner.Banner(banner.Props{ID: "register-notice", Type: banner.TypeSuccess, Message: data.Notice}).Render(ctx, w); err != nil {
				return err
			}
		}

		h.raw(`<form id="register-form" method="post" action="/register">`)
		h.rawf(`<label for="inviteCode">Invite code</label><input id="inviteCode" name="inviteCode" value="%s" required>`, esc(data.InviteCode))
		h.rawf(`<label for="email">Email</label><input id="email" name="email" type="email" value="%s" required>`, esc(data.Email))
		h.rawf(`<label for="username">Username</label><input id="username" name="username" value="%s" autocomplete="username" required>`, esc(data.Username))
		h.raw(`<label for="password">Password</label><input id="password" name="password" type="password" autocomplete="new-password" required>`)
		h.raw(`<label for="confirmPassword">Confirm password</label><input id="confirmPassword" name="confirmPassword" type="password" autocomplete="new-password" required>`)

		if data.Captcha != nil {
			h.rawf(`<div class="captcha"><img alt="captcha" src="data:image/png;base64,%s">`, esc(data.Captcha.Image))
			h.rawf(`<input type="hidden" name="captchaId" value="%s">`, esc(data.Captcha.ID))
			h.raw(`<label for="captchaCode">Enter the characters above</label><input id="captchaCode" name="captchaCode" autocomplete="off" required>`)
			h.rawf(`<a class="captcha-refresh" href="/register?invite=%s">New image</a></div>`, esc(data.InviteCode))
		}

		h.raw(`<button type="submit">Register</button></form>`)
		h.raw(`<p class="auth-alt">Already registered? <a href="/login">Sign in</a></p></section>`)
		return h.err
	})
}
