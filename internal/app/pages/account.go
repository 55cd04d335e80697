package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/daybook-app/daybook-web/internal/app/components/banner"
	"github.com/daybook-app/daybook-web/internal/app/models"
)

type AccountData struct {
	User   *models.User
	Error  string
	Notice string
}

// AccountPage renders the profile with the soft-delete lifecycle: an active
// account offers deletion, a deleted one offers restore.
func AccountPage(data AccountData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<section class="account"><h1>Account</h1>`)
		if h.err != nil {
			return h.err
		}

		if data.Error != "" {
			if err := banner.Banner(banner.Props{ID: "account-error", Type: banner.TypeError, Message: data.Error}).Render(ctx, w); err != nil {
				return err
			}
		}
		if data.Notice != "" {
			if err := banner.Banner(banner.Props{ID: "account-notice", Type: banner.TypeSuccess, Message: data.Notice}).Render(ctx, w); err != nil {
				return err
			}
		}

		if data.User == nil {
			h.raw(`<p class="empty">Profile unavailable right now. Try again in a moment.</p></section>`)
			return h.err
		}

		h.rawf(`<dl class="profile"><dt>Username</dt><dd>%s</dd><dt>Email</dt><dd>%s</dd></dl>`,
			esc(data.User.Username), esc(data.User.Email))

		if data.User.IsDeleted {
			if err := banner.Banner(banner.Props{
				ID:      "account-deleted",
				Type:    banner.TypeInfo,
				Message: "This account is scheduled for deletion. You can still restore it.",
			}).Render(ctx, w); err != nil {
				return err
			}
			h.raw(`<form method="post" action="/account/restore"><button type="submit">Restore my account</button></form>`)
		} else {
			h.raw(`<form method="post" action="/account/delete" class="danger-zone">`)
			h.raw(`<p>Deleting your account hides your diary until you restore it.</p>`)
			h.raw(`<button type="submit" class="danger">Delete my account</button></form>`)
		}

		h.raw(`</section>`)
		return h.err
	})
}
