package pages

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/daybook-app/daybook-web/internal/app/components/banner"
	"github.com/daybook-app/daybook-web/internal/app/components/pagination"
	"github.com/daybook-app/daybook-web/internal/app/models"
)

type InvitesData struct {
	Invites *models.Page[models.Invite]
	Email   string
	Error   string
	Notice  string
}

// InvitesPage renders the admin invite manager: a create form and the
// paginated invite table.
func InvitesPage(data InvitesData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<section class="invites"><h1>Invites</h1>`)
		if h.err != nil {
			return h.err
		}

		if data.Error != "" {
			if err := banner.Banner(banner.Props{ID: "invites-error", Type: banner.TypeError, Message: data.Error}).Render(ctx, w); err != nil {
				return err
			}
		}
		if data.Notice != "" {
			if err := banner.Banner(banner.Props{ID: "invites-notice", Type: banner.TypeSuccess, Message: data.Notice}).Render(ctx, w); err != nil {
				return err
			}
		}

		h.raw(`<form class="invite-form" method="post" action="/invites">`)
		h.rawf(`<label for="email">Email</label><input id="email" name="email" type="email" value="%s" required>`, esc(data.Email))
		h.raw(`<button type="submit">Send invite</button></form>`)

		if data.Invites != nil && len(data.Invites.Items) > 0 {
			h.raw(`<table class="invite-table"><thead><tr><th>Code</th><th>Email</th><th>Status</th><th>Expires</th></tr></thead><tbody>`)
			for _, invite := range data.Invites.Items {
				status := "Pending"
				if invite.IsUsed {
					status = "Used"
				}
				h.rawf(`<tr><td><a class="invite-link" href="%s"><code>%s</code></a></td><td>%s</td><td>%s</td><td>%s</td></tr>`,
					esc(registerURL(invite.Code)),
					esc(invite.Code),
					esc(invite.Email),
					status,
					esc(invite.ExpiresAt.Format("January 2, 2006")))
			}
			h.raw(`</tbody></table>`)
			if h.err != nil {
				return h.err
			}

			err := pagination.Pagination(pagination.Props{
				PageNumber: data.Invites.PageNumber,
				TotalPages: data.Invites.TotalPages,
				PageURL: func(page int) string {
					if page <= 1 {
						return "/invites"
					}
					return "/invites?page=" + strconv.Itoa(page)
				},
			}).Render(ctx, w)
			if err != nil {
				return err
			}
		} else {
			h.raw(`<p class="empty">No invites yet.</p>`)
		}

		h.raw(`</section>`)
		return h.err
	})
}

// registerURL is the shareable registration link for an invite code; the
// register page prefills the code from the query parameter.
func registerURL(code string) string {
	return "/register?invite=" + url.QueryEscape(code)
}
