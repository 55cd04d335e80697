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

type DiaryData struct {
	Entries    *models.Page[models.DiaryEntry]
	SearchTerm string
	StartDate  string
	EndDate    string
	// EditEntry switches the form into edit mode for one entry.
	EditEntry *models.DiaryEntry
	Error     string
	Notice    string
}

// diaryURL rebuilds the list URL for a page, keeping active filters.
func (d DiaryData) diaryURL(page int) string {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if d.SearchTerm != "" {
		q.Set("searchTerm", d.SearchTerm)
	}
	if d.StartDate != "" {
		q.Set("startDate", d.StartDate)
	}
	if d.EndDate != "" {
		q.Set("endDate", d.EndDate)
	}
	if len(q) == 0 {
		return "/diary"
	}
	return "/diary?" + q.Encode()
}

// DiaryPage renders the filter bar, the entry form (create or edit) and the
// paginated entry cards.
func DiaryPage(data DiaryData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw(`<section class="diary"><h1>My diary</h1>`)
		if h.err != nil {
			return h.err
		}

		if data.Error != "" {
			if err := banner.Banner(banner.Props{ID: "diary-error", Type: banner.TypeError, Message: data.Error}).Render(ctx, w); err != nil {
				return err
			}
		}
		if data.Notice != "" {
			if err := banner.Banner(banner.Props{ID: "diary-notice", Type: banner.TypeSuccess, Message: data.Notice}).Render(ctx, w); err != nil {
				return err
			}
		}

		renderFilterBar(h, data)
		renderEntryForm(h, data)

		if data.Entries != nil {
			h.rawf(`<p class="entry-count">%d entries</p>`, data.Entries.TotalCount)
			h.raw(`<div class="entry-list">`)
			for _, entry := range data.Entries.Items {
				renderEntryCard(h, data, entry)
			}
			h.raw(`</div>`)
			if h.err != nil {
				return h.err
			}

			err := pagination.Pagination(pagination.Props{
				PageNumber: data.Entries.PageNumber,
				TotalPages: data.Entries.TotalPages,
				PageURL:    data.diaryURL,
			}).Render(ctx, w)
			if err != nil {
				return err
			}
		}

		h.raw(`</section>`)
		return h.err
	})
}

func renderFilterBar(h *htmlWriter, data DiaryData) {
	h.raw(`<form class="filter-bar" method="get" action="/diary">`)
	h.rawf(`<input type="search" name="searchTerm" placeholder="Search entries" value="%s">`, esc(data.SearchTerm))
	h.rawf(`<label for="startDate">From</label><input id="startDate" type="date" name="startDate" value="%s">`, esc(data.StartDate))
	h.rawf(`<label for="endDate">To</label><input id="endDate" type="date" name="endDate" value="%s">`, esc(data.EndDate))
	h.raw(`<button type="submit">Filter</button><a class="filter-clear" href="/diary">Clear</a></form>`)
}

func renderEntryForm(h *htmlWriter, data DiaryData) {
	if data.EditEntry != nil {
		entry := data.EditEntry
		h.rawf(`<form class="entry-form" method="post" action="/diary/%s" enctype="multipart/form-data"><h2>Edit entry</h2>`, esc(entry.ID))
		h.rawf(`<textarea name="content" rows="5" required>%s</textarea>`, esc(entry.Content))
		h.raw(`<label for="image">Replace image</label><input id="image" type="file" name="image" accept="image/*">`)
		if entry.HasImage {
			h.raw(`<label class="checkbox"><input type="checkbox" name="deleteCurrentImage" value="true"> Remove current image</label>`)
		}
		h.rawf(`<button type="submit">Save</button><a class="form-cancel" href="%s">Cancel</a></form>`, esc(data.diaryURL(pageOf(data))))
		return
	}

	h.raw(`<form class="entry-form" method="post" action="/diary" enctype="multipart/form-data"><h2>New entry</h2>`)
	h.raw(`<textarea name="content" rows="5" placeholder="What happened today?" required></textarea>`)
	h.raw(`<label for="image">Attach image</label><input id="image" type="file" name="image" accept="image/*">`)
	h.raw(`<button type="submit">Add entry</button></form>`)
}

func renderEntryCard(h *htmlWriter, data DiaryData, entry models.DiaryEntry) {
	h.rawf(`<article class="entry-card" id="entry-%s">`, esc(entry.ID))
	h.rawf(`<time datetime="%s">%s</time>`,
		esc(entry.EntryDate.Format("2006-01-02T15:04:05Z07:00")),
		esc(entry.EntryDate.Format("January 2, 2006 15:04")))
	h.rawf(`<p class="entry-content">%s</p>`, esc(entry.Content))

	if entry.HasImage && entry.ImageID != "" {
		h.rawf(`<img class="entry-image" src="/images/%s" alt="entry attachment" loading="lazy">`, esc(entry.ImageID))
	}

	h.raw(`<div class="entry-actions">`)
	h.rawf(`<a class="entry-edit" href="%s">Edit</a>`, esc(editURL(data, entry.ID)))
	h.rawf(`<form method="post" action="/diary/%s/delete"><button type="submit" class="link-button danger">Delete</button></form>`, esc(entry.ID))
	h.raw(`</div></article>`)
}

func editURL(data DiaryData, id string) string {
	q := url.Values{}
	q.Set("edit", id)
	if page := pageOf(data); page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if data.SearchTerm != "" {
		q.Set("searchTerm", data.SearchTerm)
	}
	if data.StartDate != "" {
		q.Set("startDate", data.StartDate)
	}
	if data.EndDate != "" {
		q.Set("endDate", data.EndDate)
	}
	return "/diary?" + q.Encode()
}

func pageOf(data DiaryData) int {
	if data.Entries == nil || data.Entries.PageNumber < 1 {
		return 1
	}
	return data.Entries.PageNumber
}
