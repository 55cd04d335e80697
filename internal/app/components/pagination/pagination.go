package pagination

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"
)

type Props struct {
	PageNumber int
	TotalPages int
	// PageURL builds the href for a given page, preserving the caller's
	// filter parameters.
	PageURL func(page int) string
	Class   string
}

// Pagination renders previous/next links and a page indicator. Nothing is
// rendered when there is a single page or none.
func Pagination(props Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if props.TotalPages <= 1 {
			return nil
		}

		classes := twmerge.Merge("pagination flex items-center gap-3", props.Class)

		if _, err := fmt.Fprintf(w, `<nav class="%s" aria-label="Pagination">`, templ.EscapeString(classes)); err != nil {
			return err
		}

		if props.PageNumber > 1 {
			if err := writeLink(w, props.PageURL(props.PageNumber-1), "Previous"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `<span class="page-indicator">Page %d of %d</span>`,
			props.PageNumber, props.TotalPages); err != nil {
			return err
		}

		if props.PageNumber < props.TotalPages {
			if err := writeLink(w, props.PageURL(props.PageNumber+1), "Next"); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</nav>`)
		return err
	})
}

func writeLink(w io.Writer, href, label string) error {
	_, err := fmt.Fprintf(w, `<a class="page-link" href="%s">%s</a>`,
		templ.EscapeString(href), templ.EscapeString(label))
	return err
}
