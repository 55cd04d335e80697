package pagination

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func pageURL(page int) string {
	return "/diary?page=" + strconv.Itoa(page)
}

func TestPagination(t *testing.T) {
	t.Run("it renders nothing for a single page", func(t *testing.T) {
		var sb strings.Builder
		Pagination(Props{PageNumber: 1, TotalPages: 1, PageURL: pageURL}).Render(context.Background(), &sb)

		if sb.Len() != 0 {
			t.Errorf("expected no output, got %q", sb.String())
		}
	})

	t.Run("first page has only a next link", func(t *testing.T) {
		var sb strings.Builder
		Pagination(Props{PageNumber: 1, TotalPages: 3, PageURL: pageURL}).Render(context.Background(), &sb)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
		if err != nil {
			t.Fatalf("failed to read rendered HTML: %v", err)
		}

		links := doc.Find("a.page-link")
		if links.Length() != 1 {
			t.Fatalf("expected one link, got %d", links.Length())
		}
		if href, _ := links.Attr("href"); href != "/diary?page=2" {
			t.Errorf("unexpected next href %q", href)
		}
		if got := doc.Find("span.page-indicator").Text(); got != "Page 1 of 3" {
			t.Errorf("unexpected indicator %q", got)
		}
	})

	t.Run("middle page links both directions", func(t *testing.T) {
		var sb strings.Builder
		Pagination(Props{PageNumber: 2, TotalPages: 3, PageURL: pageURL}).Render(context.Background(), &sb)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
		if err != nil {
			t.Fatalf("failed to read rendered HTML: %v", err)
		}

		var hrefs []string
		doc.Find("a.page-link").Each(func(i int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			hrefs = append(hrefs, href)
		})
		if len(hrefs) != 2 || hrefs[0] != "/diary?page=1" || hrefs[1] != "/diary?page=3" {
			t.Errorf("unexpected hrefs %v", hrefs)
		}
	})

	t.Run("last page has only a previous link", func(t *testing.T) {
		var sb strings.Builder
		Pagination(Props{PageNumber: 3, TotalPages: 3, PageURL: pageURL}).Render(context.Background(), &sb)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
		if err != nil {
			t.Fatalf("failed to read rendered HTML: %v", err)
		}

		links := doc.Find("a.page-link")
		if links.Length() != 1 {
			t.Fatalf("expected one link, got %d", links.Length())
		}
		if got := links.Text(); got != "Previous" {
			t.Errorf("expected a Previous link, got %q", got)
		}
	})
}
