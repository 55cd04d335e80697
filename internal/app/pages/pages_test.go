package pages

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook-web/internal/app/models"
)

func renderToDoc(t *testing.T, err error, html string) *goquery.Document {
	t.Helper()
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestLoginPage(t *testing.T) {
	var sb strings.Builder
	err := LoginPage(LoginData{
		Username:  "ana",
		ReturnURL: "/diary?page=2",
		Error:     "Invalid username or password",
	}).Render(context.Background(), &sb)
	doc := renderToDoc(t, err, sb.String())

	form := doc.Find(`form#login-form`)
	require.Equal(t, 1, form.Length())
	action, _ := form.Attr("action")
	assert.Equal(t, "/login", action)

	value, _ := doc.Find(`input[name="username"]`).Attr("value")
	assert.Equal(t, "ana", value)

	returnURL, _ := doc.Find(`input[name="returnUrl"]`).Attr("value")
	assert.Equal(t, "/diary?page=2", returnURL)

	assert.Equal(t, "Invalid username or password", doc.Find("#login-error").Text())
	assert.Equal(t, 1, doc.Find(`a[href="/register"]`).Length())
}

func TestLoginPageOmitsReturnURLFieldWhenEmpty(t *testing.T) {
	var sb strings.Builder
	err := LoginPage(LoginData{}).Render(context.Background(), &sb)
	doc := renderToDoc(t, err, sb.String())

	assert.Zero(t, doc.Find(`input[name="returnUrl"]`).Length())
}

func TestRegisterPageRendersCaptcha(t *testing.T) {
	var sb strings.Builder
	err := RegisterPage(RegisterData{
		InviteCode: "INV-123",
		Email:      "diarist@example.com",
		Captcha:    &models.Captcha{ID: "cap-1", Image: "aWdub3JlZA=="},
	}).Render(context.Background(), &sb)
	doc := renderToDoc(t, err, sb.String())

	invite, _ := doc.Find(`input[name="inviteCode"]`).Attr("value")
	assert.Equal(t, "INV-123", invite)

	src, _ := doc.Find(`.captcha img`).Attr("src")
	assert.Equal(t, "data:image/png;base64,aWdub3JlZA==", src)

	captchaID, _ := doc.Find(`input[name="captchaId"]`).Attr("value")
	assert.Equal(t, "cap-1", captchaID)

	assert.Equal(t, 1, doc.Find(`input[name="captchaCode"]`).Length())
	refresh, _ := doc.Find("a.captcha-refresh").Attr("href")
	assert.Equal(t, "/register?invite=INV-123", refresh)
}

func TestRegisterPageWithoutCaptcha(t *testing.T) {
	var sb strings.Builder
	err := RegisterPage(RegisterData{Error: "Failed to fetch captcha"}).Render(context.Background(), &sb)
	doc := renderToDoc(t, err, sb.String())

	assert.Zero(t, doc.Find(`input[name="captchaId"]`).Length())
	assert.Equal(t, "Failed to fetch captcha", doc.Find("#register-error").Text())
}

func diaryFixture() *models.Page[models.DiaryEntry] {
	return &models.Page[models.DiaryEntry]{
		Items: []models.DiaryEntry{
			{
				ID:        "e1",
				Content:   "walked along the pier",
				EntryDate: time.Date(2026, 8, 14, 19, 30, 0, 0, time.UTC),
				HasImage:  true,
				ImageID:   "img-9",
			},
			{
				ID:        "e2",
				Content:   "rain all day",
				EntryDate: time.Date(2026, 8, 13, 8, 0, 0, 0, time.UTC),
			},
		},
		TotalCount: 7,
		PageNumber: 2,
		PageSize:   5,
		TotalPages: 2,
	}
}

func TestDiaryPageRendersEntries(t *testing.T) {
	var sb strings.Builder
	err := DiaryPage(DiaryData{Entries: diaryFixture()}).Render(context.Background(), &sb)
	doc := renderToDoc(t, err, sb.String())

	assert.Equal(t, 2, doc.Find("article.entry-card").Length())
	assert.Equal(t, "7 entries", doc.Find("p.entry-count").Text())

	imgSrc, _ := doc.Find("#entry-e1 img.entry-image").Attr("src")
	assert.Equal(t, "/images/img-9", imgSrc)
	assert.Zero(t, doc.Find("#entry-e2 img").Length(), "entries without image render no img tag")

	deleteAction, _ := doc.Find(`#entry-e1 form`).Attr("action")
	assert.Equal(t, "/diary/e1/delete", deleteAction)
}

func TestDiaryPageFilterBarKeepsValues(t *testing.T) {
	var sb strings.Builder
	err := DiaryPage(DiaryData{
		Entries:    diaryFixture(),
		SearchTerm: "pier",
		StartDate:  "2026-08-01",
		EndDate:    "2026-08-31",
	}).Render(context.Background(), &sb)
	doc := renderToDoc(t, err, sb.String())

	search, _ := doc.Find(`input[name="searchTerm"]`).Attr("value")
	assert.Equal(t, "pier", search)

	// Pagination links must carry the filters along.
	prev, _ := doc.Find("a.page-link").First().Attr("href")
	assert.Contains(t, prev, "searchTerm=pier")
	assert.Contains(t, prev, "startDate=2026-08-01")

	// Edit links carry page and filters so Cancel lands back where it was.
	edit, _ := doc.Find("#entry-e1 a.entry-edit").Attr("href")
	assert.Contains(t, edit, "edit=e1")
	assert.Contains(t, edit, "page=2")
	assert.Contains(t, edit, "searchTerm=pier")
}

func TestDiaryPageCreateForm(t *testing.T) {
	var sb strings.Builder
	err := DiaryPage(DiaryData{Entries: diaryFixture()}).Render(context.Background(), &sb)
	doc := renderToDoc(t, err, sb.String())

	form := doc.Find("form.entry-form")
	require.Equal(t, 1, form.Length())
	action, _ := form.Attr("action")
	assert.Equal(t, "/diary", action)
	enctype, _ := form.Attr("enctype")
	assert.Equal(t, "multipart/form-data", enctype)
	assert.Zero(t, form.Find(`input[name="deleteCurrentImage"]`).Length())
}

func TestDiaryPageEditForm(t *testing.T) {
	entries := diaryFixture()
	var sb strings.Builder
	err := DiaryPage(DiaryData{
		Entries:   entries,
		EditEntry: &entries.Items[0],
	}).Render(context.Background(), &sb)
	doc := renderToDoc(t, err, sb.String())

	form := doc.Find("form.entry-form")
	action, _ := form.Attr("action")
	assert.Equal(t, "/diary/e1", action)
	assert.Equal(t, "walked along the pier", form.Find("textarea").Text())
	assert.Equal(t, 1, form.Find(`input[name="deleteCurrentImage"]`).Length(),
		"remove-image checkbox appears when the entry has an image")
}

func TestAccountPageLifecycle(t *testing.T) {
	t.Run("active account offers deletion", func(t *testing.T) {
		var sb strings.Builder
		err := AccountPage(AccountData{User: &models.User{Username: "ana", Email: "a@example.com"}}).Render(context.Background(), &sb)
		doc := renderToDoc(t, err, sb.String())

		action, _ := doc.Find("form.danger-zone").Attr("action")
		assert.Equal(t, "/account/delete", action)
		assert.Zero(t, doc.Find(`form[action="/account/restore"]`).Length())
	})

	t.Run("deleted account offers restore", func(t *testing.T) {
		var sb strings.Builder
		err := AccountPage(AccountData{User: &models.User{Username: "ana", IsDeleted: true}}).Render(context.Background(), &sb)
		doc := renderToDoc(t, err, sb.String())

		assert.Equal(t, 1, doc.Find(`form[action="/account/restore"]`).Length())
		assert.Zero(t, doc.Find("form.danger-zone").Length())
		assert.Equal(t, 1, doc.Find("#account-deleted").Length())
	})
}

func TestInvitesPageTable(t *testing.T) {
	var sb strings.Builder
	err := InvitesPage(InvitesData{
		Invites: &models.Page[models.Invite]{
			Items: []models.Invite{
				{Code: "INV-1", Email: "a@example.com", IsUsed: true, ExpiresAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
				{Code: "INV-2", Email: "b@example.com", ExpiresAt: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)},
			},
			TotalCount: 2,
			PageNumber: 1,
			PageSize:   10,
			TotalPages: 1,
		},
	}).Render(context.Background(), &sb)
	doc := renderToDoc(t, err, sb.String())

	rows := doc.Find("table.invite-table tbody tr")
	require.Equal(t, 2, rows.Length())
	assert.Contains(t, rows.First().Text(), "Used")
	assert.Contains(t, rows.Last().Text(), "Pending")

	links := doc.Find("a.invite-link")
	require.Equal(t, 2, links.Length(), "each code links to the register page")
	href, _ := links.First().Attr("href")
	assert.Equal(t, "/register?invite=INV-1", href)
	assert.Equal(t, "INV-1", links.First().Find("code").Text())

	createAction, _ := doc.Find("form.invite-form").Attr("action")
	assert.Equal(t, "/invites", createAction)
}

func TestLayoutPage(t *testing.T) {
	t.Run("anonymous shell", func(t *testing.T) {
		var sb strings.Builder
		err := LayoutPage(models.LayoutData{
			Title: "Sign in - Daybook",
			Nav:   models.OfflineNav,
		}).Render(context.Background(), &sb)
		doc := renderToDoc(t, err, sb.String())

		assert.Equal(t, "Sign in - Daybook", doc.Find("title").Text())
		assert.Equal(t, 1, doc.Find(`a[href="/login"]`).Length())
		assert.Zero(t, doc.Find(`form[action="/logout"]`).Length())
	})

	t.Run("signed-in shell marks active nav and offers logout", func(t *testing.T) {
		var sb strings.Builder
		err := LayoutPage(models.LayoutData{
			Title:     "Diary - Daybook",
			User:      &models.User{Username: "ana"},
			Nav:       models.AdminNav,
			ActiveNav: "Diary",
		}).Render(context.Background(), &sb)
		doc := renderToDoc(t, err, sb.String())

		active := doc.Find("a.nav-link.active")
		require.Equal(t, 1, active.Length())
		assert.Equal(t, "Diary", active.Text())

		assert.Equal(t, 1, doc.Find(`a[href="/invites"]`).Length(), "admin nav carries the invites link")
		assert.Equal(t, "ana", doc.Find(".session-box .username").Text())
		assert.Equal(t, 1, doc.Find(`form[action="/logout"]`).Length())
	})
}

func TestDeniedPage(t *testing.T) {
	var sb strings.Builder
	err := DeniedPage().Render(context.Background(), &sb)
	doc := renderToDoc(t, err, sb.String())

	assert.Equal(t, "Unauthorized", doc.Find("h1").Text())
	assert.Contains(t, doc.Find("main.denied").Text(), "permission")
}
