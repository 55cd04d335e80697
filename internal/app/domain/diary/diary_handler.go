package diary

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/domain"
	"github.com/daybook-app/daybook-web/internal/app/models"
	"github.com/daybook-app/daybook-web/internal/app/observability/metrics"
	"github.com/daybook-app/daybook-web/internal/app/pages"
	"github.com/daybook-app/daybook-web/internal/app/services"
	"github.com/daybook-app/daybook-web/internal/upstream"
)

// Handlers serves the diary view and the entry image proxy.
type Handlers struct {
	base    *domain.BaseHandler
	entries services.DiaryService
	// images caches proxied entry binaries so re-rendering a page of cards
	// does not refetch them from the backend.
	images *gocache.Cache
	logger *zap.Logger
}

func NewHandlers(base *domain.BaseHandler, entries services.DiaryService, imageTTL time.Duration, logger *zap.Logger) *Handlers {
	return &Handlers{
		base:    base,
		entries: entries,
		images:  gocache.New(imageTTL, 2*imageTTL),
		logger:  logger,
	}
}

// listQuery is the view's interaction state, round-tripped through the URL.
type listQuery struct {
	Page       int
	SearchTerm string
	StartDate  string
	EndDate    string
}

func parseListQuery(c *gin.Context) listQuery {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return listQuery{
		Page:       page,
		SearchTerm: strings.TrimSpace(c.Query("searchTerm")),
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
	}
}

func (h *Handlers) ShowDiaryPage(c *gin.Context) {
	query := parseListQuery(c)

	data := pages.DiaryData{
		SearchTerm: query.SearchTerm,
		StartDate:  query.StartDate,
		EndDate:    query.EndDate,
	}

	page, err := h.entries.List(c.Request.Context(), services.ListEntriesParams{
		PageNumber: query.Page,
		PageSize:   services.DefaultEntryPageSize,
		SearchTerm: query.SearchTerm,
		StartDate:  query.StartDate,
		EndDate:    query.EndDate,
	})
	if err != nil {
		if upstream.IsUnauthorized(err) {
			// The session middleware turns the recorded intent into the
			// login redirect.
			return
		}
		data.Error = upstream.MessageFor(err, "Failed to fetch diary entries")
		h.base.RenderPage(c, http.StatusOK, "Diary - Daybook", "Diary", pages.DiaryPage(data))
		return
	}
	data.Entries = page

	if editID := c.Query("edit"); editID != "" {
		data.EditEntry = h.findEntry(c, page, editID)
	}

	h.base.RenderPage(c, http.StatusOK, "Diary - Daybook", "Diary", pages.DiaryPage(data))
}

// findEntry resolves the entry under edit, preferring the page already in
// hand over an extra backend call.
func (h *Handlers) findEntry(c *gin.Context, page *models.Page[models.DiaryEntry], id string) *models.DiaryEntry {
	for i := range page.Items {
		if page.Items[i].ID == id {
			return &page.Items[i]
		}
	}

	entry, err := h.entries.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("Entry under edit not found", zap.String("id", id), zap.Error(err))
		return nil
	}
	return entry
}

func (h *Handlers) CreateEntry(c *gin.Context) {
	content := strings.TrimSpace(c.PostForm("content"))
	if content == "" {
		h.renderListWithError(c, "Entry content is required")
		return
	}

	image, cleanup, err := formImage(c)
	if err != nil {
		h.renderListWithError(c, "Could not read the attached image")
		return
	}
	defer cleanup()

	if _, err := h.entries.Create(c.Request.Context(), content, image); err != nil {
		if upstream.IsUnauthorized(err) {
			return
		}
		h.renderListWithError(c, upstream.MessageFor(err, "Failed to create diary entry"))
		return
	}

	// Back to the first page, where the new entry appears.
	c.Redirect(http.StatusSeeOther, "/diary")
}

func (h *Handlers) UpdateEntry(c *gin.Context) {
	id := c.Param("id")
	content := strings.TrimSpace(c.PostForm("content"))
	if content == "" {
		h.renderListWithError(c, "Entry content is required")
		return
	}
	deleteCurrentImage := c.PostForm("deleteCurrentImage") == "true"

	image, cleanup, err := formImage(c)
	if err != nil {
		h.renderListWithError(c, "Could not read the attached image")
		return
	}
	defer cleanup()

	if _, err := h.entries.Update(c.Request.Context(), id, content, image, deleteCurrentImage); err != nil {
		if upstream.IsUnauthorized(err) {
			return
		}
		h.renderListWithError(c, upstream.MessageFor(err, "Failed to update diary entry"))
		return
	}

	// The entry's image may have changed; drop any cached copy.
	h.images.Flush()

	c.Redirect(http.StatusSeeOther, "/diary")
}

func (h *Handlers) DeleteEntry(c *gin.Context) {
	id := c.Param("id")

	if err := h.entries.Delete(c.Request.Context(), id); err != nil {
		if upstream.IsUnauthorized(err) {
			return
		}
		h.renderListWithError(c, upstream.MessageFor(err, "Failed to delete diary entry"))
		return
	}

	c.Redirect(http.StatusSeeOther, "/diary")
}

// EntryImage proxies the backend's binary image endpoint with a short-lived
// in-memory cache.
func (h *Handlers) EntryImage(c *gin.Context) {
	id := c.Param("id")

	if cached, found := h.images.Get(id); found {
		metrics.RecordImageCacheLookup(c.Request.Context(), true)
		img := cached.(*models.EntryImage)
		c.Data(http.StatusOK, img.ContentType, img.Data)
		return
	}
	metrics.RecordImageCacheLookup(c.Request.Context(), false)

	img, err := h.entries.Image(c.Request.Context(), id)
	if err != nil {
		if upstream.IsUnauthorized(err) {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusNotFound)
		return
	}

	h.images.Set(id, img, gocache.DefaultExpiration)
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

func (h *Handlers) renderListWithError(c *gin.Context, message string) {
	data := pages.DiaryData{Error: message}
	if page, err := h.entries.List(c.Request.Context(), services.ListEntriesParams{PageNumber: 1, PageSize: services.DefaultEntryPageSize}); err == nil {
		data.Entries = page
	}
	h.base.RenderPage(c, http.StatusOK, "Diary - Daybook", "Diary", pages.DiaryPage(data))
}

// formImage extracts the optional image upload from the multipart form. The
// cleanup closes the underlying file and is safe to call when no image was
// sent.
func formImage(c *gin.Context) (*services.Upload, func(), error) {
	noop := func() {}

	header, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, noop, nil
		}
		return nil, noop, err
	}
	if header.Size == 0 {
		return nil, noop, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, err
	}

	upload := &services.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	}
	return upload, func() { file.Close() }, nil
}
