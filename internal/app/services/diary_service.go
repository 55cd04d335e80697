package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/models"
)

// DefaultEntryPageSize matches the diary view's page length.
const DefaultEntryPageSize = 5

// Ensure implementation satisfies the interface
var _ DiaryService = (*DiaryServiceImpl)(nil)

// DiaryService maps diary-entry operations onto the backend. Create and
// Update encode multipart payloads for the optional image attachment.
type DiaryService interface {
	List(ctx context.Context, params ListEntriesParams) (*models.Page[models.DiaryEntry], error)
	Get(ctx context.Context, id string) (*models.DiaryEntry, error)
	Create(ctx context.Context, content string, image *Upload) (*models.DiaryEntry, error)
	Update(ctx context.Context, id, content string, image *Upload, deleteCurrentImage bool) (*models.DiaryEntry, error)
	Delete(ctx context.Context, id string) error
	Image(ctx context.Context, id string) (*models.EntryImage, error)
}

// Upload is a file attachment streamed into a multipart request.
type Upload struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

// ListEntriesParams are the query parameters of the paginated entry list.
// StartDate and EndDate are inclusive yyyy-mm-dd bounds; empty filters are
// omitted from the query string.
type ListEntriesParams struct {
	PageNumber int
	PageSize   int
	SearchTerm string
	StartDate  string
	EndDate    string
}

func (p ListEntriesParams) values() url.Values {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultEntryPageSize
	}

	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(p.PageNumber))
	q.Set("pageSize", strconv.Itoa(p.PageSize))
	if p.SearchTerm != "" {
		q.Set("searchTerm", p.SearchTerm)
	}
	if p.StartDate != "" {
		q.Set("startDate", p.StartDate)
	}
	if p.EndDate != "" {
		q.Set("endDate", p.EndDate)
	}
	return q
}

type DiaryServiceImpl struct {
	client Backend
	logger *zap.Logger
}

func NewDiaryService(client Backend, logger *zap.Logger) *DiaryServiceImpl {
	return &DiaryServiceImpl{client: client, logger: logger}
}

func (s *DiaryServiceImpl) List(ctx context.Context, params ListEntriesParams) (*models.Page[models.DiaryEntry], error) {
	var page models.Page[models.DiaryEntry]
	if err := s.client.Get(ctx, "/api/diary-entries", params.values(), &page); err != nil {
		s.logger.Warn("Failed to list diary entries", zap.Error(err))
		return nil, err
	}
	return &page, nil
}

func (s *DiaryServiceImpl) Get(ctx context.Context, id string) (*models.DiaryEntry, error) {
	var entry models.DiaryEntry
	if err := s.client.Get(ctx, "/api/diary-entries/"+id, nil, &entry); err != nil {
		s.logger.Warn("Failed to fetch diary entry", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &entry, nil
}

func (s *DiaryServiceImpl) Create(ctx context.Context, content string, image *Upload) (*models.DiaryEntry, error) {
	l := s.logger.With(zap.String("method", "Create"))

	body, contentType, err := encodeEntryForm(content, image, false)
	if err != nil {
		return nil, err
	}

	var entry models.DiaryEntry
	if err := s.client.Send(ctx, http.MethodPost, "/api/diary-entries", nil, body, contentType, &entry); err != nil {
		l.Warn("Failed to create diary entry", zap.Error(err))
		return nil, err
	}
	l.Debug("Created diary entry", zap.String("id", entry.ID))
	return &entry, nil
}

func (s *DiaryServiceImpl) Update(ctx context.Context, id, content string, image *Upload, deleteCurrentImage bool) (*models.DiaryEntry, error) {
	l := s.logger.With(zap.String("method", "Update"), zap.String("id", id))

	body, contentType, err := encodeEntryForm(content, image, deleteCurrentImage)
	if err != nil {
		return nil, err
	}

	var entry models.DiaryEntry
	if err := s.client.Send(ctx, http.MethodPut, "/api/diary-entries/"+id, nil, body, contentType, &entry); err != nil {
		l.Warn("Failed to update diary entry", zap.Error(err))
		return nil, err
	}
	return &entry, nil
}

func (s *DiaryServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/api/diary-entries/"+id, nil); err != nil {
		s.logger.Warn("Failed to delete diary entry", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *DiaryServiceImpl) Image(ctx context.Context, id string) (*models.EntryImage, error) {
	data, contentType, err := s.client.Fetch(ctx, "/api/entry-images/"+id)
	if err != nil {
		s.logger.Warn("Failed to fetch entry image", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &models.EntryImage{Data: data, ContentType: contentType}, nil
}

// encodeEntryForm builds the multipart payload shared by Create and Update.
// deleteCurrentImage is sent only when true.
func encodeEntryForm(content string, image *Upload, deleteCurrentImage bool) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("content", content); err != nil {
		return nil, "", errors.Wrap(err, "encoding entry content")
	}

	if image != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(image.FileName)))
		if image.ContentType != "" {
			header.Set("Content-Type", image.ContentType)
		}
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", errors.Wrap(err, "encoding entry image")
		}
		if _, err := io.Copy(part, image.Reader); err != nil {
			return nil, "", errors.Wrap(err, "copying entry image")
		}
	}

	if deleteCurrentImage {
		if err := w.WriteField("deleteCurrentImage", "true"); err != nil {
			return nil, "", errors.Wrap(err, "encoding delete flag")
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "finalizing multipart payload")
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
