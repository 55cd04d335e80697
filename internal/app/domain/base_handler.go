package domain

import (
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/middleware"
	"github.com/daybook-app/daybook-web/internal/app/models"
	"github.com/daybook-app/daybook-web/internal/app/observability/metrics"
	"github.com/daybook-app/daybook-web/internal/app/pages"
)

// BaseHandler carries the shared page-rendering path used by every domain
// handler.
type BaseHandler struct {
	Logger *zap.Logger
}

func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	return &BaseHandler{Logger: logger}
}

func (h *BaseHandler) newLayoutData(c *gin.Context, title, activeNav string, content templ.Component) models.LayoutData {
	nav := models.OfflineNav
	var user *models.User

	if sess := middleware.GetSession(c); sess != nil && sess.Authenticated() {
		user = sess.User()
		nav = models.MainNav
		if sess.IsAdmin() {
			nav = models.AdminNav
		}
	}

	return models.LayoutData{
		Title:     title,
		Content:   content,
		Nav:       nav,
		ActiveNav: activeNav,
		User:      user,
	}
}

func (h *BaseHandler) render(c *gin.Context, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render page", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
}

// RenderPage wraps content in the application layout and writes it out.
func (h *BaseHandler) RenderPage(c *gin.Context, status int, title, activeNav string, content templ.Component) {
	start := time.Now()
	layoutData := h.newLayoutData(c, title, activeNav, content)
	h.render(c, status, pages.LayoutPage(layoutData))
	metrics.RecordPageRender(c.Request.Context(), activeNav, time.Since(start))
}
