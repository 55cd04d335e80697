package invites

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/domain"
	"github.com/daybook-app/daybook-web/internal/app/pages"
	"github.com/daybook-app/daybook-web/internal/app/services"
	"github.com/daybook-app/daybook-web/internal/upstream"
)

// Handlers serves the admin invite management view.
type Handlers struct {
	base    *domain.BaseHandler
	invites services.InviteService
	logger  *zap.Logger
}

func NewHandlers(base *domain.BaseHandler, invites services.InviteService, logger *zap.Logger) *Handlers {
	return &Handlers{base: base, invites: invites, logger: logger}
}

func (h *Handlers) ShowInvitesPage(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	var data pages.InvitesData
	if c.Query("created") == "1" {
		data.Notice = "Invite created"
	}

	list, err := h.invites.List(c.Request.Context(), page, services.DefaultInvitePageSize)
	if err != nil {
		if upstream.IsUnauthorized(err) {
			return
		}
		data.Error = upstream.MessageFor(err, "Failed to fetch invites")
		h.base.RenderPage(c, http.StatusOK, "Invites - Daybook", "Invites", pages.InvitesPage(data))
		return
	}
	data.Invites = list

	h.base.RenderPage(c, http.StatusOK, "Invites - Daybook", "Invites", pages.InvitesPage(data))
}

func (h *Handlers) CreateInvite(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	if email == "" {
		h.renderListWithError(c, "Email is required")
		return
	}

	if err := h.invites.Create(c.Request.Context(), email); err != nil {
		if upstream.IsUnauthorized(err) {
			return
		}
		h.renderListWithError(c, upstream.MessageFor(err, "Failed to create invite"))
		return
	}

	h.logger.Info("Invite created", zap.String("email", email))
	c.Redirect(http.StatusSeeOther, "/invites?created=1")
}

func (h *Handlers) renderListWithError(c *gin.Context, message string) {
	data := pages.InvitesData{Error: message}
	if list, err := h.invites.List(c.Request.Context(), 1, services.DefaultInvitePageSize); err == nil {
		data.Invites = list
	}
	h.base.RenderPage(c, http.StatusOK, "Invites - Daybook", "Invites", pages.InvitesPage(data))
}
