package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/domain"
	"github.com/daybook-app/daybook-web/internal/app/middleware"
	"github.com/daybook-app/daybook-web/internal/app/pages"
	"github.com/daybook-app/daybook-web/internal/upstream"
)

// Handlers serves the profile view and the soft-delete lifecycle.
type Handlers struct {
	base   *domain.BaseHandler
	logger *zap.Logger
}

func NewHandlers(base *domain.BaseHandler, logger *zap.Logger) *Handlers {
	return &Handlers{base: base, logger: logger}
}

func (h *Handlers) ShowAccountPage(c *gin.Context) {
	var data pages.AccountData
	if sess := middleware.GetSession(c); sess != nil {
		data.User = sess.User()
	}
	if c.Query("restored") == "1" {
		data.Notice = "Welcome back. Your account is active again."
	}
	h.base.RenderPage(c, http.StatusOK, "Account - Daybook", "Account", pages.AccountPage(data))
}

func (h *Handlers) DeleteAccount(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if err := sess.DeleteAccount(c.Request.Context()); err != nil {
		if upstream.IsUnauthorized(err) {
			return
		}
		h.logger.Error("Account deletion failed", zap.Error(err))
		data := pages.AccountData{User: sess.User(), Error: upstream.MessageFor(err, "Failed to delete account")}
		h.base.RenderPage(c, http.StatusOK, "Account - Daybook", "Account", pages.AccountPage(data))
		return
	}

	c.Redirect(http.StatusSeeOther, "/account")
}

func (h *Handlers) RestoreAccount(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if err := sess.RestoreAccount(c.Request.Context()); err != nil {
		if upstream.IsUnauthorized(err) {
			return
		}
		h.logger.Error("Account restore failed", zap.Error(err))
		data := pages.AccountData{User: sess.User(), Error: upstream.MessageFor(err, "Failed to restore account")}
		h.base.RenderPage(c, http.StatusOK, "Account - Daybook", "Account", pages.AccountPage(data))
		return
	}

	c.Redirect(http.StatusSeeOther, "/account?restored=1")
}
