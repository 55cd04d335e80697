package middleware

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/pages"
	"github.com/daybook-app/daybook-web/internal/app/session"
)

// RequireSession gates a route on the current session. Without a token the
// browser is sent to the login view carrying the attempted path as returnUrl.
// When allowedRoles is non-empty the token's role claim is decoded per
// request: an undecodable token counts as an invalid session and redirects to
// login, a decodable token with the wrong role renders the denied view in
// place without redirecting.
func RequireSession(logger *zap.Logger, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil || !sess.Authenticated() {
			target := "/login?returnUrl=" + url.QueryEscape(c.Request.URL.Path)
			c.Redirect(http.StatusSeeOther, target)
			c.Abort()
			return
		}

		if len(allowedRoles) > 0 {
			claims, err := session.DecodeClaims(sess.Token())
			if err != nil {
				logger.Warn("Undecodable session token on guarded route",
					zap.String("path", c.Request.URL.Path))
				c.Redirect(http.StatusSeeOther, "/login")
				c.Abort()
				return
			}

			if !slices.Contains(allowedRoles, claims.Role) {
				logger.Warn("Role not permitted for route",
					zap.String("path", c.Request.URL.Path),
					zap.String("role", claims.Role))
				c.Status(http.StatusForbidden)
				if err := pages.DeniedPage().Render(c.Request.Context(), c.Writer); err != nil {
					logger.Error("Failed to render denied page", zap.Error(err))
				}
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
