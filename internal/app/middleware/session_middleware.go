package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/session"
	"github.com/daybook-app/daybook-web/internal/upstream"
)

// loginIntent records that some backend call during this request came back
// 401. The session middleware turns it into a redirect after the handler ran.
type loginIntent struct {
	requested bool
}

type loginIntentKey struct{}

func withLoginIntent(ctx context.Context, intent *loginIntent) context.Context {
	return context.WithValue(ctx, loginIntentKey{}, intent)
}

// LoginRedirect is the upstream.Redirector wired into the backend client. It
// only flips the per-request intent; the session middleware owns the actual
// navigation, so the HTTP layer never references the router.
type LoginRedirect struct{}

var _ upstream.Redirector = LoginRedirect{}

func (LoginRedirect) RequestLogin(ctx context.Context) {
	if intent, ok := ctx.Value(loginIntentKey{}).(*loginIntent); ok {
		intent.requested = true
	}
}

// Session restores the session from the token cookie for every request. This
// is the construction boundary: the session is built here, handed to handlers
// through the gin context, and discarded with the request.
func Session(users session.UserAPI, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		intent := &loginIntent{}
		ctx := withLoginIntent(c.Request.Context(), intent)

		store := session.NewCookieStore(c)
		if token, ok := store.Token(); ok {
			ctx = upstream.WithToken(ctx, token)
		}
		c.Request = c.Request.WithContext(ctx)

		sess := session.New(store, users, logger)
		if err := sess.Bootstrap(ctx); err != nil {
			// Fail-open restore: the token stays adopted, the profile is
			// simply absent for this request.
			logger.Warn("Session restore failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}
		c.Set(SessionContextKey, sess)

		c.Next()

		if intent.requested && !c.Writer.Written() && !atLogin(c.Request.URL.Path) {
			target := "/login?returnUrl=" + url.QueryEscape(c.Request.URL.Path)
			c.Redirect(http.StatusSeeOther, target)
		}
	}
}

func atLogin(path string) bool {
	return path == "/login" || strings.HasPrefix(path, "/login/")
}
