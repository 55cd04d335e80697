package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/models"
	"github.com/daybook-app/daybook-web/internal/app/session"
	"github.com/daybook-app/daybook-web/internal/upstream"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func mintToken(t *testing.T, role string, expiresAt time.Time) string {
	t.Helper()

	claims := session.Claims{UserID: "user-1", Role: role}
	if !expiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-only"))
	require.NoError(t, err)
	return token
}

type stubUserAPI struct {
	user *models.User
	err  error
}

func (s *stubUserAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserAPI) DeleteCurrent(ctx context.Context) error { return s.err }

func (s *stubUserAPI) Restore(ctx context.Context) (*models.User, error) {
	return s.user, s.err
}

func newSessionRouter(users session.UserAPI) *gin.Engine {
	r := gin.New()
	r.Use(Session(users, zap.NewNop()))
	return r
}

func TestSessionMiddlewareExposesSession(t *testing.T) {
	token := mintToken(t, session.RoleUser, time.Now().Add(time.Hour))
	users := &stubUserAPI{user: &models.User{ID: "user-1", Username: "ana"}}

	r := newSessionRouter(users)
	var got *session.Session
	r.GET("/diary", func(c *gin.Context) {
		got = GetSession(c)
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/diary", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.True(t, got.Authenticated())
	assert.Equal(t, "ana", got.User().Username)
}

func TestSessionMiddlewareFailsOpenOnProfileFetchError(t *testing.T) {
	token := mintToken(t, session.RoleUser, time.Now().Add(time.Hour))
	users := &stubUserAPI{err: errors.New("backend down")}

	r := newSessionRouter(users)
	var got *session.Session
	r.GET("/diary", func(c *gin.Context) {
		got = GetSession(c)
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/diary", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.True(t, got.Authenticated(), "a transient backend failure must not sign the user out")
	assert.Nil(t, got.User())
}

func TestSessionMiddlewareRedirectsAfterUnauthorizedBackendCall(t *testing.T) {
	users := &stubUserAPI{}
	r := newSessionRouter(users)
	r.GET("/diary", func(c *gin.Context) {
		// A handler whose backend call came back 401 flips the intent and
		// writes nothing.
		LoginRedirect{}.RequestLogin(c.Request.Context())
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/diary", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?returnUrl=%2Fdiary", w.Header().Get("Location"))
}

func TestSessionMiddlewareSkipsRedirectWhenResponseWritten(t *testing.T) {
	r := newSessionRouter(&stubUserAPI{})
	r.GET("/diary", func(c *gin.Context) {
		LoginRedirect{}.RequestLogin(c.Request.Context())
		c.String(http.StatusOK, "partial page")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/diary", nil))

	assert.Equal(t, http.StatusOK, w.Code, "an already-written response is never clobbered")
}

func TestSessionMiddlewareSkipsRedirectAtLogin(t *testing.T) {
	r := newSessionRouter(&stubUserAPI{})
	r.POST("/login", func(c *gin.Context) {
		LoginRedirect{}.RequestLogin(c.Request.Context())
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.NotEqual(t, http.StatusSeeOther, w.Code, "no redirect loop on the login route")
}

func TestSessionMiddlewareClearsExpiredCookie(t *testing.T) {
	token := mintToken(t, session.RoleUser, time.Now().Add(-time.Minute))
	r := newSessionRouter(&stubUserAPI{})
	var got *session.Session
	r.GET("/diary", func(c *gin.Context) {
		got = GetSession(c)
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/diary", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.NotNil(t, got)
	assert.False(t, got.Authenticated())

	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "the expired token cookie must be erased")
}

func TestRequireSessionRedirectsAnonymous(t *testing.T) {
	r := gin.New()
	r.Use(Session(&stubUserAPI{}, zap.NewNop()))
	r.GET("/diary", RequireSession(zap.NewNop()), func(c *gin.Context) {
		c.String(http.StatusOK, "diary")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/diary", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?returnUrl=%2Fdiary", w.Header().Get("Location"))
}

func TestRequireSessionAllowsAuthenticated(t *testing.T) {
	token := mintToken(t, session.RoleUser, time.Now().Add(time.Hour))
	users := &stubUserAPI{user: &models.User{ID: "user-1"}}

	r := gin.New()
	r.Use(Session(users, zap.NewNop()))
	r.GET("/diary", RequireSession(zap.NewNop()), func(c *gin.Context) {
		c.String(http.StatusOK, "diary")
	})

	req := httptest.NewRequest(http.MethodGet, "/diary", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSessionDeniesWrongRoleInPlace(t *testing.T) {
	token := mintToken(t, session.RoleUser, time.Now().Add(time.Hour))
	users := &stubUserAPI{user: &models.User{ID: "user-1"}}

	r := gin.New()
	r.Use(Session(users, zap.NewNop()))
	r.GET("/invites", RequireSession(zap.NewNop(), session.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "invites")
	})

	req := httptest.NewRequest(http.MethodGet, "/invites", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Location"), "denied renders in place, it never redirects")
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestRequireSessionAllowsMatchingRole(t *testing.T) {
	token := mintToken(t, session.RoleAdmin, time.Now().Add(time.Hour))
	users := &stubUserAPI{user: &models.User{ID: "admin-1"}}

	r := gin.New()
	r.Use(Session(users, zap.NewNop()))
	r.GET("/invites", RequireSession(zap.NewNop(), session.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "invites")
	})

	req := httptest.NewRequest(http.MethodGet, "/invites", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDKeepsInboundHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "from-proxy")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "from-proxy", w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "img-src 'self' data:")
}

// Guard against the middleware leaking tokens into requests that carry none.
func TestSessionMiddlewareNoTokenNoContextToken(t *testing.T) {
	r := newSessionRouter(&stubUserAPI{})
	var carried bool
	r.GET("/diary", func(c *gin.Context) {
		_, carried = upstream.TokenFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/diary", nil))

	assert.False(t, carried)
}
