package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName is the stable key under which the session token persists across
// page loads.
const CookieName = "token"

// Store persists the single session token value. Implementations replace the
// value wholesale; there is no partial mutation.
type Store interface {
	Token() (string, bool)
	Save(token string)
	Clear()
}

// CookieStore keeps the token in an HTTP-only cookie on the current request's
// response. The cookie lifetime follows the token's own expiry so the browser
// drops both together.
type CookieStore struct {
	c *gin.Context
}

var _ Store = (*CookieStore)(nil)

func NewCookieStore(c *gin.Context) *CookieStore {
	return &CookieStore{c: c}
}

func (s *CookieStore) Token() (string, bool) {
	token, err := s.c.Cookie(CookieName)
	return token, err == nil && token != ""
}

func (s *CookieStore) Save(token string) {
	maxAge := int((7 * 24 * time.Hour).Seconds())
	if claims, err := DecodeClaims(token); err == nil && claims.ExpiresAt != nil {
		if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
			maxAge = int(ttl.Seconds())
		}
	}
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(CookieName, token, maxAge, "/", "", false, true)
}

func (s *CookieStore) Clear() {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// MemoryStore is a test double holding the token in memory.
type MemoryStore struct {
	token string
	set   bool
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token, set: token != ""}
}

func (s *MemoryStore) Token() (string, bool) { return s.token, s.set && s.token != "" }

func (s *MemoryStore) Save(token string) {
	s.token = token
	s.set = true
}

func (s *MemoryStore) Clear() {
	s.token = ""
	s.set = false
}
