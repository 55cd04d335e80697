package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/models"
	"github.com/daybook-app/daybook-web/internal/upstream"
)

// UserAPI is the slice of the user service the session core needs.
type UserAPI interface {
	CurrentUser(ctx context.Context) (*models.User, error)
	DeleteCurrent(ctx context.Context) error
	Restore(ctx context.Context) (*models.User, error)
}

// Session holds the current token/user pair for one request. It is built by
// the session middleware at the start of the request and torn down with it;
// nothing outlives that boundary. Token and user are only ever replaced as
// whole values.
//
// Invariant: a non-nil user implies a non-empty token. The converse may lag by
// one profile fetch.
type Session struct {
	store  Store
	users  UserAPI
	logger *zap.Logger

	token string
	user  *models.User
}

func New(store Store, users UserAPI, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{store: store, users: users, logger: logger}
}

// Bootstrap restores the session from the persisted token. An undecodable or
// expired token clears the store and leaves no session. A valid token is
// adopted before the profile fetch; if that fetch fails the error propagates
// and the token stays in place — the caller decides what a failed restore
// means.
func (s *Session) Bootstrap(ctx context.Context) error {
	token, ok := s.store.Token()
	if !ok {
		return nil
	}

	claims, err := DecodeClaims(token)
	if err != nil || expired(claims, time.Now()) {
		s.logger.Debug("Discarding persisted session token", zap.Bool("decodable", err == nil))
		s.store.Clear()
		s.token = ""
		s.user = nil
		return nil
	}

	s.token = token
	user, err := s.users.CurrentUser(upstream.WithToken(ctx, token))
	if err != nil {
		return err
	}
	s.user = user
	return nil
}

// Login adopts a freshly issued token/user pair and persists the token. The
// token was just authenticated by the backend; no further verification here.
func (s *Session) Login(token string, user *models.User) {
	s.store.Save(token)
	s.token = token
	s.user = user
}

// Logout erases the persisted token and clears the session. Always succeeds.
func (s *Session) Logout() {
	s.store.Clear()
	s.token = ""
	s.user = nil
}

// DeleteAccount soft-deletes the current user on the backend, then re-fetches
// the profile so the deletion flag becomes visible. On any failure the
// session keeps its last-known-good state.
func (s *Session) DeleteAccount(ctx context.Context) error {
	if err := s.users.DeleteCurrent(ctx); err != nil {
		return err
	}
	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		return err
	}
	s.user = user
	return nil
}

// RestoreAccount undoes a soft delete and adopts the returned profile.
func (s *Session) RestoreAccount(ctx context.Context) error {
	user, err := s.users.Restore(ctx)
	if err != nil {
		return err
	}
	s.user = user
	return nil
}

func (s *Session) Token() string { return s.token }

func (s *Session) User() *models.User { return s.user }

func (s *Session) Authenticated() bool { return s.token != "" }

// Role derives the role claim from the raw token on every call. Storing only
// the token keeps a stale cached role impossible.
func (s *Session) Role() string { return RoleOf(s.token) }

func (s *Session) IsAdmin() bool { return s.Role() == RoleAdmin }
