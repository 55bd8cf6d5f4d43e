// Package session keeps the durable client session: the bearer token and the
// terms, logged-out and offline flags.
//
// Reads are served from an in-memory snapshot. Writes update the snapshot and
// are written through to the preferences table; persistence failures are
// logged and never returned, so callers can treat every setter as infallible.
package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/arcanedex/internal/common"
	"github.com/dmitrijs2005/arcanedex/internal/logging"
)

const (
	keyToken            = "token"
	keyHasAcceptedTerms = "has_accepted_terms"
	keyWasLoggedOut     = "was_logged_out"
	keyIsOffline        = "is_offline"
)

type Store struct {
	mu   sync.RWMutex
	snap models.Session
	repo preferences.Repository
	log  logging.Logger
	now  func() time.Time
}

// NewStore loads the persisted session from repo. Values that cannot be read
// fall back to their zero value.
func NewStore(ctx context.Context, repo preferences.Repository, log logging.Logger) *Store {
	s := &Store{repo: repo, log: log, now: time.Now}

	all, err := repo.List(ctx)
	if err != nil {
		log.Error(ctx, "failed to load session", "error", err)
		return s
	}

	s.snap.Token = all[keyToken]
	s.snap.HasAcceptedTerms = parseBool(all[keyHasAcceptedTerms])
	s.snap.WasLoggedOut = parseBool(all[keyWasLoggedOut])
	s.snap.IsOffline = parseBool(all[keyIsOffline])
	return s
}

func parseBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Store) persist(ctx context.Context, key, value string) {
	if err := s.repo.Set(ctx, key, value); err != nil {
		s.log.Error(ctx, "failed to persist session value", "key", key, "error", err)
	}
}

func (s *Store) setFlag(ctx context.Context, key string, dst *bool, v bool) {
	s.mu.Lock()
	*dst = v
	s.mu.Unlock()
	s.persist(ctx, key, strconv.FormatBool(v))
}

func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Token, s.snap.Token != ""
}

func (s *Store) SaveToken(ctx context.Context, token string) {
	s.mu.Lock()
	s.snap.Token = token
	s.mu.Unlock()
	s.persist(ctx, keyToken, token)
}

func (s *Store) ClearToken(ctx context.Context) {
	s.mu.Lock()
	s.snap.Token = ""
	s.mu.Unlock()
	if err := s.repo.Delete(ctx, keyToken); err != nil {
		s.log.Error(ctx, "failed to clear token", "error", err)
	}
}

func (s *Store) HasAcceptedTerms() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.HasAcceptedTerms
}

func (s *Store) SetHasAcceptedTerms(ctx context.Context, v bool) {
	s.setFlag(ctx, keyHasAcceptedTerms, &s.snap.HasAcceptedTerms, v)
}

func (s *Store) IsOffline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.IsOffline
}

func (s *Store) SetOffline(ctx context.Context, v bool) {
	s.setFlag(ctx, keyIsOffline, &s.snap.IsOffline, v)
}

func (s *Store) WasLoggedOut() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.WasLoggedOut
}

func (s *Store) SetLoggedOut(ctx context.Context, v bool) {
	s.setFlag(ctx, keyWasLoggedOut, &s.snap.WasLoggedOut, v)
}

// ValidToken returns the stored token when it has not expired.
func (s *Store) ValidToken() (string, error) {
	token, ok := s.Token()
	if !ok {
		return "", common.ErrNotLoggedIn
	}
	if !IsTokenValid(token, s.now()) {
		return "", common.ErrTokenExpired
	}
	return token, nil
}

func (s *Store) HasValidToken() bool {
	_, err := s.ValidToken()
	return err == nil
}

// IsAdmin reports whether the stored token is valid and carries the admin
// role. An expired or malformed token is cleared as a side effect. The result
// only decides which commands are offered; the server enforces access.
func (s *Store) IsAdmin(ctx context.Context) bool {
	token, err := s.ValidToken()
	if err != nil {
		if _, present := s.Token(); present {
			s.ClearToken(ctx)
		}
		return false
	}
	role, err := Role(token)
	if err != nil {
		return false
	}
	return role == common.RoleAdmin
}
