package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"time"

	"inventory-pos/models"
)

const (
	SessionDuration   = 24 * time.Hour
	SessionCookieName = "session"
	LoginTokenHeader  = "X-Login-Token"
	CSRFTokenHeader   = "X-CSRF-Token"
	CSRFTokenField    = "csrf_token"
)

// sessionStore is the process-wide store used by handlers and middleware
var sessionStore *SessionStore

// InitSessionStore installs the store used by handlers and middleware
func InitSessionStore(backend SessionBackend) {
	sessionStore = NewSessionStore(backend)
}

// Sessions returns the installed session store
func Sessions() *SessionStore {
	return sessionStore
}

// SessionStore manages per-browser login state: an insertion-ordered list
// of login instances per browser session plus a single-slot mirror per
// portal. Mutations to one browser session are serialized through a
// per-session-id mutex so concurrent tab activity cannot lose updates.
type SessionStore struct {
	backend SessionBackend

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSessionStore creates a store over the given persistence backend
func NewSessionStore(backend SessionBackend) *SessionStore {
	return &SessionStore{
		backend: backend,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *SessionStore) lock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[sessionID] = m
	}
	return m
}

// GenerateSessionID generates a secure random browser session ID
func GenerateSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateLoginToken generates a per-tab login token: 16 random bytes hex
// encoded with a unix timestamp suffix. Uniqueness is probabilistic; tokens
// are not checked against existing instances before insertion.
func GenerateLoginToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes) + strconv.FormatInt(time.Now().Unix(), 10), nil
}

// Open loads the browser session for sessionID, creating a fresh one (with
// a new ID and CSRF secret) when the ID is empty or unknown. The returned
// bool reports whether a new session was created.
func (s *SessionStore) Open(ctx context.Context, sessionID, ipAddress, userAgent string) (*models.BrowserSession, bool, error) {
	if sessionID != "" {
		m := s.lock(sessionID)
		m.Lock()
		rec, err := s.backend.Get(ctx, sessionID)
		m.Unlock()
		if err != nil {
			return nil, false, fmt.Errorf("failed to load session: %w", err)
		}
		if rec != nil {
			return rec, false, nil
		}
	}

	newID, err := GenerateSessionID()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate session ID: %w", err)
	}
	csrf, err := GenerateSessionID()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate CSRF token: %w", err)
	}

	now := time.Now()
	rec := &models.BrowserSession{
		SessionID:    newID,
		Logins:       []models.LoginInstance{},
		Mirror:       make(map[string]map[string]interface{}),
		CSRFToken:    csrf,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		CreatedAt:    now,
		LastAccessed: now,
		ExpiresAt:    now.Add(SessionDuration),
	}

	m := s.lock(newID)
	m.Lock()
	defer m.Unlock()
	if err := s.backend.Save(ctx, rec); err != nil {
		return nil, false, fmt.Errorf("failed to create session: %w", err)
	}
	return rec, true, nil
}

// Get loads an existing browser session, nil when absent or expired
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*models.BrowserSession, error) {
	if sessionID == "" {
		return nil, nil
	}
	m := s.lock(sessionID)
	m.Lock()
	defer m.Unlock()
	return s.backend.Get(ctx, sessionID)
}

// CreateLogin stores a new login instance for portal and returns its token.
// The mirror slot for the portal always reflects this most recent login.
func (s *SessionStore) CreateLogin(ctx context.Context, sessionID, portal string, data map[string]interface{}) (string, error) {
	token, err := GenerateLoginToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate login token: %w", err)
	}

	m := s.lock(sessionID)
	m.Lock()
	defer m.Unlock()

	rec, err := s.backend.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if rec == nil {
		return "", fmt.Errorf("session not found")
	}

	now := time.Now()
	rec.Logins = append(rec.Logins, models.LoginInstance{
		Token:        token,
		Portal:       portal,
		Data:         data,
		CreatedAt:    now,
		LastActivity: now,
	})
	if rec.Mirror == nil {
		rec.Mirror = make(map[string]map[string]interface{})
	}
	rec.Mirror[portal] = data
	if portal == string(models.PortalSupplier) {
		rec.LegacySupplier = data
	}
	rec.LastAccessed = now
	rec.ExpiresAt = now.Add(SessionDuration)

	if err := s.backend.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}

// GetLogin resolves the login data for portal. A matching token wins and
// refreshes that instance's last activity; otherwise the first-created
// instance for the portal is returned; otherwise the mirror slot, provided
// it carries a user_id. Returns nil when nothing matches.
func (s *SessionStore) GetLogin(ctx context.Context, sessionID, portal, token string) (map[string]interface{}, error) {
	m := s.lock(sessionID)
	m.Lock()
	defer m.Unlock()

	rec, err := s.backend.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if rec == nil {
		return nil, nil
	}

	if token != "" {
		for i := range rec.Logins {
			if rec.Logins[i].Token == token && rec.Logins[i].Portal == portal {
				rec.Logins[i].LastActivity = time.Now()
				rec.LastAccessed = rec.Logins[i].LastActivity
				if err := s.backend.Save(ctx, rec); err != nil {
					return nil, fmt.Errorf("failed to save session: %w", err)
				}
				return rec.Logins[i].Data, nil
			}
		}
	}

	// Token absent or unmatched: first-created instance for the portal wins
	for i := range rec.Logins {
		if rec.Logins[i].Portal == portal {
			return rec.Logins[i].Data, nil
		}
	}

	if mirror := rec.MirrorData(portal); mirror != nil {
		if _, ok := mirror["user_id"]; ok {
			return mirror, nil
		}
	}
	return nil, nil
}

// ClearLogin removes login instances for portal. With a token only that
// instance is removed (subject to the optional userID scope), and the
// mirror slot is cleared only when the last instance for the portal went
// away. Without a token every matching instance is removed and the mirror
// slot is cleared under the same userID condition; the pre-token supplier
// slot is cleared alongside. Matching nothing is a no-op.
func (s *SessionStore) ClearLogin(ctx context.Context, sessionID, portal, userID, token string) error {
	m := s.lock(sessionID)
	m.Lock()
	defer m.Unlock()

	rec, err := s.backend.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if rec == nil {
		return nil
	}

	changed := false

	if token != "" {
		for i := range rec.Logins {
			inst := rec.Logins[i]
			if inst.Token != token || inst.Portal != portal {
				continue
			}
			if userID != "" && dataUserID(inst.Data) != userID {
				break
			}
			rec.Logins = append(rec.Logins[:i], rec.Logins[i+1:]...)
			changed = true
			if !hasPortalLogin(rec, portal) {
				clearMirror(rec, portal)
			}
			break
		}
	} else {
		kept := rec.Logins[:0]
		for _, inst := range rec.Logins {
			if inst.Portal == portal && (userID == "" || dataUserID(inst.Data) == userID) {
				changed = true
				continue
			}
			kept = append(kept, inst)
		}
		rec.Logins = kept

		if mirror := rec.MirrorData(portal); mirror != nil {
			if userID == "" || dataUserID(mirror) == userID {
				clearMirror(rec, portal)
				changed = true
			}
		}
		if portal == string(models.PortalSupplier) && rec.LegacySupplier != nil {
			if userID == "" || dataUserID(rec.LegacySupplier) == userID {
				rec.LegacySupplier = nil
				changed = true
			}
		}
	}

	if !changed {
		return nil
	}
	rec.LastAccessed = time.Now()
	if err := s.backend.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Destroy removes the whole browser session
func (s *SessionStore) Destroy(ctx context.Context, sessionID string) error {
	m := s.lock(sessionID)
	m.Lock()
	err := s.backend.Delete(ctx, sessionID)
	m.Unlock()

	s.mu.Lock()
	delete(s.locks, sessionID)
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes sessions that expired more than 7 days
// ago and drops the per-session mutexes of sessions the backend no longer
// knows, so the lock map does not grow for the process lifetime.
func (s *SessionStore) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	cutoffTime := time.Now().Add(-7 * 24 * time.Hour)
	count, err := s.backend.DeleteExpired(ctx, cutoffTime)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired sessions: %w", err)
	}
	s.pruneLocks(ctx)
	return count, nil
}

func (s *SessionStore) pruneLocks(ctx context.Context) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.locks))
	for id := range s.locks {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		rec, err := s.backend.Get(ctx, id)
		if err != nil || rec != nil {
			continue
		}
		s.mu.Lock()
		delete(s.locks, id)
		s.mu.Unlock()
	}
}

func hasPortalLogin(rec *models.BrowserSession, portal string) bool {
	for _, inst := range rec.Logins {
		if inst.Portal == portal {
			return true
		}
	}
	return false
}

func clearMirror(rec *models.BrowserSession, portal string) {
	if rec.Mirror != nil {
		delete(rec.Mirror, portal)
	}
	if portal == string(models.PortalSupplier) {
		rec.LegacySupplier = nil
	}
}

func dataUserID(data map[string]interface{}) string {
	if data == nil {
		return ""
	}
	if v, ok := data["user_id"].(string); ok {
		return v
	}
	return ""
}
