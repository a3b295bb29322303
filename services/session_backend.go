package services

import (
	"context"
	"sync"
	"time"

	"inventory-pos/models"
)

// SessionBackend is the persistence layer behind the session store. Get
// returns (nil, nil) for unknown or expired session IDs.
type SessionBackend interface {
	Get(ctx context.Context, sessionID string) (*models.BrowserSession, error)
	Save(ctx context.Context, session *models.BrowserSession) error
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// MemorySessionBackend keeps browser sessions in a map. Used in tests and
// single-process development runs.
type MemorySessionBackend struct {
	mu       sync.RWMutex
	sessions map[string]*models.BrowserSession
}

func NewMemorySessionBackend() *MemorySessionBackend {
	return &MemorySessionBackend{sessions: make(map[string]*models.BrowserSession)}
}

func (b *MemorySessionBackend) Get(ctx context.Context, sessionID string) (*models.BrowserSession, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rec, ok := b.sessions[sessionID]
	if !ok || time.Now().After(rec.ExpiresAt) {
		return nil, nil
	}
	return rec, nil
}

func (b *MemorySessionBackend) Save(ctx context.Context, session *models.BrowserSession) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[session.SessionID] = session
	return nil
}

func (b *MemorySessionBackend) Delete(ctx context.Context, sessionID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, sessionID)
	return nil
}

func (b *MemorySessionBackend) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var removed int64
	for id, rec := range b.sessions {
		if rec.ExpiresAt.Before(cutoff) {
			delete(b.sessions, id)
			removed++
		}
	}
	return removed, nil
}
