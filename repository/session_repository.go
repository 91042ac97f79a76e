package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thefundraisingaccelerator/fundraising-copilot/models"
)

// ErrSessionNotFound is returned when a session ID is unknown
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository is an in-memory store for conversation sessions.
// The mutex guards the map only; each session is driven by a single
// interactive user, so session contents are not locked.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

// NewSessionRepository creates an empty session store
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[uuid.UUID]*models.Session),
	}
}

// Create registers a new empty session and returns it
func (r *SessionRepository) Create() *models.Session {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.New(),
		Messages:  make([]models.Message, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	return session
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Reset clears a session's conversation history and deck state
// wholesale, keeping the session itself alive.
func (r *SessionRepository) Reset(id uuid.UUID) error {
	session, err := r.GetByID(id)
	if err != nil {
		return err
	}

	session.Messages = make([]models.Message, 0)
	session.Deck = nil
	session.UpdatedAt = time.Now()
	return nil
}

// Delete removes a session entirely
func (r *SessionRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}
