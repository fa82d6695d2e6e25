package dashboard

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// Session agrupa el estado de un usuario del dashboard. mu serializa los eventos:
// nunca corren dos pasadas a la vez sobre el mismo estado.
type Session struct {
	ID string

	mu       sync.Mutex
	state    *State
	lastSeen time.Time
}

// Sessions es el registro in-memory de sesiones, con expiración por inactividad.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]*Session
	ttl  time.Duration
	now  func() time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		byID: make(map[string]*Session),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *Sessions) Create(st *State) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	sess := &Session{
		ID:       uuid.NewString(),
		state:    st,
		lastSeen: s.now(),
	}
	s.byID[sess.ID] = sess
	return sess
}

func (s *Sessions) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.expired(sess) {
		delete(s.byID, sess.ID)
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	return sess, nil
}

func (s *Sessions) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.TrimSpace(id)
	if _, ok := s.byID[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *Sessions) expired(sess *Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.lastSeen) > s.ttl
}

// sweepLocked borra sesiones vencidas; se llama en Create, sin goroutines de fondo.
func (s *Sessions) sweepLocked() {
	for id, sess := range s.byID {
		if s.expired(sess) {
			delete(s.byID, id)
		}
	}
}
