package pipeline

import (
	"sync"

	"github.com/doeshing/arcgen/internal/domain"
)

// SessionContext carries the per-session mutable state: the bounded history
// log and the model that served the most recent request. It is owned by the
// caller and passed into each pipeline invocation, never ambient global
// state, so future concurrent sessions cannot collide.
type SessionContext struct {
	mu          sync.Mutex
	history     *domain.HistoryLog
	activeModel string
}

// NewSession creates a session with an empty history log.
func NewSession() *SessionContext {
	return &SessionContext{history: domain.NewHistoryLog(domain.HistoryCapacity)}
}

// History exposes the bounded session log.
func (s *SessionContext) History() *domain.HistoryLog {
	return s.history
}

// ActiveModel reports which model served the most recent request.
func (s *SessionContext) ActiveModel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeModel
}

func (s *SessionContext) setActiveModel(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeModel = name
}
