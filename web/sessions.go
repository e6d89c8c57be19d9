package web

import (
	"log"
	"sync"
	"time"

	"github.com/deemkeen/disclosures/domain"
	"github.com/deemkeen/disclosures/progress"
	"github.com/google/uuid"
)

const (
	SessionCookie = "zb_session"
	maxSessions   = 5000
	sessionTTL    = 12 * time.Hour
)

type browserSession struct {
	pages    map[int]*progress.Session
	lastSeen time.Time
}

// SessionRegistry keeps the read progress of browser sessions in memory,
// one progress.Session per page.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*browserSession
	now      func() time.Time
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]*browserSession),
		now:      time.Now,
	}
}

// Resolve parses an existing session id or mints a new one. The bool is true
// when a new id was created.
func (r *SessionRegistry) Resolve(raw string) (uuid.UUID, bool) {
	if id, err := uuid.Parse(raw); err == nil {
		r.mu.Lock()
		_, ok := r.sessions[id]
		r.mu.Unlock()
		if ok {
			return id, false
		}
	}
	return uuid.New(), true
}

// With runs fn on the session's progress for the page, creating it from pc
// when missing. Progress is rebuilt when the page content changed since it
// was created.
func (r *SessionRegistry) With(id uuid.UUID, pc domain.PageContent, fn func(*progress.Session)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bs, ok := r.sessions[id]
	if !ok {
		r.pruneLocked()
		bs = &browserSession{pages: map[int]*progress.Session{}}
		r.sessions[id] = bs
	}
	bs.lastSeen = r.now()

	s, ok := bs.pages[pc.Page.Id]
	if !ok || !sameItems(s, pc) {
		s = progress.ForContent(pc)
		bs.pages[pc.Page.Id] = s
	}
	fn(s)
}

// Len is the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) pruneLocked() {
	if len(r.sessions) < maxSessions {
		return
	}
	cutoff := r.now().Add(-sessionTTL)
	for id, bs := range r.sessions {
		if bs.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
		}
	}
	if len(r.sessions) >= maxSessions {
		log.Printf("Session registry full (%d), dropping all sessions", len(r.sessions))
		r.sessions = make(map[uuid.UUID]*browserSession)
	}
}

func sameItems(s *progress.Session, pc domain.PageContent) bool {
	return s.Covers(progress.ItemsOf(pc.Groups))
}
