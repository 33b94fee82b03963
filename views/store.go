package views

import (
	"sync"
	"time"

	"booking-frontend/model"
)

type workspace struct {
	list *ListView
	edit *EditView
	seen time.Time
}

// Store keeps the mounted views of each browser session in memory.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*workspace
}

// NewStore drops sessions idle longer than ttl. Zero keeps them forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]*workspace{},
	}
}

// MountList supersedes the session's previous list view.
func (s *Store) MountList(session string, view *ListView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.touch(session).list = view
}

func (s *Store) List(session string) (*ListView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.lookup(session)
	if !ok || ws.list == nil {
		return nil, false
	}
	return ws.list, true
}

func (s *Store) MountEdit(session string, view *EditView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.touch(session).edit = view
}

// Edit returns the session's edit view when it is editing id.
func (s *Store) Edit(session string, id model.ID) (*EditView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.lookup(session)
	if !ok || ws.edit == nil || ws.edit.ID() != id {
		return nil, false
	}
	return ws.edit, true
}

func (s *Store) DropEdit(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ws, ok := s.entries[session]; ok {
		ws.edit = nil
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.entries)
}

func (s *Store) lookup(session string) (*workspace, bool) {
	ws, ok := s.entries[session]
	if !ok {
		return nil, false
	}
	if s.expired(ws) {
		delete(s.entries, session)
		return nil, false
	}
	ws.seen = s.now()
	return ws, true
}

func (s *Store) touch(session string) *workspace {
	ws, ok := s.entries[session]
	if !ok {
		ws = &workspace{}
		s.entries[session] = ws
	}
	ws.seen = s.now()
	return ws
}

func (s *Store) sweep() {
	for session, ws := range s.entries {
		if s.expired(ws) {
			delete(s.entries, session)
		}
	}
}

func (s *Store) expired(ws *workspace) bool {
	return s.ttl > 0 && s.now().Sub(ws.seen) > s.ttl
}
