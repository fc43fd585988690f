package editor

import (
	"context"
	"sync"
	"time"

	"table-editor/core/changeset"
	"table-editor/core/table"

	"github.com/google/uuid"
)

// FlashLevel is the severity of a one-shot message shown above the grid.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashInfo    FlashLevel = "info"
	FlashWarning FlashLevel = "warning"
	FlashError   FlashLevel = "error"
)

// Flash is a message shown once on the next render.
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

// Workspace is the editing state of one browser session.
//
// It is either editing (no pending change set) or confirming (Pending set and
// ShowConfirmation true). InstanceID changes whenever the grid has to be
// rebuilt from scratch, so forms rendered before that are rejected.
type Workspace struct {
	ID               string
	Original         *table.Snapshot
	Pending          *changeset.ChangeSet
	ShowConfirmation bool
	InstanceID       int
	LastResult       *changeset.Result
	Flash            *Flash

	mu       sync.Mutex
	lastSeen time.Time
}

// Lock serialises actions on the workspace.
func (w *Workspace) Lock() { w.mu.Lock() }

// Unlock releases the workspace.
func (w *Workspace) Unlock() { w.mu.Unlock() }

// SetFlash replaces the pending flash message.
func (w *Workspace) SetFlash(level FlashLevel, msg string) {
	w.Flash = &Flash{Level: level, Message: msg}
}

// PopFlash returns and clears the pending flash message.
func (w *Workspace) PopFlash() *Flash {
	f := w.Flash
	w.Flash = nil
	return f
}

// reset leaves the confirming state and forces a new grid instance.
func (w *Workspace) reset() {
	w.ShowConfirmation = false
	w.Pending = nil
	w.InstanceID++
}

// WorkspaceStore keeps workspaces in memory and drops those idle for too long.
type WorkspaceStore struct {
	mu    sync.Mutex
	items map[string]*Workspace
	idle  time.Duration
	now   func() time.Time
}

// NewWorkspaceStore creates a store. A zero idle duration keeps workspaces forever.
func NewWorkspaceStore(idle time.Duration) *WorkspaceStore {
	return &WorkspaceStore{
		items: make(map[string]*Workspace),
		idle:  idle,
		now:   time.Now,
	}
}

// Get returns the workspace with the given id.
func (s *WorkspaceStore) Get(id string) (*Workspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.items[id]
	if !ok {
		return nil, false
	}
	if s.expired(ws) {
		delete(s.items, id)
		return nil, false
	}
	ws.lastSeen = s.now()
	return ws, true
}

// GetOrCreate returns the workspace with the given id, or a new one when it
// does not exist or has expired. Callers compare the returned ID with theirs.
func (s *WorkspaceStore) GetOrCreate(id string) *Workspace {
	if id != "" {
		if ws, ok := s.Get(id); ok {
			return ws
		}
	}

	ws := &Workspace{ID: uuid.NewString()}

	s.mu.Lock()
	defer s.mu.Unlock()
	ws.lastSeen = s.now()
	s.items[ws.ID] = ws
	return ws
}

// Delete removes a workspace.
func (s *WorkspaceStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Sweep removes every expired workspace and returns how many were removed.
func (s *WorkspaceStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, ws := range s.items {
		if s.expired(ws) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live workspaces.
func (s *WorkspaceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Run sweeps expired workspaces every interval until ctx is done.
func (s *WorkspaceStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *WorkspaceStore) expired(ws *Workspace) bool {
	return s.idle > 0 && s.now().Sub(ws.lastSeen) > s.idle
}
