// Package viewstate remembers the last good data rendered for each (session, view)
// pair. Every fetch takes a token from Begin; Commit keeps the result only when no
// newer fetch of the same view has already committed, so a late response never
// replaces fresher data.
package viewstate

import (
	"context"
	"sync"
	"time"
)

// Token identifies one fetch of a view
type Token struct {
	Session string
	View    string
	Seq     uint64
}

// StaleObserver is notified when a commit is discarded
type StaleObserver interface {
	ObserveStale(view string)
}

type slot struct {
	issued    uint64
	committed uint64
	data      any
	at        time.Time
}

// Tracker is safe for concurrent use
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]map[string]*slot
	observer StaleObserver
	now      func() time.Time
}

// NewTracker creates an empty tracker. observer may be nil.
func NewTracker(observer StaleObserver) *Tracker {
	return &Tracker{
		sessions: make(map[string]map[string]*slot),
		observer: observer,
		now:      time.Now,
	}
}

func (t *Tracker) slot(sessionID, view string) *slot {
	views, ok := t.sessions[sessionID]
	if !ok {
		views = make(map[string]*slot)
		t.sessions[sessionID] = views
	}
	s, ok := views[view]
	if !ok {
		s = &slot{}
		views[view] = s
	}
	return s
}

// Begin issues a token newer than every token issued before for the same view
func (t *Tracker) Begin(sessionID, view string) Token {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.slot(sessionID, view)
	s.issued++
	return Token{Session: sessionID, View: view, Seq: s.issued}
}

// Commit stores data as the view's snapshot if tok is newer than the committed one.
// It reports whether the snapshot was stored.
func (t *Tracker) Commit(tok Token, data any) bool {
	t.mu.Lock()
	s := t.slot(tok.Session, tok.View)
	if tok.Seq <= s.committed {
		t.mu.Unlock()
		if t.observer != nil {
			t.observer.ObserveStale(tok.View)
		}
		return false
	}
	s.committed = tok.Seq
	s.data = data
	s.at = t.now()
	t.mu.Unlock()
	return true
}

// Last returns the committed snapshot of a view
func (t *Tracker) Last(sessionID, view string) (any, time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	views, ok := t.sessions[sessionID]
	if !ok {
		return nil, time.Time{}, false
	}
	s, ok := views[view]
	if !ok || s.committed == 0 {
		return nil, time.Time{}, false
	}
	return s.data, s.at, true
}

// Forget drops every snapshot of a session
func (t *Tracker) Forget(sessionID string) {
	t.mu.Lock()
	delete(t.sessions, sessionID)
	t.mu.Unlock()
}

// Sweep drops the snapshots of sessions for which alive reports false
// and returns how many sessions were dropped.
func (t *Tracker) Sweep(ctx context.Context, alive func(ctx context.Context, sessionID string) bool) int {
	t.mu.Lock()
	ids := make([]string, 0, len(t.sessions))
	for id := range t.sessions {
		ids = append(ids, id)
	}
	t.mu.Unlock()

	removed := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		if alive(ctx, id) {
			continue
		}
		t.Forget(id)
		removed++
	}
	return removed
}

// Fetch runs load under a fresh token. On success the result is committed and
// returned. On failure the last committed snapshot is returned with the error, so
// the caller can keep showing it.
func Fetch[T any](t *Tracker, sessionID, view string, load func() (T, error)) (T, bool, error) {
	tok := t.Begin(sessionID, view)
	data, err := load()
	if err == nil {
		if !t.Commit(tok, data) {
			if last, _, ok := t.Last(sessionID, view); ok {
				if v, ok := last.(T); ok {
					return v, true, nil
				}
			}
		}
		return data, true, nil
	}

	var zero T
	last, _, ok := t.Last(sessionID, view)
	if !ok {
		return zero, false, err
	}
	v, ok := last.(T)
	if !ok {
		return zero, false, err
	}
	return v, true, err
}
