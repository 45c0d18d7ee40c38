package hub

import (
	"sync"

	"github.com/samber/lo"
)

// Tracker owns the process-local presence set: user identifier -> connection
// handle IDs. A user is online iff they have at least one handle. The set is
// never persisted; it starts empty and is rebuilt from zero on restart.
type Tracker struct {
	mu      sync.RWMutex
	users   map[string]map[string]struct{}
	handles map[string]string
}

func NewTracker() *Tracker {
	return &Tracker{
		users:   make(map[string]map[string]struct{}),
		handles: make(map[string]string),
	}
}

// Connect registers a handle under a user. Returns true when this is the
// user's first handle, i.e. the user just came online. Additional handles
// (multi-tab) do not duplicate the presence entry.
func (t *Tracker) Connect(userID, handleID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.handles[handleID] = userID
	set, ok := t.users[userID]
	if !ok {
		set = make(map[string]struct{})
		t.users[userID] = set
	}
	set[handleID] = struct{}{}
	return len(set) == 1
}

// Disconnect removes a handle. Returns the owning user and whether that was
// the user's last handle, i.e. the user just went offline. Unknown handles
// return ("", false).
func (t *Tracker) Disconnect(handleID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	userID, ok := t.handles[handleID]
	if !ok {
		return "", false
	}
	delete(t.handles, handleID)

	set := t.users[userID]
	delete(set, handleID)
	if len(set) == 0 {
		delete(t.users, userID)
		return userID, true
	}
	return userID, false
}

// Online returns the identifiers of currently online users.
func (t *Tracker) Online() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return lo.Keys(t.users)
}

func (t *Tracker) IsOnline(userID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.users[userID]
	return ok
}

// Handles returns the handle IDs registered for a user.
func (t *Tracker) Handles(userID string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return lo.Keys(t.users[userID])
}

// CountUsers returns the number of online users.
func (t *Tracker) CountUsers() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.users)
}

// CountHandles returns the total number of open handles.
func (t *Tracker) CountHandles() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.handles)
}
