package chat

import (
	"slices"
	"strings"
	"sync"

	"dmchat/internal/app/user"
	"dmchat/internal/pkg/errs"
)

// Registry is the single owner of User records. It keeps users in join order and
// guarantees at most one user per connection ID and per trimmed username.
type Registry struct {
	// mu guards users and the two indexes; the hub mutates, HTTP handlers read.
	mu sync.RWMutex

	// users in join order.
	users []user.User

	// byConn maps connection ID to its user.
	byConn map[string]user.User

	// byName maps trimmed username to the owning connection ID.
	byName map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byConn: make(map[string]user.User),
		byName: make(map[string]string),
	}
}

// Add trims rawUsername and stores a new user for connID.
// Usernames are compared exactly after trimming, so "Alice" and "alice" may coexist.
func (r *Registry) Add(connID string, rawUsername string) (user.User, *errs.CustomError) {
	username := strings.TrimSpace(rawUsername)
	if username == "" {
		return user.User{}, errs.NewError(errs.ErrInvalidUsername)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byConn[connID]; ok {
		return user.User{}, errs.NewError(errs.ErrAlreadyIdentified, existing.Username)
	}

	if _, taken := r.byName[username]; taken {
		return user.User{}, errs.NewError(errs.ErrUsernameTaken, username)
	}

	u := user.User{ID: connID, Username: username}
	r.users = append(r.users, u)
	r.byConn[connID] = u
	r.byName[username] = connID

	return u, nil
}

// Remove deletes the user owned by connID. Removing an absent ID is a no-op;
// the boolean reports whether a user was removed.
func (r *Registry) Remove(connID string) (user.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byConn[connID]
	if !ok {
		return user.User{}, false
	}

	delete(r.byConn, connID)
	delete(r.byName, u.Username)
	r.users = slices.DeleteFunc(r.users, func(candidate user.User) bool {
		return candidate.ID == connID
	})

	return u, true
}

// FindByConnectionID returns the user owned by connID.
func (r *Registry) FindByConnectionID(connID string) (user.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byConn[connID]
	return u, ok
}

// FindByUsername returns the user holding the trimmed username.
func (r *Registry) FindByUsername(username string) (user.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connID, ok := r.byName[strings.TrimSpace(username)]
	if !ok {
		return user.User{}, false
	}
	return r.byConn[connID], true
}

// ListAll returns a copy of the active users in join order.
func (r *Registry) ListAll() []user.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, len(r.users))
	copy(out, r.users)
	return out
}

// Len returns the number of active users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users)
}
