package chat

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"dmchat/internal/app/user"
	"dmchat/internal/pkg/errs"
)

func TestRegistry_Add_Trims_And_Stores(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := uuid.NewString()

	// When a connection claims a padded username
	u, err := registry.Add(connID, "  alice \t")

	// Then the stored user carries the trimmed name
	req.Nil(err)
	req.Equal(user.User{ID: connID, Username: "alice"}, u)
	req.Equal([]user.User{u}, registry.ListAll())

	found, ok := registry.FindByConnectionID(connID)
	req.True(ok)
	req.Equal(u, found)

	found, ok = registry.FindByUsername(" alice")
	req.True(ok)
	req.Equal(u, found)
}

func TestRegistry_Add_Rejects_Taken_Username(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	first := uuid.NewString()
	second := uuid.NewString()

	// Given alice is connected
	_, err := registry.Add(first, "alice")
	req.Nil(err)

	// When another connection claims the same trimmed name
	_, err = registry.Add(second, " alice ")

	// Then the claim is rejected and the registry is unchanged
	req.NotNil(err)
	req.Equal(errs.ErrUsernameTaken, err.Code)
	req.Contains(err.Message, "alice")
	req.Equal(1, registry.Len())
	_, ok := registry.FindByConnectionID(second)
	req.False(ok)
}

func TestRegistry_Add_Is_Case_Sensitive(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	_, err := registry.Add(uuid.NewString(), "alice")
	req.Nil(err)
	_, err = registry.Add(uuid.NewString(), "Alice")
	req.Nil(err)

	req.Equal(2, registry.Len())
}

func TestRegistry_Add_Rejects_Empty_Username(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := registry.Add(uuid.NewString(), raw)
		req.NotNil(err)
		req.Equal(errs.ErrInvalidUsername, err.Code)
	}
	req.Zero(registry.Len())
}

func TestRegistry_Add_Rejects_Second_Claim_From_Same_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := uuid.NewString()

	_, err := registry.Add(connID, "alice")
	req.Nil(err)

	_, err = registry.Add(connID, "bob")

	req.NotNil(err)
	req.Equal(errs.ErrAlreadyIdentified, err.Code)
	req.Contains(err.Message, "alice")
	_, ok := registry.FindByUsername("bob")
	req.False(ok)
}

func TestRegistry_ListAll_Keeps_Join_Order(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	names := []string{"carol", "alice", "bob", "dave"}
	ids := make([]string, len(names))

	for i, name := range names {
		ids[i] = uuid.NewString()
		_, err := registry.Add(ids[i], name)
		req.Nil(err)
	}

	// When a user in the middle leaves
	_, removed := registry.Remove(ids[1])
	req.True(removed)

	// Then the remaining order is preserved
	var listed []string
	for _, u := range registry.ListAll() {
		listed = append(listed, u.Username)
	}
	req.Equal([]string{"carol", "bob", "dave"}, listed)
}

func TestRegistry_ListAll_Returns_A_Copy(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	_, err := registry.Add(uuid.NewString(), "alice")
	req.Nil(err)

	listed := registry.ListAll()
	listed[0].Username = "mallory"

	req.Equal("alice", registry.ListAll()[0].Username)
}

func TestRegistry_Remove_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := uuid.NewString()
	_, err := registry.Add(connID, "alice")
	req.Nil(err)

	departed, removed := registry.Remove(connID)
	req.True(removed)
	req.Equal("alice", departed.Username)

	// Removing again, or removing an unknown ID, is a no-op
	_, removed = registry.Remove(connID)
	req.False(removed)
	_, removed = registry.Remove(uuid.NewString())
	req.False(removed)

	// And the username is free again
	_, err = registry.Add(uuid.NewString(), "alice")
	req.Nil(err)
}

func TestRegistry_Random_Sequences_Keep_Usernames_Unique(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	rng := rand.New(rand.NewSource(42))
	names := []string{"alice", " alice", "bob", "bob ", "carol", "dave"}
	conns := make([]string, 12)
	for i := range conns {
		conns[i] = fmt.Sprintf("conn-%d", i)
	}

	for step := 0; step < 2000; step++ {
		connID := conns[rng.Intn(len(conns))]
		if rng.Intn(3) == 0 {
			registry.Remove(connID)
		} else {
			before := registry.ListAll()
			_, err := registry.Add(connID, names[rng.Intn(len(names))])
			if err != nil {
				req.Equal(before, registry.ListAll())
			}
		}

		seen := make(map[string]string)
		for _, u := range registry.ListAll() {
			req.Equal(strings.TrimSpace(u.Username), u.Username)
			owner, dup := seen[u.Username]
			req.False(dup, "username %q held by %s and %s", u.Username, owner, u.ID)
			seen[u.Username] = u.ID
		}
	}
}
