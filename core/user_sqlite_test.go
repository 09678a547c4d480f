package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteUserStore(t *testing.T) {
	t.Run("create and get user with roles", func(t *testing.T) {
		f := NewAuthFixture(t)
		defer f.tearDown()

		err := f.userStore.CreateUser(f.ctx, "alice", "password", RoleAdmin, RoleUser)
		require.Nil(t, err)

		user, err := f.userStore.GetUserByUsername(f.ctx, "alice")
		require.Nil(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		assert.ElementsMatch(t, []string{RoleAdmin, RoleUser}, user.Roles)
		assert.True(t, user.HasRole(RoleAdmin))
		assert.False(t, user.HasRole("LIBRARIAN"))
	})

	t.Run("get missing user", func(t *testing.T) {
		f := NewAuthFixture(t)
		defer f.tearDown()

		user, err := f.userStore.GetUserByUsername(f.ctx, "nobody")
		require.Nil(t, err)
		assert.Nil(t, user)
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := NewAuthFixture(t)
		defer f.tearDown()
		seedUsers(f.ctx, f.t, f.userStore, alice)

		err := f.userStore.CreateUser(f.ctx, alice.username, "other")
		assert.ErrorIs(t, err, ErrConflictedUser)
	})

	t.Run("unknown role", func(t *testing.T) {
		f := NewAuthFixture(t)
		defer f.tearDown()

		err := f.userStore.CreateUser(f.ctx, "carol", "password", "SUPERUSER")
		assert.ErrorIs(t, err, ErrUnknownRole)

		// the failed grant must not leave a partial user behind
		user, err := f.userStore.GetUserByUsername(f.ctx, "carol")
		require.Nil(t, err)
		assert.Nil(t, user)
	})

	t.Run("compare password", func(t *testing.T) {
		f := NewAuthFixture(t)
		defer f.tearDown()
		seedUsers(f.ctx, f.t, f.userStore, alice)

		ok, err := f.userStore.ComparePassword(f.ctx, alice.username, alice.password)
		require.Nil(t, err)
		assert.True(t, ok)

		ok, err = f.userStore.ComparePassword(f.ctx, alice.username, "wrong")
		require.Nil(t, err)
		assert.False(t, ok)

		ok, err = f.userStore.ComparePassword(f.ctx, "nobody", "password")
		require.Nil(t, err)
		assert.False(t, ok)
	})

	t.Run("has admin", func(t *testing.T) {
		f := NewAuthFixture(t)
		defer f.tearDown()

		has, err := f.userStore.HasAdmin(f.ctx)
		require.Nil(t, err)
		assert.False(t, has)

		seedUsers(f.ctx, f.t, f.userStore, alice)

		has, err = f.userStore.HasAdmin(f.ctx)
		require.Nil(t, err)
		assert.True(t, has)
	})
}
