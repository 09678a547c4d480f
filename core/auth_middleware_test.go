package core

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmarval/bookstore-inventory/pkg/router"
)

func newGatedRouter(users UserStore) *router.Router {
	r := router.New()
	r.Use(BearerMiddleware(users, secret))
	r.Use(RequireAuth())

	r.Get("/resource", func(w http.ResponseWriter, r *http.Request) error {
		id := IdentityFromRequest(r)
		w.Write([]byte(id.Username))
		return nil
	})

	admin := r.With(RequireRole(RoleAdmin))
	admin.Delete("/resource", func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})

	return r
}

func doRequest(r *router.Router, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBearerMiddleware(t *testing.T) {
	f := NewAuthFixture(t)
	defer f.tearDown()
	seedUsers(f.ctx, f.t, f.userStore,
		alice,
		seedUser{username: "bob", password: "password", roles: []string{RoleUser}},
	)

	r := newGatedRouter(f.userStore)

	aliceToken, _, err := NewToken("alice", time.Hour, secret)
	require.Nil(t, err)
	bobToken, _, err := NewToken("bob", time.Hour, secret)
	require.Nil(t, err)

	t.Run("no credential on protected route", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/resource", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"status":401,"error_reason":"Not authenticated"}`, rec.Body.String())
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/resource", aliceToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})

	t.Run("expired token", func(t *testing.T) {
		expired, _, err := NewToken("alice", -time.Minute, secret)
		require.Nil(t, err)

		rec := doRequest(r, http.MethodGet, "/resource", expired)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"status":401,"error_reason":"Expired token"}`, rec.Body.String())
	})

	t.Run("garbled token", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/resource", "garbage")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"status":401,"error_reason":"Invalid token"}`, rec.Body.String())
	})

	t.Run("wrongly signed token", func(t *testing.T) {
		forged, _, err := NewToken("alice", time.Hour, []byte("other secret"))
		require.Nil(t, err)

		rec := doRequest(r, http.MethodGet, "/resource", forged)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"status":401,"error_reason":"Invalid token"}`, rec.Body.String())
	})

	t.Run("missing bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"status":401,"error_reason":"Invalid token"}`, rec.Body.String())
	})

	t.Run("token subject no longer exists", func(t *testing.T) {
		ghostToken, _, err := NewToken("ghost", time.Hour, secret)
		require.Nil(t, err)

		rec := doRequest(r, http.MethodGet, "/resource", ghostToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"status":401,"error_reason":"Not authenticated"}`, rec.Body.String())
	})

	t.Run("missing role is denied", func(t *testing.T) {
		rec := doRequest(r, http.MethodDelete, "/resource", bobToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"status":403,"error_reason":"Unauthorized to view this resource"}`, rec.Body.String())
	})

	t.Run("admin role is allowed", func(t *testing.T) {
		rec := doRequest(r, http.MethodDelete, "/resource", aliceToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
