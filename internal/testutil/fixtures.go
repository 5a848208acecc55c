package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	memberstore "github.com/dalemusser/memberhub/internal/app/store/members"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Date returns midnight UTC for the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Fixtures provides helper methods for creating test members in any Store.
type Fixtures struct {
	store memberstore.Store
	t     *testing.T
}

// NewFixtures creates a new Fixtures instance for the given store.
func NewFixtures(t *testing.T, store memberstore.Store) *Fixtures {
	t.Helper()
	return &Fixtures{store: store, t: t}
}

// Store returns the underlying store for direct access in tests.
func (f *Fixtures) Store() memberstore.Store {
	return f.store
}

// CreateMember inserts a member with the given name and interests.
// Returns the stored member with its generated ID.
func (f *Fixtures) CreateMember(ctx context.Context, name string, interests ...string) models.Member {
	f.t.Helper()

	m, err := f.store.Insert(ctx, models.Member{
		Name:         name,
		DateOfBirth:  Date(1990, time.January, 1),
		MemberNumber: 42,
		Interests:    interests,
	})
	if err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return m
}
