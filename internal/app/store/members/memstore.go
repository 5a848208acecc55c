// internal/app/store/members/memstore.go
package memberstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps members in process memory. It backs the "memory"
// storage mode and handler tests that run without MongoDB.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[primitive.ObjectID]models.Member
	order []primitive.ObjectID
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{byID: make(map[primitive.ObjectID]models.Member)}
}

func (s *MemoryStore) Insert(_ context.Context, m models.Member) (models.Member, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.NameCI = text.Fold(m.Name)
	m.Normalize()
	m.Interests = slices.Clone(m.Interests)
	m.CreatedAt = now
	m.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[m.ID] = m
	s.order = append(s.order, m.ID)
	return clone(m), nil
}

func (s *MemoryStore) GetByID(_ context.Context, id primitive.ObjectID) (models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byID[id]
	if !ok {
		return models.Member{}, ErrNotFound
	}
	return clone(m), nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Member, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.byID[id]))
	}
	return out, nil
}

func (s *MemoryStore) UpdateByID(_ context.Context, id primitive.ObjectID, patch models.MemberPatch) (models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return models.Member{}, ErrNotFound
	}
	if patch.IsEmpty() {
		return clone(m), nil
	}
	if patch.Name != nil {
		m.Name = *patch.Name
		m.NameCI = text.Fold(*patch.Name)
	}
	if patch.DateOfBirth != nil {
		m.DateOfBirth = patch.DateOfBirth.UTC()
	}
	if patch.MemberNumber != nil {
		m.MemberNumber = *patch.MemberNumber
	}
	if patch.Interests != nil {
		m.Interests = slices.Clone(*patch.Interests)
	}
	m.Normalize()
	m.UpdatedAt = time.Now().UTC()
	s.byID[id] = m
	return clone(m), nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id primitive.ObjectID) (models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return models.Member{}, ErrNotFound
	}
	delete(s.byID, id)
	s.order = slices.DeleteFunc(s.order, func(x primitive.ObjectID) bool { return x == id })
	return m, nil
}

func clone(m models.Member) models.Member {
	m.Interests = slices.Clone(m.Interests)
	if m.Interests == nil {
		m.Interests = []string{}
	}
	return m
}
