package sessions

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/providers"
	apperrors "github.com/medisense/backend/pkg/errors"
)

// MockCacheProvider is a mock implementation of providers.CacheProvider
type MockCacheProvider struct {
	mock.Mock
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func sampleSession() *entities.Session {
	s := entities.NewSession()
	s.State = entities.StateSymptoms
	s.Profile = entities.PatientProfile{Name: "Priya Menon", Mobile: "8765432190", Age: 27, Sex: "Female"}
	s.Location = &entities.Location{Latitude: 12.9155, Longitude: 79.1338, Label: "Kosapet, Vellore", Source: entities.LocationSourceLookup}
	s.Selection = entities.SymptomSelection{entities.SymptomHeadache, entities.SymptomNausea}
	return s
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("round trip", func(t *testing.T) {
		s := sampleSession()
		require.NoError(t, store.Save(ctx, s))

		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.State, got.State)
		assert.Equal(t, s.Selection, got.Selection)
		assert.Equal(t, s.Location.Label, got.Location.Label)
	})

	t.Run("returned sessions are independent copies", func(t *testing.T) {
		s := sampleSession()
		require.NoError(t, store.Save(ctx, s))

		got, _ := store.Get(ctx, s.ID)
		got.Selection.Add(entities.SymptomFever)

		again, _ := store.Get(ctx, s.ID)
		assert.Len(t, again.Selection, 2)
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("delete idle", func(t *testing.T) {
		local := NewMemoryStore()
		old := sampleSession()
		old.UpdatedAt = time.Now().Add(-3 * time.Hour)
		fresh := sampleSession()
		require.NoError(t, local.Save(ctx, old))
		require.NoError(t, local.Save(ctx, fresh))

		removed, err := local.DeleteIdle(ctx, time.Now().Add(-2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		_, err = local.Get(ctx, old.ID)
		assert.Error(t, err)
		_, err = local.Get(ctx, fresh.ID)
		assert.NoError(t, err)
	})
}

func TestCacheStore(t *testing.T) {
	ctx := context.Background()
	ttl := 2 * time.Hour

	t.Run("save writes json under the session key with ttl", func(t *testing.T) {
		cache := new(MockCacheProvider)
		s := sampleSession()
		cache.On("Set", ctx, "session:"+s.ID, mock.AnythingOfType("[]uint8"), ttl).Return(nil)

		store := NewCacheStore(cache, ttl)
		require.NoError(t, store.Save(ctx, s))
		cache.AssertExpectations(t)
	})

	t.Run("get decodes stored json", func(t *testing.T) {
		cache := new(MockCacheProvider)
		s := sampleSession()
		data, err := encodeSession(s)
		require.NoError(t, err)
		cache.On("Get", ctx, "session:"+s.ID).Return(data, nil)

		store := NewCacheStore(cache, ttl)
		got, err := store.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.Profile, got.Profile)
		assert.Equal(t, entities.StateSymptoms, got.State)
	})

	t.Run("cache miss maps to not found", func(t *testing.T) {
		cache := new(MockCacheProvider)
		cache.On("Get", ctx, "session:gone").Return(nil, fmt.Errorf("%w: session:gone", providers.ErrCacheMiss))

		store := NewCacheStore(cache, ttl)
		_, err := store.Get(ctx, "gone")
		assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("backend failure is wrapped", func(t *testing.T) {
		cache := new(MockCacheProvider)
		boom := errors.New("connection refused")
		cache.On("Get", ctx, "session:x").Return(nil, boom)

		store := NewCacheStore(cache, ttl)
		_, err := store.Get(ctx, "x")
		assert.ErrorIs(t, err, boom)
		assert.False(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("delete idle relies on ttl", func(t *testing.T) {
		store := NewCacheStore(new(MockCacheProvider), ttl)
		n, err := store.DeleteIdle(ctx, time.Now())
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
