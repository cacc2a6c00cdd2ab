package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisense/backend/internal/adapters/reference"
	"github.com/medisense/backend/internal/application/services"
	"github.com/medisense/backend/internal/domain/entities"
)

func providerIDs(ranked []entities.RankedProvider) []int {
	ids := make([]int, len(ranked))
	for i, rp := range ranked {
		ids[i] = rp.ID
	}
	return ids
}

func TestRankingService_RankProviders(t *testing.T) {
	ctx := context.Background()
	svc := services.NewRankingService(reference.NewProviderDirectory())
	sathuvachari := &entities.Location{Latitude: 12.9350, Longitude: 79.1530, Label: "Sathuvachari, Vellore"}

	t.Run("dengue providers nearest first", func(t *testing.T) {
		ranked, err := svc.RankProviders(ctx, entities.SpecialtyInfectiousDisease, sathuvachari)
		require.NoError(t, err)

		assert.Equal(t, []int{12, 6, 1, 7, 2, 11, 3}, providerIDs(ranked))
		require.NotNil(t, ranked[0].DistanceKm)
		assert.InDelta(t, 0.53, *ranked[0].DistanceKm, 0.05)
		for i := 1; i < len(ranked); i++ {
			assert.LessOrEqual(t, *ranked[i-1].DistanceKm, *ranked[i].DistanceKm)
		}
	})

	t.Run("every result offers the specialty", func(t *testing.T) {
		for _, sp := range entities.AllSpecialties() {
			ranked, err := svc.RankProviders(ctx, sp, sathuvachari)
			require.NoError(t, err)
			for _, rp := range ranked {
				assert.True(t, rp.HasSpecialty(sp), "%s lacks %s", rp.Name, sp)
			}
		}
	})

	t.Run("no origin keeps directory order", func(t *testing.T) {
		ranked, err := svc.RankProviders(ctx, entities.SpecialtyInfectiousDisease, nil)
		require.NoError(t, err)

		ids := providerIDs(ranked)
		assert.IsIncreasing(t, ids)
		for _, rp := range ranked {
			assert.Nil(t, rp.DistanceKm)
		}
	})
}

func TestRank(t *testing.T) {
	origin := &entities.Location{Latitude: 12.9, Longitude: 79.1}
	near := entities.Provider{ID: 1, Specialties: []entities.Specialty{entities.SpecialtyNeurology}, Location: entities.Location{Latitude: 12.91, Longitude: 79.1}}
	far := entities.Provider{ID: 2, Specialties: []entities.Specialty{entities.SpecialtyNeurology}, Location: entities.Location{Latitude: 13.2, Longitude: 79.1}}
	twin := entities.Provider{ID: 3, Specialties: []entities.Specialty{entities.SpecialtyNeurology}, Location: near.Location}
	other := entities.Provider{ID: 4, Specialties: []entities.Specialty{entities.SpecialtyCardiology}, Location: near.Location}

	t.Run("equal distances keep input order", func(t *testing.T) {
		ranked := services.Rank([]entities.Provider{far, near, other, twin}, entities.SpecialtyNeurology, origin)
		assert.Equal(t, []int{1, 3, 2}, providerIDs(ranked))
	})

	t.Run("no matches", func(t *testing.T) {
		ranked := services.Rank([]entities.Provider{near, far}, entities.SpecialtyRheumatology, origin)
		assert.Empty(t, ranked)
	})
}
