package services

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/repositories"
	"github.com/medisense/backend/internal/infrastructure/observability"
	"github.com/medisense/backend/pkg/geo"
)

// unknownDistanceKm sorts providers without a distance after every real one
const unknownDistanceKm = 999.0

// RankingService filters the provider directory by specialty and orders it by distance
type RankingService struct {
	directory repositories.ProviderRepository
}

// NewRankingService creates a new ranking service
func NewRankingService(directory repositories.ProviderRepository) *RankingService {
	return &RankingService{directory: directory}
}

// RankProviders reads the directory and ranks it for specialty around origin.
// A nil origin yields providers in directory order with no distances.
func (s *RankingService) RankProviders(ctx context.Context, specialty entities.Specialty, origin *entities.Location) ([]entities.RankedProvider, error) {
	ctx, span := observability.StartSpan(ctx, "RankingService.RankProviders")
	defer span.End()

	providers, err := s.directory.List(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("failed to load provider directory: %w", err)
	}

	ranked := Rank(providers, specialty, origin)
	observability.SetSpanAttributes(span,
		attribute.String("ranking.specialty", string(specialty)),
		attribute.Bool("ranking.has_origin", origin != nil),
		attribute.Int("ranking.results", len(ranked)),
	)
	return ranked, nil
}

// Rank keeps providers offering specialty, attaches their distance from
// origin and sorts nearest first. Equal distances keep input order.
func Rank(providers []entities.Provider, specialty entities.Specialty, origin *entities.Location) []entities.RankedProvider {
	ranked := make([]entities.RankedProvider, 0, len(providers))
	for _, p := range providers {
		if !p.HasSpecialty(specialty) {
			continue
		}
		rp := entities.RankedProvider{Provider: p}
		if origin != nil {
			d := geo.DistanceKm(origin.Point(), p.Location.Point())
			rp.DistanceKm = &d
		}
		ranked = append(ranked, rp)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return sortDistance(ranked[i]) < sortDistance(ranked[j])
	})
	return ranked
}

func sortDistance(rp entities.RankedProvider) float64 {
	if rp.DistanceKm == nil {
		return unknownDistanceKm
	}
	return *rp.DistanceKm
}
