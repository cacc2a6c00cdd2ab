package services

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/repositories"
	"github.com/medisense/backend/internal/infrastructure/observability"
	apperrors "github.com/medisense/backend/pkg/errors"
)

// InferenceService maps a symptom selection onto the condition catalog
type InferenceService struct {
	catalog repositories.ConditionRepository
}

// NewInferenceService creates a new inference service
func NewInferenceService(catalog repositories.ConditionRepository) *InferenceService {
	return &InferenceService{catalog: catalog}
}

// Infer returns the best-scoring condition for a non-empty selection.
// Ties go to the condition listed first in the catalog.
func (s *InferenceService) Infer(ctx context.Context, selection entities.SymptomSelection) (*entities.Diagnosis, error) {
	ctx, span := observability.StartSpan(ctx, "InferenceService.Infer")
	defer span.End()

	ranked, err := s.Rank(ctx, selection)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	best := ranked[0]
	observability.SetSpanAttributes(span,
		attribute.String("diagnosis.condition", best.Condition.Name),
		attribute.Float64("diagnosis.score", best.Score),
		attribute.Int("diagnosis.selected", len(selection)),
	)

	return &entities.Diagnosis{
		Condition:       best.Condition,
		MatchedSymptoms: best.MatchedSymptoms,
		Score:           best.Score,
	}, nil
}

// Rank scores every catalog condition against the selection, best first.
// The sort is stable so equal scores keep catalog order.
func (s *InferenceService) Rank(ctx context.Context, selection entities.SymptomSelection) ([]entities.ScoredCondition, error) {
	if len(selection) == 0 {
		return nil, apperrors.NewFieldError(map[string]string{
			"symptoms": "Select at least one symptom.",
		})
	}
	for _, sym := range selection {
		if !sym.IsValid() {
			return nil, apperrors.NewInvalidInputError("unknown symptom: " + string(sym))
		}
	}

	conditions, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load condition catalog: %w", err)
	}
	if len(conditions) == 0 {
		return nil, apperrors.NewInternalError("condition catalog is empty", nil)
	}

	scored := make([]entities.ScoredCondition, len(conditions))
	for i, c := range conditions {
		score, matched := ScoreCondition(c, selection)
		scored[i] = entities.ScoredCondition{
			Condition:       c,
			MatchedSymptoms: matched,
			Score:           score,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored, nil
}

// ScoreCondition computes |required ∩ selected| / max(|required|, |selected|)
// and the matched symptoms in the condition's own order. Selecting extra
// symptoms lowers the score, so it is not a Jaccard index.
func ScoreCondition(c entities.Condition, selection entities.SymptomSelection) (float64, []entities.Symptom) {
	selected := selection.Set()
	matched := make([]entities.Symptom, 0, len(c.Symptoms))
	for _, sym := range c.Symptoms {
		if _, ok := selected[sym]; ok {
			matched = append(matched, sym)
		}
	}

	denom := max(len(c.Symptoms), len(selected))
	if denom == 0 {
		return 0, matched
	}
	return float64(len(matched)) / float64(denom), matched
}
