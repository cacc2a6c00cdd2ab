package evaluation

import (
	"context"
	"time"

	"github.com/medisense/backend/internal/domain/entities"
)

// DefaultK is the cut-off used for Recall@K and MRR@K.
const DefaultK = 3

// ConditionRanker ranks the whole condition catalog for a selection.
type ConditionRanker interface {
	Rank(ctx context.Context, selection entities.SymptomSelection) ([]entities.ScoredCondition, error)
}

// Runner runs evaluation across a set of golden cases.
type Runner struct {
	ranker ConditionRanker
	k      int
}

func NewRunner(ranker ConditionRanker, k int) *Runner {
	if k <= 0 {
		k = DefaultK
	}
	return &Runner{ranker: ranker, k: k}
}

// Run scores every case. Cases whose symptoms do not parse or whose ranking
// fails are counted in Failed and excluded from the averages.
func (r *Runner) Run(ctx context.Context, cases []GoldenCase) (*EvalSummary, error) {
	summary := &EvalSummary{
		K:            r.k,
		ByDifficulty: make(map[Difficulty]*DifficultySummary),
	}

	for _, gc := range cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, ok := r.evaluate(ctx, gc)
		if !ok {
			summary.Failed++
			continue
		}
		r.updateSummary(summary, result)
	}

	r.finalizeSummary(summary)
	return summary, nil
}

func (r *Runner) evaluate(ctx context.Context, gc GoldenCase) (EvalResult, bool) {
	selection, err := entities.ParseSymptoms(gc.Symptoms)
	if err != nil {
		return EvalResult{}, false
	}

	start := time.Now()
	scored, err := r.ranker.Rank(ctx, selection)
	latency := time.Since(start)
	if err != nil || len(scored) == 0 {
		return EvalResult{}, false
	}

	names := make([]string, len(scored))
	for i, sc := range scored {
		names[i] = sc.Condition.Name
	}
	relevant := []string{gc.ExpectedCondition}

	return EvalResult{
		CaseID:     gc.ID,
		Expected:   gc.ExpectedCondition,
		Predicted:  names[0],
		Score:      scored[0].Score,
		Difficulty: gc.Difficulty,
		Top1:       HitAt1(gc.ExpectedCondition, names),
		RecallAtK:  RecallAtK(relevant, names, r.k),
		MRRAtK:     MRRAtK(relevant, names, r.k),
		Latency:    latency,
	}, true
}

func (r *Runner) updateSummary(s *EvalSummary, res EvalResult) {
	s.TotalCases++
	if res.Top1 {
		s.Top1Accuracy++
	} else {
		s.Misses = append(s.Misses, res)
	}
	s.AvgRecallAtK += res.RecallAtK
	s.AvgMRRAtK += res.MRRAtK
	s.AvgLatency += res.Latency

	ds, ok := s.ByDifficulty[res.Difficulty]
	if !ok {
		ds = &DifficultySummary{}
		s.ByDifficulty[res.Difficulty] = ds
	}
	ds.Count++
	if res.Top1 {
		ds.Top1Accuracy++
	}
	ds.AvgMRRAtK += res.MRRAtK
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	if s.TotalCases > 0 {
		n := float64(s.TotalCases)
		s.Top1Accuracy /= n
		s.AvgRecallAtK /= n
		s.AvgMRRAtK /= n
		s.AvgLatency /= time.Duration(s.TotalCases)
	}

	for _, ds := range s.ByDifficulty {
		if ds.Count > 0 {
			n := float64(ds.Count)
			ds.Top1Accuracy /= n
			ds.AvgMRRAtK /= n
		}
	}
}
