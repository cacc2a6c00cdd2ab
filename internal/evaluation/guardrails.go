package evaluation

import (
	"errors"
	"fmt"
)

// GuardrailConfig sets the minimum quality an evaluation run must reach.
type GuardrailConfig struct {
	MinTop1Accuracy float64
	MinMRRAtK       float64
	MaxFailed       int
}

type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	if config.MinTop1Accuracy < 0 {
		config.MinTop1Accuracy = 0
	}
	if config.MinMRRAtK < 0 {
		config.MinMRRAtK = 0
	}
	return &Guardrails{config: config}
}

// Check returns every threshold the summary falls short of, joined.
func (g *Guardrails) Check(s *EvalSummary) error {
	if s == nil || s.TotalCases == 0 {
		return errors.New("no golden cases were evaluated")
	}

	var errs []error
	if s.Top1Accuracy < g.config.MinTop1Accuracy {
		errs = append(errs, fmt.Errorf("top-1 accuracy %.3f below %.3f", s.Top1Accuracy, g.config.MinTop1Accuracy))
	}
	if s.AvgMRRAtK < g.config.MinMRRAtK {
		errs = append(errs, fmt.Errorf("MRR@%d %.3f below %.3f", s.K, s.AvgMRRAtK, g.config.MinMRRAtK))
	}
	if s.Failed > g.config.MaxFailed {
		errs = append(errs, fmt.Errorf("%d cases failed, at most %d allowed", s.Failed, g.config.MaxFailed))
	}
	return errors.Join(errs...)
}
