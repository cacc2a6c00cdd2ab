package evaluation

import "time"

// Difficulty grades how ambiguous a golden case is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"   // exact or near-exact symptom set
	DifficultyMedium Difficulty = "medium" // partial set with a clear winner
	DifficultyHard   Difficulty = "hard"   // overlapping conditions, ties
)

// IsValid checks if the difficulty value is one of the defined constants.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// GoldenCase is a labeled symptom selection with the condition a clinician expects.
type GoldenCase struct {
	ID                string     `json:"id"`
	Symptoms          []string   `json:"symptoms"`
	ExpectedCondition string     `json:"expected_condition"`
	Difficulty        Difficulty `json:"difficulty"`
}

// EvalResult holds the evaluation outcome for a single case.
type EvalResult struct {
	CaseID     string        `json:"case_id"`
	Expected   string        `json:"expected"`
	Predicted  string        `json:"predicted"`
	Score      float64       `json:"score"`
	Difficulty Difficulty    `json:"difficulty"`
	Top1       bool          `json:"top1"`
	RecallAtK  float64       `json:"recall_at_k"`
	MRRAtK     float64       `json:"mrr_at_k"`
	Latency    time.Duration `json:"latency"`
}

// EvalSummary holds aggregate metrics across all golden cases.
type EvalSummary struct {
	K            int                              `json:"k"`
	TotalCases   int                              `json:"total_cases"`
	Failed       int                              `json:"failed"`
	Top1Accuracy float64                          `json:"top1_accuracy"`
	AvgRecallAtK float64                          `json:"avg_recall_at_k"`
	AvgMRRAtK    float64                          `json:"avg_mrr_at_k"`
	AvgLatency   time.Duration                    `json:"avg_latency"`
	ByDifficulty map[Difficulty]*DifficultySummary `json:"by_difficulty"`
	Misses       []EvalResult                     `json:"misses,omitempty"`
}

// DifficultySummary holds metrics grouped by difficulty.
type DifficultySummary struct {
	Count        int     `json:"count"`
	Top1Accuracy float64 `json:"top1_accuracy"`
	AvgMRRAtK    float64 `json:"avg_mrr_at_k"`
}
