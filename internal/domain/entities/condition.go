package entities

// Condition is a catalog entry with its defining symptom set
type Condition struct {
	Name        string    `json:"name"`
	Symptoms    []Symptom `json:"symptoms"`
	Specialty   Specialty `json:"specialty"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
}

// Diagnosis is the best-matching condition for a selection
type Diagnosis struct {
	Condition       Condition `json:"condition"`
	MatchedSymptoms []Symptom `json:"matched_symptoms"`
	Score           float64   `json:"score"`
}

// ScoredCondition is one row of a full catalog ranking
type ScoredCondition struct {
	Condition       Condition `json:"condition"`
	MatchedSymptoms []Symptom `json:"matched_symptoms"`
	Score           float64   `json:"score"`
}
