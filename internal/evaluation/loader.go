package evaluation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/medisense/backend/internal/domain/entities"
)

// LoadGoldenCases reads and parses a golden case set from a JSON file.
func LoadGoldenCases(path string) ([]GoldenCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden cases file: %w", err)
	}

	var cases []GoldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse golden cases: %w", err)
	}

	return cases, nil
}

// ValidateGoldenCases checks required fields, symptom names and that every
// expected condition is one of knownConditions.
func ValidateGoldenCases(cases []GoldenCase, knownConditions []string) error {
	known := make(map[string]struct{}, len(knownConditions))
	for _, c := range knownConditions {
		known[c] = struct{}{}
	}
	seen := make(map[string]struct{}, len(cases))

	for i, gc := range cases {
		if gc.ID == "" {
			return fmt.Errorf("case at index %d: missing id", i)
		}
		if _, dup := seen[gc.ID]; dup {
			return fmt.Errorf("case at index %d: duplicate id %q", i, gc.ID)
		}
		seen[gc.ID] = struct{}{}

		if len(gc.Symptoms) == 0 {
			return fmt.Errorf("case %q: no symptoms", gc.ID)
		}
		if _, err := entities.ParseSymptoms(gc.Symptoms); err != nil {
			return fmt.Errorf("case %q: %w", gc.ID, err)
		}
		if _, ok := known[gc.ExpectedCondition]; !ok {
			return fmt.Errorf("case %q: unknown condition %q", gc.ID, gc.ExpectedCondition)
		}
		if !gc.Difficulty.IsValid() {
			return fmt.Errorf("case %q: invalid difficulty %q (must be easy/medium/hard)", gc.ID, gc.Difficulty)
		}
	}

	return nil
}
