package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisense/backend/internal/adapters/reference"
	"github.com/medisense/backend/internal/application/services"
)

func TestRunner_Run(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(services.NewInferenceService(reference.NewConditionCatalog()), 0)

	cases := []GoldenCase{
		{ID: "cold", Symptoms: []string{"Runny Nose", "Sore Throat", "Cough", "Headache", "Fatigue"}, ExpectedCondition: "Common Cold", Difficulty: DifficultyEasy},
		{ID: "migraine", Symptoms: []string{"Headache", "Nausea", "Dizziness"}, ExpectedCondition: "Migraine", Difficulty: DifficultyEasy},
		// Pneumonia and Cardiac Issue tie; catalog order puts Pneumonia first
		{ID: "chest", Symptoms: []string{"Chest Pain", "Shortness of Breath"}, ExpectedCondition: "Cardiac Issue", Difficulty: DifficultyHard},
		{ID: "bad", Symptoms: []string{"Hiccups"}, ExpectedCondition: "Migraine", Difficulty: DifficultyEasy},
	}

	summary, err := runner.Run(ctx, cases)
	require.NoError(t, err)

	assert.Equal(t, DefaultK, summary.K)
	assert.Equal(t, 3, summary.TotalCases)
	assert.Equal(t, 1, summary.Failed)
	assert.InDelta(t, 2.0/3.0, summary.Top1Accuracy, 1e-9)
	assert.InDelta(t, 1.0, summary.AvgRecallAtK, 1e-9)
	assert.InDelta(t, 2.5/3.0, summary.AvgMRRAtK, 1e-9)

	require.Len(t, summary.Misses, 1)
	assert.Equal(t, "chest", summary.Misses[0].CaseID)
	assert.Equal(t, "Pneumonia", summary.Misses[0].Predicted)

	assert.Equal(t, 2, summary.ByDifficulty[DifficultyEasy].Count)
	assert.InDelta(t, 1.0, summary.ByDifficulty[DifficultyEasy].Top1Accuracy, 1e-9)
	assert.InDelta(t, 0.5, summary.ByDifficulty[DifficultyHard].AvgMRRAtK, 1e-9)
}

func TestRunner_ShippedSetPassesDefaultGuardrails(t *testing.T) {
	cases, err := LoadGoldenCases("../../config/golden_cases.json")
	require.NoError(t, err)

	summary, err := NewRunner(services.NewInferenceService(reference.NewConditionCatalog()), 3).Run(context.Background(), cases)
	require.NoError(t, err)

	g := NewGuardrails(GuardrailConfig{MinTop1Accuracy: 0.8, MinMRRAtK: 0.85})
	assert.NoError(t, g.Check(summary))
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(services.NewInferenceService(reference.NewConditionCatalog()), 3).Run(ctx, []GoldenCase{{ID: "x"}})
	assert.ErrorIs(t, err, context.Canceled)
}
