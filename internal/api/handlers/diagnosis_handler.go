package handlers

import (
	"net/http"

	"github.com/medisense/backend/internal/application/services"
	"github.com/medisense/backend/internal/domain/entities"
)

// DiagnosisHandler exposes stateless inference
type DiagnosisHandler struct {
	inference *services.InferenceService
}

// NewDiagnosisHandler creates a new diagnosis handler
func NewDiagnosisHandler(inference *services.InferenceService) *DiagnosisHandler {
	return &DiagnosisHandler{inference: inference}
}

// DiagnosisRequest is the body of POST /api/diagnoses
type DiagnosisRequest struct {
	Symptoms []string `json:"symptoms"`
}

// Infer handles POST /api/diagnoses
func (h *DiagnosisHandler) Infer(w http.ResponseWriter, r *http.Request) {
	var req DiagnosisRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	selection, err := entities.ParseSymptoms(req.Symptoms)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	ranked, err := h.inference.Rank(r.Context(), selection)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	best := ranked[0]
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"diagnosis": entities.Diagnosis{
			Condition:       best.Condition,
			MatchedSymptoms: best.MatchedSymptoms,
			Score:           best.Score,
		},
		"ranking": ranked,
	})
}
