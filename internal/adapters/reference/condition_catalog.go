package reference

import (
	"context"
	"fmt"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/repositories"
	apperrors "github.com/medisense/backend/pkg/errors"
)

// conditionCatalog is ordered; inference breaks score ties by this order.
var conditionCatalog = []entities.Condition{
	{
		Name: "COVID-19",
		Symptoms: []entities.Symptom{
			entities.SymptomFever, entities.SymptomCough, entities.SymptomFatigue,
			entities.SymptomLossOfTasteSmell, entities.SymptomShortnessOfBreath, entities.SymptomMuscleAches,
		},
		Specialty:   entities.SpecialtyInfectiousDisease,
		Severity:    entities.SeverityModerate,
		Description: "A viral respiratory illness caused by SARS-CoV-2.",
	},
	{
		Name: "Common Cold",
		Symptoms: []entities.Symptom{
			entities.SymptomRunnyNose, entities.SymptomSoreThroat, entities.SymptomCough,
			entities.SymptomHeadache, entities.SymptomFatigue,
		},
		Specialty:   entities.SpecialtyGeneralPractice,
		Severity:    entities.SeverityMild,
		Description: "A mild viral infection of the upper respiratory tract.",
	},
	{
		Name: "Influenza",
		Symptoms: []entities.Symptom{
			entities.SymptomFever, entities.SymptomMuscleAches, entities.SymptomFatigue,
			entities.SymptomHeadache, entities.SymptomCough, entities.SymptomSoreThroat,
		},
		Specialty:   entities.SpecialtyGeneralPractice,
		Severity:    entities.SeverityModerate,
		Description: "A contagious respiratory illness caused by influenza viruses.",
	},
	{
		Name: "Gastroenteritis",
		Symptoms: []entities.Symptom{
			entities.SymptomNausea, entities.SymptomVomiting, entities.SymptomDiarrhea,
			entities.SymptomAbdominalPain, entities.SymptomFever,
		},
		Specialty:   entities.SpecialtyGastroenterology,
		Severity:    entities.SeverityModerate,
		Description: "Inflammation of the stomach and intestines, often from infection.",
	},
	{
		Name: "Migraine",
		Symptoms: []entities.Symptom{
			entities.SymptomHeadache, entities.SymptomNausea, entities.SymptomDizziness, entities.SymptomFatigue,
		},
		Specialty:   entities.SpecialtyNeurology,
		Severity:    entities.SeverityModerate,
		Description: "A neurological condition causing intense, debilitating headaches.",
	},
	{
		Name: "Pneumonia",
		Symptoms: []entities.Symptom{
			entities.SymptomFever, entities.SymptomCough, entities.SymptomShortnessOfBreath,
			entities.SymptomChestPain, entities.SymptomFatigue,
		},
		Specialty:   entities.SpecialtyPulmonology,
		Severity:    entities.SeveritySevere,
		Description: "Infection that inflames the air sacs in one or both lungs.",
	},
	{
		Name: "Allergic Reaction",
		Symptoms: []entities.Symptom{
			entities.SymptomSkinRash, entities.SymptomRunnyNose, entities.SymptomShortnessOfBreath,
			entities.SymptomSwollenLymphNodes,
		},
		Specialty:   entities.SpecialtyAllergyImmunology,
		Severity:    entities.SeverityMild,
		Description: "An immune system response to a foreign substance.",
	},
	{
		Name: "Arthritis",
		Symptoms: []entities.Symptom{
			entities.SymptomJointPain, entities.SymptomFatigue, entities.SymptomSwollenLymphNodes, entities.SymptomBackPain,
		},
		Specialty:   entities.SpecialtyRheumatology,
		Severity:    entities.SeverityChronic,
		Description: "Inflammation of one or more joints causing pain and stiffness.",
	},
	{
		Name: "Cardiac Issue",
		Symptoms: []entities.Symptom{
			entities.SymptomChestPain, entities.SymptomShortnessOfBreath, entities.SymptomDizziness,
			entities.SymptomFatigue, entities.SymptomNausea,
		},
		Specialty:   entities.SpecialtyCardiology,
		Severity:    entities.SeveritySevere,
		Description: "Conditions affecting the heart's structure or function.",
	},
	{
		Name: "Dengue Fever",
		Symptoms: []entities.Symptom{
			entities.SymptomFever, entities.SymptomHeadache, entities.SymptomJointPain,
			entities.SymptomMuscleAches, entities.SymptomSkinRash, entities.SymptomFatigue,
		},
		Specialty:   entities.SpecialtyInfectiousDisease,
		Severity:    entities.SeveritySevere,
		Description: "A mosquito-borne tropical disease caused by dengue viruses.",
	},
}

// ConditionCatalog serves the static condition table
type ConditionCatalog struct {
	conditions []entities.Condition
}

// NewConditionCatalog creates the built-in condition catalog
func NewConditionCatalog() repositories.ConditionRepository {
	return &ConditionCatalog{conditions: conditionCatalog}
}

// List returns every condition in catalog order
func (c *ConditionCatalog) List(ctx context.Context) ([]entities.Condition, error) {
	out := make([]entities.Condition, len(c.conditions))
	for i, cond := range c.conditions {
		out[i] = cloneCondition(cond)
	}
	return out, nil
}

// GetByName retrieves a condition by its exact name
func (c *ConditionCatalog) GetByName(ctx context.Context, name string) (*entities.Condition, error) {
	for _, cond := range c.conditions {
		if cond.Name == name {
			clone := cloneCondition(cond)
			return &clone, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("condition %q not found", name))
}

func cloneCondition(c entities.Condition) entities.Condition {
	c.Symptoms = append([]entities.Symptom(nil), c.Symptoms...)
	return c
}
