package entities

import (
	apperrors "github.com/medisense/backend/pkg/errors"
)

// Specialty is a medical discipline used to match providers to a condition
type Specialty string

const (
	SpecialtyGeneralPractice   Specialty = "General Practice"
	SpecialtyCardiology        Specialty = "Cardiology"
	SpecialtyGastroenterology  Specialty = "Gastroenterology"
	SpecialtyPulmonology       Specialty = "Pulmonology"
	SpecialtyInfectiousDisease Specialty = "Infectious Disease"
	SpecialtyAllergyImmunology Specialty = "Allergy & Immunology"
	SpecialtyRheumatology      Specialty = "Rheumatology"
	SpecialtyNeurology         Specialty = "Neurology"
)

var specialties = []Specialty{
	SpecialtyGeneralPractice,
	SpecialtyCardiology,
	SpecialtyGastroenterology,
	SpecialtyPulmonology,
	SpecialtyInfectiousDisease,
	SpecialtyAllergyImmunology,
	SpecialtyRheumatology,
	SpecialtyNeurology,
}

// AllSpecialties returns every known specialty
func AllSpecialties() []Specialty {
	out := make([]Specialty, len(specialties))
	copy(out, specialties)
	return out
}

// IsValid checks if the specialty is known
func (s Specialty) IsValid() bool {
	for _, x := range specialties {
		if x == s {
			return true
		}
	}
	return false
}

// ParseSpecialty validates a raw specialty name
func ParseSpecialty(raw string) (Specialty, error) {
	s := Specialty(raw)
	if !s.IsValid() {
		return "", apperrors.NewInvalidInputError("unknown specialty: " + raw)
	}
	return s, nil
}

// Severity classifies how serious a condition is
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityChronic  Severity = "chronic"
)
