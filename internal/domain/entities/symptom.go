package entities

import (
	apperrors "github.com/medisense/backend/pkg/errors"
)

// Symptom is one entry of the fixed symptom vocabulary
type Symptom string

const (
	SymptomFever             Symptom = "Fever"
	SymptomCough             Symptom = "Cough"
	SymptomHeadache          Symptom = "Headache"
	SymptomFatigue           Symptom = "Fatigue"
	SymptomSoreThroat        Symptom = "Sore Throat"
	SymptomShortnessOfBreath Symptom = "Shortness of Breath"
	SymptomChestPain         Symptom = "Chest Pain"
	SymptomNausea            Symptom = "Nausea"
	SymptomVomiting          Symptom = "Vomiting"
	SymptomDiarrhea          Symptom = "Diarrhea"
	SymptomAbdominalPain     Symptom = "Abdominal Pain"
	SymptomBackPain          Symptom = "Back Pain"
	SymptomJointPain         Symptom = "Joint Pain"
	SymptomSkinRash          Symptom = "Skin Rash"
	SymptomRunnyNose         Symptom = "Runny Nose"
	SymptomLossOfTasteSmell  Symptom = "Loss of Taste/Smell"
	SymptomDizziness         Symptom = "Dizziness"
	SymptomMuscleAches       Symptom = "Muscle Aches"
	SymptomSwollenLymphNodes Symptom = "Swollen Lymph Nodes"
	SymptomNightSweats       Symptom = "Night Sweats"
)

var symptomVocabulary = []Symptom{
	SymptomFever, SymptomCough, SymptomHeadache, SymptomFatigue, SymptomSoreThroat,
	SymptomShortnessOfBreath, SymptomChestPain, SymptomNausea, SymptomVomiting, SymptomDiarrhea,
	SymptomAbdominalPain, SymptomBackPain, SymptomJointPain, SymptomSkinRash, SymptomRunnyNose,
	SymptomLossOfTasteSmell, SymptomDizziness, SymptomMuscleAches, SymptomSwollenLymphNodes, SymptomNightSweats,
}

var symptomIndex = func() map[Symptom]struct{} {
	idx := make(map[Symptom]struct{}, len(symptomVocabulary))
	for _, s := range symptomVocabulary {
		idx[s] = struct{}{}
	}
	return idx
}()

// AllSymptoms returns the vocabulary in display order
func AllSymptoms() []Symptom {
	out := make([]Symptom, len(symptomVocabulary))
	copy(out, symptomVocabulary)
	return out
}

// IsValid checks if the symptom is part of the vocabulary
func (s Symptom) IsValid() bool {
	_, ok := symptomIndex[s]
	return ok
}

// ParseSymptom validates a raw symptom name
func ParseSymptom(raw string) (Symptom, error) {
	s := Symptom(raw)
	if !s.IsValid() {
		return "", apperrors.NewInvalidInputError("unknown symptom: " + raw)
	}
	return s, nil
}

// ParseSymptoms validates a list of raw names into a selection.
// Duplicates collapse to their first occurrence.
func ParseSymptoms(raw []string) (SymptomSelection, error) {
	sel := make(SymptomSelection, 0, len(raw))
	for _, r := range raw {
		s, err := ParseSymptom(r)
		if err != nil {
			return nil, err
		}
		sel.Add(s)
	}
	return sel, nil
}

// SymptomSelection is an insertion-ordered set of symptoms
type SymptomSelection []Symptom

// Contains reports whether s is selected
func (sel SymptomSelection) Contains(s Symptom) bool {
	for _, x := range sel {
		if x == s {
			return true
		}
	}
	return false
}

// Add selects s; it returns false when s was already selected
func (sel *SymptomSelection) Add(s Symptom) bool {
	if sel.Contains(s) {
		return false
	}
	*sel = append(*sel, s)
	return true
}

// Remove deselects s; it returns false when s was not selected
func (sel *SymptomSelection) Remove(s Symptom) bool {
	for i, x := range *sel {
		if x == s {
			*sel = append((*sel)[:i:i], (*sel)[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle flips s and reports whether it is selected afterwards
func (sel *SymptomSelection) Toggle(s Symptom) bool {
	if sel.Remove(s) {
		return false
	}
	sel.Add(s)
	return true
}

// Set returns the selection as a lookup set
func (sel SymptomSelection) Set() map[Symptom]struct{} {
	set := make(map[Symptom]struct{}, len(sel))
	for _, s := range sel {
		set[s] = struct{}{}
	}
	return set
}

// Clear deselects everything
func (sel *SymptomSelection) Clear() {
	*sel = SymptomSelection{}
}
