package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medisense/backend/pkg/errors"
)

func TestSymptomSelection(t *testing.T) {
	t.Run("keeps insertion order and rejects duplicates", func(t *testing.T) {
		var sel SymptomSelection
		assert.True(t, sel.Add(SymptomCough))
		assert.True(t, sel.Add(SymptomFever))
		assert.False(t, sel.Add(SymptomCough))
		assert.Equal(t, SymptomSelection{SymptomCough, SymptomFever}, sel)
	})

	t.Run("toggle flips membership", func(t *testing.T) {
		var sel SymptomSelection
		assert.True(t, sel.Toggle(SymptomNausea))
		assert.True(t, sel.Contains(SymptomNausea))
		assert.False(t, sel.Toggle(SymptomNausea))
		assert.Empty(t, sel)
	})

	t.Run("remove does not disturb the remaining order", func(t *testing.T) {
		sel := SymptomSelection{SymptomFever, SymptomCough, SymptomHeadache}
		assert.True(t, sel.Remove(SymptomCough))
		assert.False(t, sel.Remove(SymptomCough))
		assert.Equal(t, SymptomSelection{SymptomFever, SymptomHeadache}, sel)
	})

	t.Run("clear", func(t *testing.T) {
		sel := SymptomSelection{SymptomFever}
		sel.Clear()
		assert.Empty(t, sel)
	})
}

func TestParseSymptoms(t *testing.T) {
	sel, err := ParseSymptoms([]string{"Fever", "Cough", "Fever"})
	require.NoError(t, err)
	assert.Equal(t, SymptomSelection{SymptomFever, SymptomCough}, sel)

	_, err = ParseSymptoms([]string{"Fever", "Hiccups"})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInvalidInput))
}

func TestAllSymptoms_Vocabulary(t *testing.T) {
	all := AllSymptoms()
	require.Len(t, all, 20)
	assert.Equal(t, SymptomFever, all[0])
	assert.Equal(t, SymptomNightSweats, all[19])

	all[0] = "mutated"
	assert.Equal(t, SymptomFever, AllSymptoms()[0])
}

func TestParseSpecialty(t *testing.T) {
	s, err := ParseSpecialty("Allergy & Immunology")
	require.NoError(t, err)
	assert.Equal(t, SpecialtyAllergyImmunology, s)

	_, err = ParseSpecialty("Dermatology")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInvalidInput))
}

func TestPatientProfile_Validate(t *testing.T) {
	valid := PatientProfile{Name: "Ananya Krishnan", Mobile: "9876543210", Age: 34, Sex: "Female"}
	assert.Empty(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(p *PatientProfile)
		wantKey string
	}{
		{"blank name", func(p *PatientProfile) { p.Name = "  " }, "name"},
		{"mobile starting with 5", func(p *PatientProfile) { p.Mobile = "5876543210" }, "mobile"},
		{"short mobile", func(p *PatientProfile) { p.Mobile = "98765" }, "mobile"},
		{"age zero", func(p *PatientProfile) { p.Age = 0 }, "age"},
		{"age over limit", func(p *PatientProfile) { p.Age = 121 }, "age"},
		{"missing sex", func(p *PatientProfile) { p.Sex = "" }, "sex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			fields := p.Validate()
			assert.Len(t, fields, 1)
			assert.Contains(t, fields, tt.wantKey)
		})
	}
}

func TestBookingForm(t *testing.T) {
	assert.False(t, BookingForm{Date: "2026-03-01"}.Complete())
	assert.True(t, BookingForm{Date: "2026-03-01", Time: "9:00 AM"}.Complete())

	assert.Empty(t, BookingForm{Date: "2026-03-01", Time: "9:00 AM"}.Validate())

	fields := BookingForm{Date: "01/03/2026", Time: "8:00 AM"}.Validate()
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "time")
}

func TestBookingDraft_Validate(t *testing.T) {
	draft := BookingDraft{
		PatientName:   "Priya Raman",
		PatientMobile: "9876543210",
		PatientAge:    34,
		PatientSex:    "Female",
		ProviderName:  "CMC Vellore",
		Date:          "2026-11-02",
		Time:          "10:00 AM",
	}
	assert.Empty(t, draft.Validate())

	t.Run("form fields merge with profile fields", func(t *testing.T) {
		bad := draft
		bad.PatientMobile = "12345"
		bad.Date = ""
		bad.Time = "8:00 PM"
		bad.ProviderName = " "

		fields := bad.Validate()
		assert.Len(t, fields, 4)
		assert.Contains(t, fields, "mobile")
		assert.Equal(t, "Please choose a date.", fields["date"])
		assert.Contains(t, fields, "time")
		assert.Contains(t, fields, "provider")
	})
}

func TestBookingReference(t *testing.T) {
	assert.Equal(t, "BK006", BookingReference(6))
	assert.Equal(t, "BK1234", BookingReference(1234))

	id, err := ParseBookingReference("BK006")
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)

	id, err = ParseBookingReference("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = ParseBookingReference("BK")
	assert.Error(t, err)
	_, err = ParseBookingReference("-3")
	assert.Error(t, err)
}

func TestBookingStatus_Toggled(t *testing.T) {
	assert.Equal(t, BookingStatusConfirmed, BookingStatusPending.Toggled())
	assert.Equal(t, BookingStatusPending, BookingStatusConfirmed.Toggled())
}

func TestSession_Reset(t *testing.T) {
	s := NewSession()
	id, created := s.ID, s.CreatedAt
	s.State = StateBooking
	s.Profile = PatientProfile{Name: "Ravi"}
	s.Selection = SymptomSelection{SymptomFever}
	s.Location = &Location{Label: "Katpadi, Vellore"}
	s.Diagnosis = &Diagnosis{Score: 1}
	s.Form = BookingForm{Date: "2026-03-01"}

	s.Reset()

	assert.Equal(t, id, s.ID)
	assert.Equal(t, created, s.CreatedAt)
	assert.Equal(t, StateLogin, s.State)
	assert.Empty(t, s.Profile.Name)
	assert.Empty(t, s.Selection)
	assert.Nil(t, s.Location)
	assert.Nil(t, s.Diagnosis)
	assert.False(t, s.Form.Complete())
}

func TestWorkflowState_UserStep(t *testing.T) {
	assert.Equal(t, -1, StateLogin.UserStep())
	assert.Equal(t, 1, StateAnalyzing.UserStep())
	assert.Equal(t, 4, StateConfirmed.UserStep())
	assert.False(t, WorkflowState("paused").IsValid())
}
