package ledger

import (
	"time"

	"github.com/medisense/backend/internal/domain/entities"
)

// SeedBookings returns the demo bookings shown on a fresh dashboard, newest first
func SeedBookings() []entities.BookingRecord {
	seeded := time.Date(2026, time.February, 21, 9, 0, 0, 0, time.UTC)
	rows := []entities.BookingRecord{
		{ID: 5, PatientName: "Deepa Natarajan", PatientMobile: "9988776655", PatientAge: 45, PatientSex: "Female",
			Condition: "Arthritis", ProviderName: "Nalam Medical Center and Hospital",
			Date: "2026-02-26", Time: "2:00 PM", Status: entities.BookingStatusPending},
		{ID: 4, PatientName: "Karthik Rajesh", PatientMobile: "7654321890", PatientAge: 19, PatientSex: "Male",
			Condition: "Dengue Fever", ProviderName: "Vellore CMC Hospital",
			Date: "2026-02-25", Time: "3:00 PM", Status: entities.BookingStatusConfirmed},
		{ID: 3, PatientName: "Priya Menon", PatientMobile: "8765432190", PatientAge: 27, PatientSex: "Female",
			Condition: "Migraine", ProviderName: "Shine Neuro & Spine Centre",
			Date: "2026-02-24", Time: "11:00 AM", Status: entities.BookingStatusPending},
		{ID: 2, PatientName: "Ravi Subramaniam", PatientMobile: "9123456780", PatientAge: 52, PatientSex: "Male",
			Condition: "Cardiac Issue", ProviderName: "Naruvi Hospitals",
			Date: "2026-02-23", Time: "9:00 AM", Status: entities.BookingStatusConfirmed},
		{ID: 1, PatientName: "Ananya Krishnan", PatientMobile: "9876543210", PatientAge: 34, PatientSex: "Female",
			Condition: "Common Cold", ProviderName: "A P Clinic Family Health Care Centre",
			Date: "2026-02-22", Time: "10:00 AM", Status: entities.BookingStatusConfirmed},
	}
	for i := range rows {
		rows[i].Reference = entities.BookingReference(rows[i].ID)
		rows[i].CreatedAt = seeded.Add(time.Duration(rows[i].ID) * time.Hour)
	}
	return rows
}
