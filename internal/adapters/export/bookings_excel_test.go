package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/medisense/backend/internal/domain/entities"
)

func TestGenerateBookingsWorkbook(t *testing.T) {
	records := []entities.BookingRecord{
		{
			ID: 6, Reference: "BK006", PatientName: "Meera Iyer", PatientMobile: "9000011111",
			PatientAge: 30, PatientSex: "Female", Condition: "Influenza", ProviderName: "Divya Clinic",
			Date: "2026-03-02", Time: "10:00 AM", Status: entities.BookingStatusPending,
			CreatedAt: time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			ID: 5, Reference: "BK005", PatientName: "Deepa Natarajan", PatientMobile: "9988776655",
			PatientAge: 45, PatientSex: "Female", Condition: "Arthritis", ProviderName: "Nalam Medical Center and Hospital",
			Date: "2026-02-26", Time: "2:00 PM", Status: entities.BookingStatusConfirmed,
		},
	}

	data, err := GenerateBookingsWorkbook(records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{BookingsSheet}, f.GetSheetList())

	rows, err := f.GetRows(BookingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, BookingsHeader, rows[0])
	assert.Equal(t, "BK006", rows[1][0])
	assert.Equal(t, "30", rows[1][3])
	assert.Equal(t, "2026-03-01 08:30:00", rows[1][11])
	assert.Equal(t, "confirmed", rows[2][9])
}

func TestGenerateBookingsWorkbook_Empty(t *testing.T) {
	data, err := GenerateBookingsWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(BookingsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
