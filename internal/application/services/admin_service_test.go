package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medisense/backend/pkg/errors"
)

func TestAdminService_Authenticate(t *testing.T) {
	ctx := context.Background()
	st := newStack(zeroPacing)

	assert.NoError(t, st.admin.Authenticate(ctx, testAdminMobile))
	assert.NoError(t, st.admin.Authenticate(ctx, "  "+testAdminMobile+" "))

	err := st.admin.Authenticate(ctx, "9999999999")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeAuthFailure))
	assert.Contains(t, err.Error(), "Invalid admin mobile number.")

	assert.Error(t, st.admin.Authenticate(ctx, ""))
}

func TestAdminService_Stats(t *testing.T) {
	ctx := context.Background()
	st := newStack(zeroPacing)

	stats, err := st.admin.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.Confirmed)
	assert.Equal(t, 2, stats.Pending)

	require.Len(t, stats.ByCondition, 10)
	assert.Equal(t, "COVID-19", stats.ByCondition[0].Condition)
	assert.Zero(t, stats.ByCondition[0].Count)

	percents := map[string]int{}
	for _, c := range stats.ByCondition {
		percents[c.Condition] = c.Percent
	}
	assert.Equal(t, 20, percents["Arthritis"])
	assert.Equal(t, 20, percents["Common Cold"])
	assert.Equal(t, 0, percents["Pneumonia"])

	require.Len(t, stats.ByProvider, 5)
	for _, p := range stats.ByProvider {
		assert.Equal(t, 1, p.Count)
	}
	assert.Equal(t, 1, stats.ByProvider[0].ProviderID)
	assert.Equal(t, "Naruvi Hospitals", stats.ByProvider[0].ProviderName)

	// toggling moves one booking between the totals
	_, err = st.bookings.ToggleStatus(ctx, 5)
	require.NoError(t, err)
	stats, err = st.admin.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Confirmed)
	assert.Equal(t, 1, stats.Pending)
}

func TestAdminService_Providers(t *testing.T) {
	st := newStack(zeroPacing)

	providers, err := st.admin.Providers(context.Background())
	require.NoError(t, err)
	assert.Len(t, providers, 12)
}
