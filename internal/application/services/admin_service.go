package services

import (
	"context"
	"crypto/subtle"
	"math"
	"strings"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/repositories"
	"github.com/medisense/backend/internal/infrastructure/observability"
	apperrors "github.com/medisense/backend/pkg/errors"
)

// ConditionCount is one row of the bookings-by-condition breakdown
type ConditionCount struct {
	Condition string `json:"condition"`
	Count     int    `json:"count"`
	Percent   int    `json:"percent"`
}

// ProviderCount is one row of the bookings-by-provider breakdown
type ProviderCount struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	Count        int    `json:"count"`
}

// DashboardStats aggregates the ledger for the admin dashboard
type DashboardStats struct {
	Total       int              `json:"total"`
	Confirmed   int              `json:"confirmed"`
	Pending     int              `json:"pending"`
	ByCondition []ConditionCount `json:"by_condition"`
	ByProvider  []ProviderCount  `json:"by_provider"`
}

// AdminService authenticates the operator and summarises the ledger
type AdminService struct {
	adminMobile string
	ledger      repositories.BookingRepository
	conditions  repositories.ConditionRepository
	directory   repositories.ProviderRepository
	metrics     *observability.Metrics
}

// NewAdminService creates a new admin service
func NewAdminService(
	adminMobile string,
	ledger repositories.BookingRepository,
	conditions repositories.ConditionRepository,
	directory repositories.ProviderRepository,
	metrics *observability.Metrics,
) *AdminService {
	return &AdminService{
		adminMobile: adminMobile,
		ledger:      ledger,
		conditions:  conditions,
		directory:   directory,
		metrics:     metrics,
	}
}

// Authenticate compares the supplied mobile number with the configured credential
func (s *AdminService) Authenticate(ctx context.Context, mobile string) error {
	supplied := strings.TrimSpace(mobile)
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(s.adminMobile)) != 1 {
		s.metrics.RecordAuthFailure(ctx)
		observability.LoggerFromContext(ctx).Warn().Msg("Admin authentication failed")
		return apperrors.NewAuthFailureError("Invalid admin mobile number.")
	}
	return nil
}

// Stats computes dashboard totals and per-condition and per-provider counts.
// Conditions appear in catalog order; providers with no bookings are omitted.
func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	records, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	conditions, err := s.conditions.List(ctx)
	if err != nil {
		return nil, err
	}
	providers, err := s.directory.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Total:       len(records),
		ByCondition: make([]ConditionCount, 0, len(conditions)),
		ByProvider:  make([]ProviderCount, 0),
	}

	byCondition := make(map[string]int)
	byProvider := make(map[string]int)
	for _, r := range records {
		switch r.Status {
		case entities.BookingStatusConfirmed:
			stats.Confirmed++
		case entities.BookingStatusPending:
			stats.Pending++
		}
		byCondition[r.Condition]++
		byProvider[r.ProviderName]++
	}

	for _, c := range conditions {
		count := byCondition[c.Name]
		stats.ByCondition = append(stats.ByCondition, ConditionCount{
			Condition: c.Name,
			Count:     count,
			Percent:   percentOf(count, stats.Total),
		})
	}

	for _, p := range providers {
		if count := byProvider[p.Name]; count > 0 {
			stats.ByProvider = append(stats.ByProvider, ProviderCount{
				ProviderID:   p.ID,
				ProviderName: p.Name,
				Count:        count,
			})
		}
	}

	return stats, nil
}

// Providers lists the whole directory for the dashboard
func (s *AdminService) Providers(ctx context.Context) ([]entities.Provider, error) {
	return s.directory.List(ctx)
}

func percentOf(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
