package app

import (
	"context"

	"rental_dashboard/internal/domain"
)

// WarmService precomputes dashboards into the cache so first requests after
// a deploy don't pay the build cost.
type WarmService struct {
	q *DashboardService
}

func NewWarmService(q *DashboardService) *WarmService { return &WarmService{q: q} }

// Plan returns the selections worth precomputing: the default view first,
// then every single-option variant per filter dimension.
func (s *WarmService) Plan() []domain.FilterSelection {
	opts := s.q.Options()
	sels := []domain.FilterSelection{opts.Defaults}
	for _, rt := range opts.RoomTypes {
		sels = append(sels, domain.FilterSelection{RoomTypes: []string{rt}, Satisfaction: domain.AllSatisfaction})
	}
	for _, tp := range opts.TimePeriods {
		sels = append(sels, domain.FilterSelection{TimePeriods: []string{tp}, Satisfaction: domain.AllSatisfaction})
	}
	for _, b := range opts.SatisfactionBuckets {
		if b == domain.AllSatisfaction {
			continue // covered by the default view
		}
		sels = append(sels, domain.FilterSelection{Satisfaction: b})
	}
	return sels
}

// Warm computes one dashboard through the query service, populating the
// cache as a side effect.
func (s *WarmService) Warm(ctx context.Context, sel domain.FilterSelection) error {
	_, err := s.q.Dashboard(ctx, sel)
	return err
}
