package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"rental_dashboard/internal/adapters/observability"
	"rental_dashboard/internal/domain"
)

// ErrUnknownFigure reports a figure name outside the five dashboard panels.
var ErrUnknownFigure = errors.New("unknown figure")

// Panel ids, matching the dashboard's graph ids.
const (
	FigurePriceDistance    = "price-distance"
	FigureAvgPriceDistance = "avg-price-distance"
	FigureAttrPrice        = "attr-price"
	FigureBoxDistance      = "box-distance"
	FigurePriceHist        = "price-hist"
)

// FigureNames lists the panels in display order.
var FigureNames = []string{
	FigurePriceDistance,
	FigureAvgPriceDistance,
	FigureAttrPrice,
	FigureBoxDistance,
	FigurePriceHist,
}

// cacheSizeLimit keeps pathological payloads out of the cache.
const cacheSizeLimit = 8_000_000

type DashboardService struct {
	src      domain.ListingSource
	cache    domain.Cache // nil disables caching
	cacheTTL time.Duration
}

func NewDashboardService(src domain.ListingSource, c domain.Cache, ttl time.Duration) *DashboardService {
	return &DashboardService{src: src, cache: c, cacheTTL: ttl}
}

func (s *DashboardService) Options() domain.FilterOptions { return s.src.Options() }

func (s *DashboardService) Preview(page int) domain.PreviewPage { return s.src.Preview(page) }

// Dashboard filters the dataset once and rebuilds all five figures, serving
// a cached view when an equal selection was computed before. Builders are
// pure over an immutable dataset, so cached output is indistinguishable
// from recomputation.
func (s *DashboardService) Dashboard(ctx context.Context, sel domain.FilterSelection) (domain.DashboardView, error) {
	sel = s.canonicalSelection(sel)
	key := dashboardKey(sel)

	var dv domain.DashboardView
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &dv); ok {
			return dv, nil
		}
	}

	rows := Filter(s.src.Rows(), sel)
	dv = domain.DashboardView{
		Selection:        sel,
		PriceDistance:    buildTimed(FigurePriceDistance, func() domain.Figure { return PriceDistanceFigure(rows) }),
		AvgPriceDistance: buildTimed(FigureAvgPriceDistance, func() domain.Figure { return AvgPriceFigure(AveragePrice(rows)) }),
		AttrPrice:        buildTimed(FigureAttrPrice, func() domain.Figure { return AttrPriceFigure(rows) }),
		BoxDistance:      buildTimed(FigureBoxDistance, func() domain.Figure { return BoxDistanceFigure(rows) }),
		PriceHist:        buildTimed(FigurePriceHist, func() domain.Figure { return PriceHistFigure(rows) }),
	}

	if s.cache != nil {
		if b, _ := json.Marshal(dv); len(b) < cacheSizeLimit {
			_ = s.cache.Set(ctx, key, dv, int(s.cacheTTL.Seconds()))
		}
	}
	return dv, nil
}

// FigureByName serves a single panel by id; the selection semantics match
// Dashboard.
func (s *DashboardService) FigureByName(ctx context.Context, name string, sel domain.FilterSelection) (domain.Figure, error) {
	known := false
	for _, n := range FigureNames {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		return domain.Figure{}, ErrUnknownFigure
	}

	dv, err := s.Dashboard(ctx, sel)
	if err != nil {
		return domain.Figure{}, err
	}
	switch name {
	case FigurePriceDistance:
		return dv.PriceDistance, nil
	case FigureAvgPriceDistance:
		return dv.AvgPriceDistance, nil
	case FigureAttrPrice:
		return dv.AttrPrice, nil
	case FigureBoxDistance:
		return dv.BoxDistance, nil
	default:
		return dv.PriceHist, nil
	}
}

func buildTimed(name string, build func() domain.Figure) domain.Figure {
	start := time.Now()
	fig := build()
	observability.ObserveFigure(name, time.Since(start))
	return fig
}

// canonicalSelection de-duplicates and sorts the multi-select dimensions,
// applies the "All" default, and folds a multi-select naming every known
// option into the empty (unfiltered) form. "All selected" and "nothing
// sent" filter identically, so they share one cache entry.
func (s *DashboardService) canonicalSelection(sel domain.FilterSelection) domain.FilterSelection {
	out := domain.FilterSelection{
		RoomTypes:    normalizeLabels(sel.RoomTypes),
		TimePeriods:  normalizeLabels(sel.TimePeriods),
		Satisfaction: sel.Satisfaction,
	}
	if out.Satisfaction == "" {
		out.Satisfaction = domain.AllSatisfaction
	}
	opts := s.src.Options()
	if equalLabels(out.RoomTypes, opts.RoomTypes) {
		out.RoomTypes = nil
	}
	if equalLabels(out.TimePeriods, opts.TimePeriods) {
		out.TimePeriods = nil
	}
	return out
}

func normalizeLabels(vals []string) []string {
	if len(vals) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func equalLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dashboardKey(sel domain.FilterSelection) string {
	return fmt.Sprintf("dashboard:%s|%s|%s",
		strings.Join(sel.RoomTypes, ","),
		strings.Join(sel.TimePeriods, ","),
		sel.Satisfaction,
	)
}
