package app_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"rental_dashboard/internal/app"
	"rental_dashboard/internal/domain"
)

func TestWarmPlan(t *testing.T) {
	src := &fakeSource{rows: fixtureRows()}
	warm := app.NewWarmService(app.NewDashboardService(src, nil, 0))

	plan := warm.Plan()
	// default view + 2 room types + 2 time periods + 2 concrete buckets
	if len(plan) != 7 {
		t.Fatalf("expected 7 selections, got %d: %+v", len(plan), plan)
	}
	if !reflect.DeepEqual(plan[0], src.Options().Defaults) {
		t.Fatalf("plan should start with the default view, got %+v", plan[0])
	}
	for _, sel := range plan {
		if sel.Satisfaction == "" {
			t.Fatalf("plan entry missing satisfaction: %+v", sel)
		}
	}
}

func TestWarm_PopulatesCache(t *testing.T) {
	src := &fakeSource{rows: fixtureRows()}
	cache := &fakeCache{}
	warm := app.NewWarmService(app.NewDashboardService(src, cache, time.Minute))

	if err := warm.Warm(context.Background(), domain.FilterSelection{Satisfaction: "High"}); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if len(cache.store) != 1 {
		t.Fatalf("expected one cached dashboard, got %d", len(cache.store))
	}
}
