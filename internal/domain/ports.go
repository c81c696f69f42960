package domain

import "context"

// ListingSource is the read side of the dataset store. The row slice is
// immutable after load; callers must not modify it.
type ListingSource interface {
	Rows() []Listing
	Options() FilterOptions
	Preview(page int) PreviewPage
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & queries

type FilterOptions struct {
	RoomTypes           []string        `json:"room_types"`
	TimePeriods         []string        `json:"time_periods"`
	SatisfactionBuckets []string        `json:"satisfaction_buckets"` // "All" first
	Defaults            FilterSelection `json:"defaults"`
}

type DashboardView struct {
	Selection        FilterSelection `json:"selection"`
	PriceDistance    Figure          `json:"price_distance"`
	AvgPriceDistance Figure          `json:"avg_price_distance"`
	AttrPrice        Figure          `json:"attr_price"`
	BoxDistance      Figure          `json:"box_distance"`
	PriceHist        Figure          `json:"price_hist"`
}

type PreviewPage struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
	TotalRows int        `json:"total_rows"`
}
