package app

import (
	"sort"
	"strconv"

	"rental_dashboard/internal/domain"
)

// Global chart theme shared by every panel.
const (
	chartTemplate = "plotly_white"
	chartWidth    = 800
	chartHeight   = 480
)

var chartColorway = []string{"#003688", "#E32017", "#FF8F1C"}

func baseLayout() domain.Layout {
	return domain.Layout{
		Template: chartTemplate,
		Width:    chartWidth,
		Height:   chartHeight,
		Colorway: append([]string(nil), chartColorway...),
	}
}

func logoWatermark() domain.Image {
	return domain.Image{
		Source: "/assets/airbnb_logo.png",
		XRef:   "paper", YRef: "paper",
		X: 1.15, Y: 0,
		SizeX: 0.32, SizeY: 0.32,
		XAnchor: "right", YAnchor: "bottom",
		Opacity: 0.15,
	}
}

func flagWatermark() domain.Image {
	return domain.Image{
		Source: "/assets/london_flag.png",
		XRef:   "paper", YRef: "paper",
		X: 0.5, Y: 0.5,
		SizeX: 1.0, SizeY: 1.0,
		XAnchor: "center", YAnchor: "middle",
		Opacity: 0.09,
	}
}

func roomTypeOf(l domain.Listing) string { return l.RoomType }
func periodOf(l domain.Listing) string   { return l.TimePeriod }
func bucketOf(l domain.Listing) string   { return l.SatisfactionBucket }

// sortedLabels returns the distinct values of get over items, sorted.
// Room types and time periods enumerate this way (fixed category sets).
func sortedLabels[T any](items []T, get func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		if v := get(it); !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// seenLabels returns the distinct non-empty values of get over items in
// first-seen order. Satisfaction buckets enumerate this way; the empty
// label marks a missing bucket and is never listed.
func seenLabels[T any](items []T, get func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		v := get(it)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// PriceDistanceFigure is the "Price vs Distance to City Center" scatter:
// one facet per time period, one series per room type, one animation frame
// per satisfaction bucket. Every frame carries the same facet/series grid;
// the figure's top-level facets mirror the first frame. Rows with a missing
// satisfaction bucket have no frame and are not drawn.
func PriceDistanceFigure(rows []domain.Listing) domain.Figure {
	fig := domain.Figure{
		Kind:        "scatter",
		Title:       "Price vs Distance to City Center",
		XField:      "dist",
		YField:      "realSum",
		ColorField:  "room_type",
		SizeField:   "person_capacity",
		FacetField:  "time_period",
		FrameField:  "satisfaction_bucket",
		HoverFields: []string{"price_per_person", "host_is_superhost"},
		Layout:      baseLayout(),
		Facets:      []domain.Facet{},
		Images:      []domain.Image{logoWatermark()},
	}

	buckets := seenLabels(rows, bucketOf)
	periods := sortedLabels(rows, periodOf)
	roomTypes := sortedLabels(rows, roomTypeOf)

	fig.Frames = make([]domain.Frame, len(buckets))
	cell := make(map[[3]string]*domain.Series, len(buckets)*len(periods)*len(roomTypes))
	for i, b := range buckets {
		fig.Frames[i] = domain.Frame{Name: b, Facets: make([]domain.Facet, len(periods))}
		for j, tp := range periods {
			fig.Frames[i].Facets[j] = domain.Facet{Name: tp, Series: make([]domain.Series, len(roomTypes))}
			for k, rt := range roomTypes {
				fig.Frames[i].Facets[j].Series[k] = domain.Series{Name: rt, X: []any{}}
				cell[[3]string{b, tp, rt}] = &fig.Frames[i].Facets[j].Series[k]
			}
		}
	}
	for _, l := range rows {
		s := cell[[3]string{l.SatisfactionBucket, l.TimePeriod, l.RoomType}]
		if s == nil {
			continue
		}
		s.X = append(s.X, l.Dist)
		s.Y = append(s.Y, l.RealSum)
		s.Sizes = append(s.Sizes, l.PersonCapacity)
		s.Hover = append(s.Hover, []string{formatFloat(l.PricePerPerson), strconv.FormatBool(l.HostIsSuperhost)})
	}
	if len(fig.Frames) > 0 {
		fig.Facets = fig.Frames[0].Facets
	}
	return fig
}

// AvgPriceFigure is the "Average Price by Distance Bucket" grouped bar over
// pre-aggregated rows: one series per time period, one animation frame per
// room type. Groups arrive sorted from AveragePrice, so bar categories keep
// a stable order.
func AvgPriceFigure(groups []domain.PriceGroup) domain.Figure {
	fig := domain.Figure{
		Kind:       "bar",
		Title:      "Average Price by Distance Bucket",
		XField:     "distance_bucket",
		YField:     "avg_price",
		ColorField: "time_period",
		FrameField: "room_type",
		Layout:     baseLayout(),
		Facets:     []domain.Facet{},
	}
	fig.Layout.BarMode = "group"

	roomTypes := sortedLabels(groups, func(g domain.PriceGroup) string { return g.RoomType })
	periods := sortedLabels(groups, func(g domain.PriceGroup) string { return g.TimePeriod })

	fig.Frames = make([]domain.Frame, len(roomTypes))
	cell := make(map[[2]string]*domain.Series, len(roomTypes)*len(periods))
	for i, rt := range roomTypes {
		fig.Frames[i] = domain.Frame{Name: rt, Facets: []domain.Facet{{Series: make([]domain.Series, len(periods))}}}
		for j, tp := range periods {
			fig.Frames[i].Facets[0].Series[j] = domain.Series{Name: tp, X: []any{}}
			cell[[2]string{rt, tp}] = &fig.Frames[i].Facets[0].Series[j]
		}
	}
	for _, g := range groups {
		s := cell[[2]string{g.RoomType, g.TimePeriod}]
		s.X = append(s.X, g.DistanceBucket)
		s.Y = append(s.Y, g.AvgPrice)
	}
	if len(fig.Frames) > 0 {
		fig.Facets = fig.Frames[0].Facets
	}
	return fig
}

// AttrPriceFigure is the "Attractions Index vs Price per Person" scatter:
// one facet per time period, one series per satisfaction bucket. Rows with
// a missing bucket are not drawn.
func AttrPriceFigure(rows []domain.Listing) domain.Figure {
	fig := domain.Figure{
		Kind:        "scatter",
		Title:       "Attractions Index vs Price per Person",
		XField:      "attr_index",
		YField:      "price_per_person",
		ColorField:  "satisfaction_bucket",
		FacetField:  "time_period",
		HoverFields: []string{"room_type", "distance_bucket"},
		Layout:      baseLayout(),
		Facets:      []domain.Facet{},
	}

	periods := sortedLabels(rows, periodOf)
	buckets := seenLabels(rows, bucketOf)

	fig.Facets = make([]domain.Facet, len(periods))
	cell := make(map[[2]string]*domain.Series, len(periods)*len(buckets))
	for i, tp := range periods {
		fig.Facets[i] = domain.Facet{Name: tp, Series: make([]domain.Series, len(buckets))}
		for j, b := range buckets {
			fig.Facets[i].Series[j] = domain.Series{Name: b, X: []any{}}
			cell[[2]string{tp, b}] = &fig.Facets[i].Series[j]
		}
	}
	for _, l := range rows {
		s := cell[[2]string{l.TimePeriod, l.SatisfactionBucket}]
		if s == nil {
			continue
		}
		s.X = append(s.X, l.AttrIndex)
		s.Y = append(s.Y, l.PricePerPerson)
		s.Hover = append(s.Hover, []string{l.RoomType, l.DistanceBucket})
	}
	return fig
}

// BoxDistanceFigure is the "Price per Person by Distance Bucket" box plot:
// one series per time period, x carrying the bucket category of every
// observation. Box statistics are the renderer's job.
func BoxDistanceFigure(rows []domain.Listing) domain.Figure {
	fig := domain.Figure{
		Kind:       "box",
		Title:      "Price per Person by Distance Bucket",
		XField:     "distance_bucket",
		YField:     "price_per_person",
		ColorField: "time_period",
		Layout:     baseLayout(),
		Facets:     []domain.Facet{},
	}

	periods := sortedLabels(rows, periodOf)
	series := make([]domain.Series, len(periods))
	cell := make(map[string]*domain.Series, len(periods))
	for i, tp := range periods {
		series[i] = domain.Series{Name: tp, X: []any{}}
		cell[tp] = &series[i]
	}
	for _, l := range rows {
		s := cell[l.TimePeriod]
		s.X = append(s.X, l.DistanceBucket)
		s.Y = append(s.Y, l.PricePerPerson)
	}
	if len(series) > 0 {
		fig.Facets = []domain.Facet{{Series: series}}
	}
	return fig
}

// PriceHistFigure is the "Price Distribution" histogram: 40 fixed-width
// bins over RealSum, one series per satisfaction bucket. Rows with a
// missing bucket are not drawn.
func PriceHistFigure(rows []domain.Listing) domain.Figure {
	fig := domain.Figure{
		Kind:       "histogram",
		Title:      "Price Distribution",
		XField:     "realSum",
		ColorField: "satisfaction_bucket",
		Layout:     baseLayout(),
		Facets:     []domain.Facet{},
		Images:     []domain.Image{flagWatermark()},
	}
	fig.Layout.NBins = 40

	buckets := seenLabels(rows, bucketOf)
	series := make([]domain.Series, len(buckets))
	cell := make(map[string]*domain.Series, len(buckets))
	for i, b := range buckets {
		series[i] = domain.Series{Name: b, X: []any{}, Opacity: 0.75}
		cell[b] = &series[i]
	}
	for _, l := range rows {
		s := cell[l.SatisfactionBucket]
		if s == nil {
			continue
		}
		s.X = append(s.X, l.RealSum)
	}
	if len(series) > 0 {
		fig.Facets = []domain.Facet{{Series: series}}
	}
	return fig
}
