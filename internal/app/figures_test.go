package app_test

import (
	"reflect"
	"testing"

	"rental_dashboard/internal/app"
	"rental_dashboard/internal/domain"
)

func checkLayout(t *testing.T, l domain.Layout) {
	t.Helper()
	if l.Template != "plotly_white" || l.Width != 800 || l.Height != 480 {
		t.Fatalf("unexpected layout: %+v", l)
	}
	if !reflect.DeepEqual(l.Colorway, []string{"#003688", "#E32017", "#FF8F1C"}) {
		t.Fatalf("unexpected colorway: %v", l.Colorway)
	}
}

func TestPriceDistanceFigure(t *testing.T) {
	fig := app.PriceDistanceFigure(fixtureRows())

	if fig.Kind != "scatter" || fig.Title != "Price vs Distance to City Center" {
		t.Fatalf("unexpected kind/title: %s / %s", fig.Kind, fig.Title)
	}
	if fig.XField != "dist" || fig.YField != "realSum" || fig.ColorField != "room_type" ||
		fig.SizeField != "person_capacity" || fig.FacetField != "time_period" ||
		fig.FrameField != "satisfaction_bucket" {
		t.Fatalf("unexpected field bindings: %+v", fig)
	}
	if !reflect.DeepEqual(fig.HoverFields, []string{"price_per_person", "host_is_superhost"}) {
		t.Fatalf("unexpected hover fields: %v", fig.HoverFields)
	}
	checkLayout(t, fig.Layout)

	// frames keep first-seen bucket order; facet and series names are sorted
	if len(fig.Frames) != 2 || fig.Frames[0].Name != "High" || fig.Frames[1].Name != "Low" {
		t.Fatalf("unexpected frames: %+v", fig.Frames)
	}
	for _, fr := range fig.Frames {
		if len(fr.Facets) != 2 || fr.Facets[0].Name != "weekday" || fr.Facets[1].Name != "weekend" {
			t.Fatalf("unexpected facets in frame %s: %+v", fr.Name, fr.Facets)
		}
		for _, fc := range fr.Facets {
			if len(fc.Series) != 2 || fc.Series[0].Name != "Entire home/apt" || fc.Series[1].Name != "Private room" {
				t.Fatalf("unexpected series in %s/%s: %+v", fr.Name, fc.Name, fc.Series)
			}
		}
	}

	// the High/weekday/Private room cell holds exactly the first fixture row
	s := fig.Frames[0].Facets[0].Series[1]
	if len(s.X) != 1 || s.X[0] != 1.2 || s.Y[0] != 150 || s.Sizes[0] != 2 {
		t.Fatalf("unexpected point data: %+v", s)
	}
	if !reflect.DeepEqual(s.Hover[0], []string{"75", "true"}) {
		t.Fatalf("unexpected hover: %v", s.Hover)
	}

	// a row with a missing bucket is not drawn anywhere
	var points int
	for _, fr := range fig.Frames {
		for _, fc := range fr.Facets {
			for _, sr := range fc.Series {
				points += len(sr.X)
			}
		}
	}
	if points != 3 {
		t.Fatalf("expected 3 plotted points, got %d", points)
	}

	// the top-level facets mirror the first frame
	if !reflect.DeepEqual(fig.Facets, fig.Frames[0].Facets) {
		t.Fatalf("facets should mirror the first frame")
	}

	if len(fig.Images) != 1 {
		t.Fatalf("expected the logo watermark, got %+v", fig.Images)
	}
	img := fig.Images[0]
	if img.Source != "/assets/airbnb_logo.png" || img.XRef != "paper" || img.YRef != "paper" ||
		img.X != 1.15 || img.Y != 0 || img.SizeX != 0.32 || img.SizeY != 0.32 ||
		img.XAnchor != "right" || img.YAnchor != "bottom" || img.Opacity != 0.15 {
		t.Fatalf("unexpected watermark: %+v", img)
	}
}

func TestAvgPriceFigure(t *testing.T) {
	fig := app.AvgPriceFigure(app.AveragePrice(fixtureRows()))

	if fig.Kind != "bar" || fig.Title != "Average Price by Distance Bucket" {
		t.Fatalf("unexpected kind/title: %s / %s", fig.Kind, fig.Title)
	}
	if fig.XField != "distance_bucket" || fig.YField != "avg_price" ||
		fig.ColorField != "time_period" || fig.FrameField != "room_type" {
		t.Fatalf("unexpected field bindings: %+v", fig)
	}
	if fig.Layout.BarMode != "group" {
		t.Fatalf("expected grouped bars, got %q", fig.Layout.BarMode)
	}
	checkLayout(t, fig.Layout)

	if len(fig.Frames) != 2 || fig.Frames[0].Name != "Entire home/apt" || fig.Frames[1].Name != "Private room" {
		t.Fatalf("unexpected frames: %+v", fig.Frames)
	}

	// Entire home/apt averages: weekday 300 at 2-4 km, weekend 210 at 0-2 km
	fc := fig.Frames[0].Facets[0]
	if fc.Name != "" || len(fc.Series) != 2 {
		t.Fatalf("unexpected facet: %+v", fc)
	}
	if !reflect.DeepEqual(fc.Series[0].X, []any{"2-4 km"}) || fc.Series[0].Y[0] != 300 {
		t.Fatalf("unexpected weekday bars: %+v", fc.Series[0])
	}
	if !reflect.DeepEqual(fc.Series[1].X, []any{"0-2 km"}) || fc.Series[1].Y[0] != 210 {
		t.Fatalf("unexpected weekend bars: %+v", fc.Series[1])
	}

	if !reflect.DeepEqual(fig.Facets, fig.Frames[0].Facets) {
		t.Fatalf("facets should mirror the first frame")
	}
}

func TestAttrPriceFigure(t *testing.T) {
	fig := app.AttrPriceFigure(fixtureRows())

	if fig.Kind != "scatter" || fig.Title != "Attractions Index vs Price per Person" {
		t.Fatalf("unexpected kind/title: %s / %s", fig.Kind, fig.Title)
	}
	if fig.XField != "attr_index" || fig.YField != "price_per_person" ||
		fig.ColorField != "satisfaction_bucket" || fig.FacetField != "time_period" {
		t.Fatalf("unexpected field bindings: %+v", fig)
	}
	if !reflect.DeepEqual(fig.HoverFields, []string{"room_type", "distance_bucket"}) {
		t.Fatalf("unexpected hover fields: %v", fig.HoverFields)
	}
	checkLayout(t, fig.Layout)

	if len(fig.Facets) != 2 || fig.Facets[0].Name != "weekday" || fig.Facets[1].Name != "weekend" {
		t.Fatalf("unexpected facets: %+v", fig.Facets)
	}
	weekdayHigh := fig.Facets[0].Series[0]
	if weekdayHigh.Name != "High" || len(weekdayHigh.X) != 2 {
		t.Fatalf("unexpected weekday High series: %+v", weekdayHigh)
	}
	if !reflect.DeepEqual(weekdayHigh.Hover, [][]string{{"Private room", "0-2 km"}, {"Entire home/apt", "2-4 km"}}) {
		t.Fatalf("unexpected hover: %v", weekdayHigh.Hover)
	}

	// the missing-bucket row has no series to land in
	weekendHigh := fig.Facets[1].Series[0]
	if len(weekendHigh.X) != 0 {
		t.Fatalf("expected empty weekend High series, got %+v", weekendHigh)
	}
	weekendLow := fig.Facets[1].Series[1]
	if len(weekendLow.X) != 1 || weekendLow.X[0] != 120.0 || weekendLow.Y[0] != 45 {
		t.Fatalf("unexpected weekend Low series: %+v", weekendLow)
	}
}

func TestBoxDistanceFigure(t *testing.T) {
	fig := app.BoxDistanceFigure(fixtureRows())

	if fig.Kind != "box" || fig.Title != "Price per Person by Distance Bucket" {
		t.Fatalf("unexpected kind/title: %s / %s", fig.Kind, fig.Title)
	}
	if fig.XField != "distance_bucket" || fig.YField != "price_per_person" || fig.ColorField != "time_period" {
		t.Fatalf("unexpected field bindings: %+v", fig)
	}
	checkLayout(t, fig.Layout)

	if len(fig.Facets) != 1 || fig.Facets[0].Name != "" || len(fig.Facets[0].Series) != 2 {
		t.Fatalf("unexpected facets: %+v", fig.Facets)
	}
	weekday := fig.Facets[0].Series[0]
	if !reflect.DeepEqual(weekday.X, []any{"0-2 km", "2-4 km"}) || !reflect.DeepEqual(weekday.Y, []float64{75, 100}) {
		t.Fatalf("unexpected weekday observations: %+v", weekday)
	}
	// rows with a missing satisfaction bucket still count here
	weekend := fig.Facets[0].Series[1]
	if !reflect.DeepEqual(weekend.X, []any{"4-6 km", "0-2 km"}) || !reflect.DeepEqual(weekend.Y, []float64{45, 70}) {
		t.Fatalf("unexpected weekend observations: %+v", weekend)
	}
}

func TestPriceHistFigure(t *testing.T) {
	fig := app.PriceHistFigure(fixtureRows())

	if fig.Kind != "histogram" || fig.Title != "Price Distribution" {
		t.Fatalf("unexpected kind/title: %s / %s", fig.Kind, fig.Title)
	}
	if fig.XField != "realSum" || fig.YField != "" || fig.ColorField != "satisfaction_bucket" {
		t.Fatalf("unexpected field bindings: %+v", fig)
	}
	if fig.Layout.NBins != 40 {
		t.Fatalf("expected 40 bins, got %d", fig.Layout.NBins)
	}
	checkLayout(t, fig.Layout)

	if len(fig.Facets) != 1 || len(fig.Facets[0].Series) != 2 {
		t.Fatalf("unexpected facets: %+v", fig.Facets)
	}
	high := fig.Facets[0].Series[0]
	if high.Name != "High" || !reflect.DeepEqual(high.X, []any{150.0, 300.0}) || high.Opacity != 0.75 {
		t.Fatalf("unexpected High series: %+v", high)
	}
	low := fig.Facets[0].Series[1]
	if low.Name != "Low" || !reflect.DeepEqual(low.X, []any{90.0}) || low.Opacity != 0.75 {
		t.Fatalf("unexpected Low series: %+v", low)
	}

	if len(fig.Images) != 1 {
		t.Fatalf("expected the flag watermark, got %+v", fig.Images)
	}
	img := fig.Images[0]
	if img.Source != "/assets/london_flag.png" || img.X != 0.5 || img.Y != 0.5 ||
		img.SizeX != 1.0 || img.SizeY != 1.0 || img.XAnchor != "center" ||
		img.YAnchor != "middle" || img.Opacity != 0.09 {
		t.Fatalf("unexpected watermark: %+v", img)
	}
}

func TestFigures_EmptyInput(t *testing.T) {
	figs := []domain.Figure{
		app.PriceDistanceFigure(nil),
		app.AvgPriceFigure(app.AveragePrice(nil)),
		app.AttrPriceFigure(nil),
		app.BoxDistanceFigure(nil),
		app.PriceHistFigure(nil),
	}
	for _, fig := range figs {
		if fig.Title == "" || fig.Kind == "" {
			t.Fatalf("empty input lost chart identity: %+v", fig)
		}
		if fig.Facets == nil {
			t.Fatalf("%s: facets must be present even when empty", fig.Title)
		}
		if len(fig.Frames) != 0 {
			t.Fatalf("%s: unexpected frames: %+v", fig.Title, fig.Frames)
		}
		checkLayout(t, fig.Layout)
	}
}
