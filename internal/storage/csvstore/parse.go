package csvstore

import (
	"fmt"
	"strconv"
	"strings"

	"rental_dashboard/internal/domain"
)

/********** column alias registry (single source of truth) **********/

var columnAliases = map[string][]string{
	"realSum":             {"realSum", "real_sum", "realsum"},
	"price_per_person":    {"price_per_person", "pricePerPerson"},
	"dist":                {"dist", "distance"},
	"attr_index":          {"attr_index", "attraction_index", "attrIndex"},
	"person_capacity":     {"person_capacity", "personCapacity", "capacity"},
	"room_type":           {"room_type", "roomType"},
	"time_period":         {"time_period", "timePeriod"},
	"distance_bucket":     {"distance_bucket", "dist_bucket", "distanceBucket"},
	"satisfaction_bucket": {"satisfaction_bucket", "guest_satisfaction_bucket", "satisfactionBucket"},
	"host_is_superhost":   {"host_is_superhost", "is_superhost", "superhost"},
}

// requiredColumns in canonical order; every one must resolve in the header.
var requiredColumns = []string{
	"realSum", "price_per_person", "dist", "attr_index", "person_capacity",
	"room_type", "time_period", "distance_bucket", "satisfaction_bucket",
	"host_is_superhost",
}

// columnIndex resolves each canonical column to its header position through
// the alias registry. Header matching is case-insensitive and trimmed.
func columnIndex(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idx := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, col := range requiredColumns {
		found := -1
		for _, alias := range columnAliases[col] {
			if i, ok := pos[strings.ToLower(alias)]; ok {
				found = i
				break
			}
		}
		if found < 0 {
			missing = append(missing, col)
			continue
		}
		idx[col] = found
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// parseFloat accepts plain and comma-decimal numeric cells.
func parseFloat(cell string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(cell, ",", ".")), 64)
}

// parseBool accepts the pandas and Go spellings of a boolean cell.
func parseBool(cell string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true", "t", "1", "yes":
		return true, nil
	case "false", "f", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", cell)
}

// normBucket canonicalizes a satisfaction cell; the empty string marks a
// missing bucket. The extra spellings are what tabular tooling writes for
// NA values.
func normBucket(cell string) string {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "", "nan", "na", "none", "null":
		return ""
	}
	return s
}

func parseRecord(idx map[string]int, rec []string) (domain.Listing, error) {
	var l domain.Listing
	var err error

	get := func(col string) string { return rec[idx[col]] }

	if l.RealSum, err = parseFloat(get("realSum")); err != nil {
		return l, fmt.Errorf("realSum: %w", err)
	}
	if l.PricePerPerson, err = parseFloat(get("price_per_person")); err != nil {
		return l, fmt.Errorf("price_per_person: %w", err)
	}
	if l.Dist, err = parseFloat(get("dist")); err != nil {
		return l, fmt.Errorf("dist: %w", err)
	}
	if l.AttrIndex, err = parseFloat(get("attr_index")); err != nil {
		return l, fmt.Errorf("attr_index: %w", err)
	}
	if l.PersonCapacity, err = parseFloat(get("person_capacity")); err != nil {
		return l, fmt.Errorf("person_capacity: %w", err)
	}
	l.RoomType = strings.TrimSpace(get("room_type"))
	l.TimePeriod = strings.TrimSpace(get("time_period"))
	l.DistanceBucket = strings.TrimSpace(get("distance_bucket"))
	l.SatisfactionBucket = normBucket(get("satisfaction_bucket"))
	if l.HostIsSuperhost, err = parseBool(get("host_is_superhost")); err != nil {
		return l, fmt.Errorf("host_is_superhost: %w", err)
	}
	return l, nil
}
