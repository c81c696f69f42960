package app

import "rental_dashboard/internal/domain"

// Filter returns the rows matching sel, preserving input order. An empty
// RoomTypes or TimePeriods means "no filter on that dimension", not "match
// nothing". Unknown labels match zero rows; that is not an error.
func Filter(rows []domain.Listing, sel domain.FilterSelection) []domain.Listing {
	rooms := toSet(sel.RoomTypes)
	periods := toSet(sel.TimePeriods)

	out := make([]domain.Listing, 0, len(rows))
	for _, l := range rows {
		if rooms != nil && !rooms[l.RoomType] {
			continue
		}
		if periods != nil && !periods[l.TimePeriod] {
			continue
		}
		if sel.Satisfaction != domain.AllSatisfaction && l.SatisfactionBucket != sel.Satisfaction {
			continue
		}
		out = append(out, l)
	}
	return out
}

func toSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	s := make(map[string]bool, len(vals))
	for _, v := range vals {
		s[v] = true
	}
	return s
}
