package app

import (
	"sort"

	"rental_dashboard/internal/domain"
)

// AveragePrice groups rows by (distance bucket, room type, time period) and
// averages RealSum per group. Combinations absent from rows produce no
// output row. The result is sorted lexicographically by the group key so
// identical inputs always render identically.
func AveragePrice(rows []domain.Listing) []domain.PriceGroup {
	type acc struct {
		sum float64
		n   int
	}
	byKey := make(map[[3]string]*acc)
	for _, l := range rows {
		k := [3]string{l.DistanceBucket, l.RoomType, l.TimePeriod}
		a := byKey[k]
		if a == nil {
			a = &acc{}
			byKey[k] = a
		}
		a.sum += l.RealSum
		a.n++
	}

	out := make([]domain.PriceGroup, 0, len(byKey))
	for k, a := range byKey {
		out = append(out, domain.PriceGroup{
			DistanceBucket: k[0],
			RoomType:       k[1],
			TimePeriod:     k[2],
			AvgPrice:       a.sum / float64(a.n),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DistanceBucket != b.DistanceBucket {
			return a.DistanceBucket < b.DistanceBucket
		}
		if a.RoomType != b.RoomType {
			return a.RoomType < b.RoomType
		}
		return a.TimePeriod < b.TimePeriod
	})
	return out
}
