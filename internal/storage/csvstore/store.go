package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"rental_dashboard/internal/domain"
)

const (
	previewRows     = 25
	previewPageSize = 10
)

// Store holds the whole dataset in memory. It is loaded once at startup and
// never mutated afterwards, so reads need no locking.
type Store struct {
	rows    []domain.Listing
	opts    domain.FilterOptions
	columns []string
	preview [][]string
}

// Load reads the dataset file and parses every row up front. Any unreadable
// cell fails the load; a half-parsed dataset is worse than no dataset.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	defer f.Close()

	start := time.Now()
	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset %s: header: %w", path, err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	s := &Store{columns: append([]string(nil), requiredColumns...)}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", path, err)
		}
		line, _ := r.FieldPos(0)
		l, err := parseRecord(idx, rec)
		if err != nil {
			return nil, fmt.Errorf("dataset %s line %d: %w", path, line, err)
		}
		if len(s.preview) < previewRows {
			s.preview = append(s.preview, previewCells(idx, rec))
		}
		s.rows = append(s.rows, l)
	}
	s.opts = buildOptions(s.rows)

	log.Info().
		Str("path", path).
		Int("rows", len(s.rows)).
		Int("room_types", len(s.opts.RoomTypes)).
		Int("time_periods", len(s.opts.TimePeriods)).
		Int("satisfaction_buckets", len(s.opts.SatisfactionBuckets)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset loaded")
	return s, nil
}

// Rows returns the full dataset in file order. The slice is shared; callers
// must not modify it.
func (s *Store) Rows() []domain.Listing { return s.rows }

// Options returns the filter vocabulary derived from the dataset.
func (s *Store) Options() domain.FilterOptions { return s.opts }

// Preview returns one page of the dataset head. Pages are 1-based; pages past
// the end come back empty with the same metadata.
func (s *Store) Preview(page int) domain.PreviewPage {
	if page < 1 {
		page = 1
	}
	p := domain.PreviewPage{
		Columns:   s.columns,
		Page:      page,
		PageSize:  previewPageSize,
		TotalRows: len(s.preview),
	}
	lo := (page - 1) * previewPageSize
	if lo >= len(s.preview) {
		p.Rows = [][]string{}
		return p
	}
	hi := lo + previewPageSize
	if hi > len(s.preview) {
		hi = len(s.preview)
	}
	p.Rows = s.preview[lo:hi]
	return p
}

// previewCells reorders a raw record into canonical column order. Cells are
// copied because the reader reuses its record buffer.
func previewCells(idx map[string]int, rec []string) []string {
	out := make([]string, len(requiredColumns))
	for i, col := range requiredColumns {
		out[i] = rec[idx[col]]
	}
	return out
}

func buildOptions(rows []domain.Listing) domain.FilterOptions {
	roomSet := map[string]bool{}
	periodSet := map[string]bool{}
	bucketSeen := map[string]bool{}

	opts := domain.FilterOptions{
		SatisfactionBuckets: []string{domain.AllSatisfaction},
	}
	for _, l := range rows {
		if !roomSet[l.RoomType] {
			roomSet[l.RoomType] = true
			opts.RoomTypes = append(opts.RoomTypes, l.RoomType)
		}
		if !periodSet[l.TimePeriod] {
			periodSet[l.TimePeriod] = true
			opts.TimePeriods = append(opts.TimePeriods, l.TimePeriod)
		}
		if l.SatisfactionBucket != "" && !bucketSeen[l.SatisfactionBucket] {
			bucketSeen[l.SatisfactionBucket] = true
			opts.SatisfactionBuckets = append(opts.SatisfactionBuckets, l.SatisfactionBucket)
		}
	}
	sort.Strings(opts.RoomTypes)
	sort.Strings(opts.TimePeriods)

	opts.Defaults = domain.FilterSelection{
		RoomTypes:    append([]string(nil), opts.RoomTypes...),
		TimePeriods:  append([]string(nil), opts.TimePeriods...),
		Satisfaction: domain.AllSatisfaction,
	}
	return opts
}
