package application

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"catalogstats/internal/domain"
	"catalogstats/internal/domain/entities"
	"catalogstats/internal/logging"
	"catalogstats/internal/ports/input"
	"catalogstats/internal/ports/output"
	"catalogstats/pkg/catalogdate"
)

var _ input.ImportUseCase = (*ImportService)(nil)

const defaultImportBatch = 500

// Columns of the catalog CSV dump. Order in the file does not matter.
var catalogColumns = []string{
	"show_id", "type", "title", "director", "cast", "country",
	"date_added", "release_year", "rating", "duration", "listed_in", "description",
}

type ImportService struct {
	repo      output.CatalogWriter
	batchSize int
}

func NewImportService(repo output.CatalogWriter) *ImportService {
	return &ImportService{repo: repo, batchSize: defaultImportBatch}
}

// Import reads a catalog CSV and upserts its titles batch by batch. Invalid
// rows are skipped and counted; a bad header or a store error aborts.
func (s *ImportService) Import(ctx context.Context, r io.Reader) (input.ImportResult, error) {
	var res input.ImportResult

	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return res, fmt.Errorf("read header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return res, err
	}

	batch := make([]entities.Title, 0, s.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := s.repo.UpsertTitles(ctx, batch)
		if err != nil {
			return fmt.Errorf("upsert titles: %w", err)
		}
		res.Written += n
		batch = batch[:0]
		return nil
	}

	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read line %d: %w", line, err)
		}
		res.Read++

		title, err := ParseRecord(record, cols)
		if err != nil {
			res.Rejected++
			logging.Ctx(ctx).Warn().Int("line", line).Err(err).Msg("import: row rejected")
			continue
		}
		batch = append(batch, title)
		if len(batch) >= s.batchSize {
			if err := flush(); err != nil {
				return res, err
			}
		}
	}
	if err := flush(); err != nil {
		return res, err
	}

	logging.Ctx(ctx).Info().
		Int("read", res.Read).
		Int("written", res.Written).
		Int("rejected", res.Rejected).
		Msg("✅ import finished")
	return res, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range catalogColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("column %q missing: %w", col, domain.ErrInvalidHeader)
		}
	}
	return idx, nil
}

// ParseRecord converts one CSV row into a Title.
func ParseRecord(record []string, cols map[string]int) (entities.Title, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	t := entities.Title{
		ShowID:      field("show_id"),
		Name:        field("title"),
		Director:    field("director"),
		Cast:        field("cast"),
		Country:     firstListed(field("country")),
		Rating:      field("rating"),
		ListedIn:    field("listed_in"),
		Description: field("description"),
	}
	if t.ShowID == "" || t.Name == "" {
		return entities.Title{}, fmt.Errorf("show_id and title are required: %w", domain.ErrInvalidRecord)
	}

	kind, err := domain.ParseKind(field("type"))
	if err != nil {
		return entities.Title{}, fmt.Errorf("show %s: %w", t.ShowID, err)
	}
	t.Kind = kind

	if y := field("release_year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || year <= 0 {
			return entities.Title{}, fmt.Errorf("show %s: release_year %q: %w", t.ShowID, y, domain.ErrInvalidRecord)
		}
		t.ReleaseYear = year
	}

	if t.DateAdded, err = catalogdate.ParseAdded(field("date_added")); err != nil {
		return entities.Title{}, fmt.Errorf("show %s: %v: %w", t.ShowID, err, domain.ErrInvalidRecord)
	}

	duration := field("duration")
	// Some dump rows carry the duration in the rating column.
	if duration == "" && looksLikeDuration(t.Rating) {
		duration, t.Rating = t.Rating, ""
	}
	if err := applyDuration(&t, duration); err != nil {
		return entities.Title{}, fmt.Errorf("show %s: %w", t.ShowID, err)
	}
	return t, nil
}

// applyDuration parses "90 min" into Minutes and "3 Seasons" into Seasons.
// An empty duration leaves both unset.
func applyDuration(t *entities.Title, s string) error {
	if s == "" {
		return nil
	}
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return fmt.Errorf("duration %q: %w", s, domain.ErrInvalidRecord)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return fmt.Errorf("duration %q: %w", s, domain.ErrInvalidRecord)
	}

	unit := strings.ToLower(fields[1])
	switch {
	case strings.HasPrefix(unit, "min"):
		t.Minutes = &n
	case strings.HasPrefix(unit, "season"):
		t.Seasons = &n
	default:
		return fmt.Errorf("duration unit %q: %w", fields[1], domain.ErrInvalidRecord)
	}
	return nil
}

func looksLikeDuration(s string) bool {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 2 {
		return false
	}
	if _, err := strconv.Atoi(fields[0]); err != nil {
		return false
	}
	return strings.HasPrefix(fields[1], "min") || strings.HasPrefix(fields[1], "season")
}

func firstListed(s string) string {
	first, _, _ := strings.Cut(s, ",")
	return strings.TrimSpace(first)
}
