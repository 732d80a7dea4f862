package application

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/message"

	"catalogstats/internal/domain"
	"catalogstats/internal/domain/entities"
	"catalogstats/internal/ports/input"
	"catalogstats/internal/ports/output"
)

var _ input.ReportUseCase = (*ReportService)(nil)

const (
	newestLimit    = 10
	countriesLimit = 5
	directorsLimit = 5
	longestLimit   = 5
)

// Table IDs, stable across locales.
const (
	TableNewest    = "newest"
	TableCountries = "countries"
	TableRatings   = "ratings"
	TableAdditions = "additions"
	TableDirectors = "directors"
	TableLongest   = "longest"
)

type ReportService struct {
	repo       output.CatalogReader
	translator output.T
	seasons    *SeasonFormatter
	locales    *LocaleResolver
}

func NewReportService(
	repo output.CatalogReader,
	translator output.T,
	locales *LocaleResolver,
	seasons *SeasonFormatter,
) *ReportService {
	return &ReportService{
		repo:       repo,
		translator: translator,
		locales:    locales,
		seasons:    seasons,
	}
}

// BuildReport runs every aggregation and formats the result for locale.
func (s *ReportService) BuildReport(ctx context.Context, locale string) (*entities.Report, error) {
	tag := s.locales.Resolve(locale)
	locale = tag.String()

	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	if summary.Titles == 0 {
		return nil, domain.ErrCatalogEmpty
	}

	report := &entities.Report{Locale: locale, Summary: summary}
	if report.ContentTypes, err = s.repo.ContentTypes(ctx); err != nil {
		return nil, fmt.Errorf("content types: %w", err)
	}
	if report.Countries, err = s.repo.Countries(ctx); err != nil {
		return nil, fmt.Errorf("countries: %w", err)
	}
	if report.Ratings, err = s.repo.Ratings(ctx); err != nil {
		return nil, fmt.Errorf("ratings: %w", err)
	}

	f := &tableFormatter{
		locale:  locale,
		printer: message.NewPrinter(tag),
		tr:      s.translator,
		seasons: s.seasons,
	}
	builders := []func(context.Context, *tableFormatter) (entities.Table, error){
		s.newestTable,
		s.countriesTable,
		s.ratingsTable,
		s.additionsTable,
		s.directorsTable,
		s.longestTable,
	}
	for _, build := range builders {
		table, err := build(ctx, f)
		if err != nil {
			return nil, err
		}
		report.Tables = append(report.Tables, table)
	}
	return report, nil
}

func (s *ReportService) newestTable(ctx context.Context, f *tableFormatter) (entities.Table, error) {
	titles, err := s.repo.NewestTitles(ctx, newestLimit)
	if err != nil {
		return entities.Table{}, fmt.Errorf("newest titles: %w", err)
	}
	t := f.table(TableNewest, "col_title", "col_year", "col_rating", "col_duration")
	for _, td := range titles {
		t.Rows = append(t.Rows, []string{td.Name, f.year(td.ReleaseYear), f.orUnknown(td.Rating), f.duration(td)})
	}
	return t, nil
}

func (s *ReportService) countriesTable(ctx context.Context, f *tableFormatter) (entities.Table, error) {
	countries, err := s.repo.TopCountries(ctx, countriesLimit)
	if err != nil {
		return entities.Table{}, fmt.Errorf("top countries: %w", err)
	}
	t := f.table(TableCountries, "col_country", "col_count")
	for _, c := range countries {
		t.Rows = append(t.Rows, []string{c.Country, f.count(c.Count)})
	}
	return t, nil
}

func (s *ReportService) ratingsTable(ctx context.Context, f *tableFormatter) (entities.Table, error) {
	stats, err := s.repo.RatingDistribution(ctx)
	if err != nil {
		return entities.Table{}, fmt.Errorf("rating distribution: %w", err)
	}
	t := f.table(TableRatings, "col_rating", "col_count", "col_peak_year")
	for _, r := range stats {
		t.Rows = append(t.Rows, []string{r.Rating, f.count(r.Count), strconv.Itoa(r.PeakYear)})
	}
	return t, nil
}

// additionsTable merges the per-kind yearly counts; years with no film or no
// series show 0 for the missing kind.
func (s *ReportService) additionsTable(ctx context.Context, f *tableFormatter) (entities.Table, error) {
	films, err := s.repo.AdditionsByYear(ctx, domain.KindMovie)
	if err != nil {
		return entities.Table{}, fmt.Errorf("film additions: %w", err)
	}
	series, err := s.repo.AdditionsByYear(ctx, domain.KindSeries)
	if err != nil {
		return entities.Table{}, fmt.Errorf("series additions: %w", err)
	}

	type tally struct{ films, series int64 }
	byYear := make(map[int]*tally)
	get := func(year int) *tally {
		if byYear[year] == nil {
			byYear[year] = &tally{}
		}
		return byYear[year]
	}
	for _, yc := range films {
		if yc.Year > 0 {
			get(yc.Year).films += yc.Count
		}
	}
	for _, yc := range series {
		if yc.Year > 0 {
			get(yc.Year).series += yc.Count
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	t := f.table(TableAdditions, "col_year", "col_films", "col_series", "col_total")
	for _, y := range years {
		c := byYear[y]
		t.Rows = append(t.Rows, []string{strconv.Itoa(y), f.count(c.films), f.count(c.series), f.count(c.films + c.series)})
	}
	return t, nil
}

func (s *ReportService) directorsTable(ctx context.Context, f *tableFormatter) (entities.Table, error) {
	credits, err := s.repo.DirectorCredits(ctx)
	if err != nil {
		return entities.Table{}, fmt.Errorf("director credits: %w", err)
	}
	t := f.table(TableDirectors, "col_director", "col_count")
	for _, d := range TopDirectors(credits, directorsLimit) {
		t.Rows = append(t.Rows, []string{d.Name, f.count(d.Count)})
	}
	return t, nil
}

func (s *ReportService) longestTable(ctx context.Context, f *tableFormatter) (entities.Table, error) {
	t := f.table(TableLongest, "col_title", "col_kind", "col_duration")
	for _, kind := range []domain.Kind{domain.KindMovie, domain.KindSeries} {
		titles, err := s.repo.LongestTitles(ctx, kind, longestLimit)
		if err != nil {
			return entities.Table{}, fmt.Errorf("longest %s: %w", kind, err)
		}
		for _, td := range titles {
			t.Rows = append(t.Rows, []string{td.Name, f.kind(td.Kind), f.duration(td)})
		}
	}
	return t, nil
}

// DirectorCount is one director with the number of titles credited to them.
type DirectorCount struct {
	Name  string
	Count int64
}

// TopDirectors splits comma-separated director credits, counts each trimmed
// name, and returns the limit most credited (ties by name).
func TopDirectors(credits []string, limit int) []DirectorCount {
	counts := make(map[string]int64)
	for _, credit := range credits {
		for _, name := range strings.Split(credit, ",") {
			if name = strings.TrimSpace(name); name != "" {
				counts[name]++
			}
		}
	}

	out := make([]DirectorCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, DirectorCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// tableFormatter holds the per-request locale state used to format cells.
type tableFormatter struct {
	locale  string
	printer *message.Printer
	tr      output.T
	seasons *SeasonFormatter
}

func (f *tableFormatter) table(id string, columns ...string) entities.Table {
	prefix := "table." + id + "."
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = f.tr.T(f.locale, prefix+col, nil)
	}
	return entities.Table{
		ID:      id,
		Caption: f.tr.T(f.locale, prefix+"caption", nil),
		Headers: headers,
		Rows:    [][]string{},
	}
}

// duration formats films as "<n> min." and routes series through the
// season formatter.
func (f *tableFormatter) duration(td entities.TitleDuration) string {
	switch td.Kind {
	case domain.KindSeries:
		return f.seasons.Format(f.locale, td.Seasons)
	case domain.KindMovie:
		if td.Minutes == nil {
			return f.unknown()
		}
		return f.tr.T(f.locale, "duration.minutes", map[string]any{"Minutes": *td.Minutes})
	default:
		return f.unknown()
	}
}

func (f *tableFormatter) kind(k domain.Kind) string {
	switch k {
	case domain.KindMovie:
		return f.tr.T(f.locale, "kind.movie", nil)
	case domain.KindSeries:
		return f.tr.T(f.locale, "kind.series", nil)
	default:
		return string(k)
	}
}

func (f *tableFormatter) count(n int64) string {
	return f.printer.Sprintf("%d", n)
}

func (f *tableFormatter) year(y int) string {
	if y <= 0 {
		return f.unknown()
	}
	return strconv.Itoa(y)
}

func (f *tableFormatter) orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return f.unknown()
	}
	return s
}

func (f *tableFormatter) unknown() string {
	return f.tr.T(f.locale, unknownKey, nil)
}
