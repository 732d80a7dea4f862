package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogstats/internal/domain"
	"catalogstats/internal/domain/entities"
	"catalogstats/internal/infrastructure/i18n"
)

type fakeCatalog struct {
	summary   entities.CatalogSummary
	newest    []entities.TitleDuration
	countries []entities.CountryCount
	ratings   []entities.RatingStat
	additions map[domain.Kind][]entities.YearCount
	directors []string
	longest   map[domain.Kind][]entities.TitleDuration
	refs      []entities.Reference
	err       error
}

func (f *fakeCatalog) NewestTitles(_ context.Context, limit int) ([]entities.TitleDuration, error) {
	if len(f.newest) > limit {
		return f.newest[:limit], f.err
	}
	return f.newest, f.err
}

func (f *fakeCatalog) TopCountries(context.Context, int) ([]entities.CountryCount, error) {
	return f.countries, f.err
}

func (f *fakeCatalog) RatingDistribution(context.Context) ([]entities.RatingStat, error) {
	return f.ratings, f.err
}

func (f *fakeCatalog) AdditionsByYear(_ context.Context, kind domain.Kind) ([]entities.YearCount, error) {
	return f.additions[kind], f.err
}

func (f *fakeCatalog) DirectorCredits(context.Context) ([]string, error) {
	return f.directors, f.err
}

func (f *fakeCatalog) LongestTitles(_ context.Context, kind domain.Kind, _ int) ([]entities.TitleDuration, error) {
	return f.longest[kind], f.err
}

func (f *fakeCatalog) Summary(context.Context) (entities.CatalogSummary, error) {
	return f.summary, nil
}

func (f *fakeCatalog) ContentTypes(context.Context) ([]entities.Reference, error) { return f.refs, nil }
func (f *fakeCatalog) Countries(context.Context) ([]entities.Reference, error)    { return f.refs, nil }
func (f *fakeCatalog) Ratings(context.Context) ([]entities.Reference, error)      { return f.refs, nil }

func intPtr(n int) *int { return &n }

func sampleCatalog() *fakeCatalog {
	return &fakeCatalog{
		summary: entities.CatalogSummary{Titles: 6, Films: 3, Series: 3, MaxSeasons: intPtr(12)},
		newest: []entities.TitleDuration{
			{Name: "Night Train", ReleaseYear: 2021, Rating: "TV-MA", Kind: domain.KindSeries, Seasons: intPtr(2)},
			{Name: "Quiet Field", ReleaseYear: 2021, Rating: "PG", Kind: domain.KindMovie, Minutes: intPtr(94)},
			{Name: "Old Harbor", ReleaseYear: 2019, Rating: "TV-14", Kind: domain.KindSeries, Seasons: intPtr(11)},
			{Name: "Short One", ReleaseYear: 2018, Rating: "", Kind: domain.KindSeries, Seasons: intPtr(21)},
		},
		countries: []entities.CountryCount{{Country: "Russia", Count: 4}, {Country: "France", Count: 2}},
		ratings: []entities.RatingStat{
			{Rating: "TV-MA", Count: 3, PeakYear: 2021},
			{Rating: "PG", Count: 1, PeakYear: 0},
		},
		additions: map[domain.Kind][]entities.YearCount{
			domain.KindMovie:  {{Year: 2020, Count: 2}, {Year: 2021, Count: 1}},
			domain.KindSeries: {{Year: 2021, Count: 3}, {Year: 2019, Count: 1}, {Year: 0, Count: 9}},
		},
		directors: []string{"Anna Ivanova, Boris Petrov", "Anna Ivanova", " ,Clara Smith ", "Boris Petrov"},
		longest: map[domain.Kind][]entities.TitleDuration{
			domain.KindMovie:  {{Name: "Epic", Kind: domain.KindMovie, Minutes: intPtr(312)}},
			domain.KindSeries: {{Name: "Saga", Kind: domain.KindSeries, Seasons: intPtr(12)}},
		},
		refs: []entities.Reference{{ID: 1, Name: "x"}},
	}
}

func newTestReportService(repo *fakeCatalog) *ReportService {
	tr := i18n.NewTranslator("ru")
	locales := NewLocaleResolver(tr)
	return NewReportService(repo, tr, locales, NewSeasonFormatter(tr, locales))
}

func tableByID(t *testing.T, r *entities.Report, id string) entities.Table {
	t.Helper()
	for _, tbl := range r.Tables {
		if tbl.ID == id {
			return tbl
		}
	}
	t.Fatalf("table %q not found", id)
	return entities.Table{}
}

func TestBuildReportNewestFormatsDurations(t *testing.T) {
	svc := newTestReportService(sampleCatalog())

	report, err := svc.BuildReport(context.Background(), "ru")
	require.NoError(t, err)
	assert.Equal(t, "ru", report.Locale)
	require.Len(t, report.Tables, 6)

	newest := tableByID(t, report, TableNewest)
	assert.Equal(t, []string{"Название", "Год выпуска", "Рейтинг", "Длительность"}, newest.Headers)
	assert.Equal(t, [][]string{
		{"Night Train", "2021", "TV-MA", "2 сезона"},
		{"Quiet Field", "2021", "PG", "94 мин."},
		{"Old Harbor", "2019", "TV-14", "11 сезонов"},
		{"Short One", "2018", "неизвестно", "21 сезон"},
	}, newest.Rows)
}

func TestBuildReportEnglish(t *testing.T) {
	svc := newTestReportService(sampleCatalog())

	report, err := svc.BuildReport(context.Background(), "en-US,en;q=0.9")
	require.NoError(t, err)
	assert.Equal(t, "en", report.Locale)

	newest := tableByID(t, report, TableNewest)
	assert.Equal(t, "2 seasons", newest.Rows[0][3])
	assert.Equal(t, "94 min.", newest.Rows[1][3])

	longest := tableByID(t, report, TableLongest)
	assert.Equal(t, [][]string{
		{"Epic", "Movie", "312 min."},
		{"Saga", "TV Show", "12 seasons"},
	}, longest.Rows)
}

func TestBuildReportAdditionsMergesKinds(t *testing.T) {
	svc := newTestReportService(sampleCatalog())

	report, err := svc.BuildReport(context.Background(), "ru")
	require.NoError(t, err)

	additions := tableByID(t, report, TableAdditions)
	assert.Equal(t, [][]string{
		{"2021", "1", "3", "4"},
		{"2020", "2", "0", "2"},
		{"2019", "0", "1", "1"},
	}, additions.Rows)
}

func TestBuildReportRatingsAndCountries(t *testing.T) {
	svc := newTestReportService(sampleCatalog())

	report, err := svc.BuildReport(context.Background(), "ru")
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"TV-MA", "3", "2021"}, {"PG", "1", "0"}}, tableByID(t, report, TableRatings).Rows)
	assert.Equal(t, [][]string{{"Russia", "4"}, {"France", "2"}}, tableByID(t, report, TableCountries).Rows)
	assert.Equal(t, [][]string{
		{"Anna Ivanova", "2"},
		{"Boris Petrov", "2"},
		{"Clara Smith", "1"},
	}, tableByID(t, report, TableDirectors).Rows)
}

func TestBuildReportLongestRussian(t *testing.T) {
	svc := newTestReportService(sampleCatalog())

	report, err := svc.BuildReport(context.Background(), "ru")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Epic", "Фильм", "312 мин."},
		{"Saga", "Сериал", "12 сезонов"},
	}, tableByID(t, report, TableLongest).Rows)
}

func TestBuildReportEmptyCatalog(t *testing.T) {
	svc := newTestReportService(&fakeCatalog{})

	_, err := svc.BuildReport(context.Background(), "ru")
	require.ErrorIs(t, err, domain.ErrCatalogEmpty)
	assert.Equal(t, "catalog_empty", domain.Code(err))
}

func TestBuildReportPropagatesStoreErrors(t *testing.T) {
	repo := sampleCatalog()
	repo.err = errors.New("connection reset")
	svc := newTestReportService(repo)

	_, err := svc.BuildReport(context.Background(), "ru")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newest titles")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestTopDirectors(t *testing.T) {
	got := TopDirectors([]string{"B, A", "A", "C", "", " , "}, 2)
	assert.Equal(t, []DirectorCount{{Name: "A", Count: 2}, {Name: "B", Count: 1}}, got)

	assert.Empty(t, TopDirectors(nil, 5))
}

func TestDurationUnknownKinds(t *testing.T) {
	tr := i18n.NewTranslator("ru")
	f := &tableFormatter{locale: "ru", tr: tr, seasons: NewSeasonFormatter(tr, NewLocaleResolver(tr))}

	assert.Equal(t, "неизвестно", f.duration(entities.TitleDuration{Kind: domain.KindMovie}))
	assert.Equal(t, "неизвестно", f.duration(entities.TitleDuration{Kind: domain.KindSeries}))
	assert.Equal(t, "неизвестно", f.duration(entities.TitleDuration{Kind: "Podcast", Minutes: intPtr(3)}))
}
