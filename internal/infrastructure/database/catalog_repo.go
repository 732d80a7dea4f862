package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"catalogstats/internal/domain"
	"catalogstats/internal/domain/entities"
	"catalogstats/internal/metrics"
	"catalogstats/internal/ports/output"
)

var _ output.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository implements output.CatalogRepository over database/sql for
// both PostgreSQL and SQLite.
type CatalogRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewCatalogRepository creates a CatalogRepository.
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db.SQL, dialect: db.Dialect}
}

func (r *CatalogRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping catalog: %w", err)
	}
	return nil
}

const titleDurationColumns = `t.title, COALESCE(t.release_year, 0), COALESCE(r.name, ''), ct.name, t.duration_minutes, t.duration_seasons`

// NewestTitles lists rated titles with a known duration, newest release first.
func (r *CatalogRepository) NewestTitles(ctx context.Context, limit int) (out []entities.TitleDuration, err error) {
	defer observe("newest_titles", time.Now(), &err)

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(`
		SELECT `+titleDurationColumns+`
		FROM titles t
		JOIN ratings r ON r.id = t.rating_id
		JOIN content_types ct ON ct.id = t.type_id
		WHERE (ct.name = ? AND t.duration_minutes IS NOT NULL)
		   OR (ct.name = ? AND t.duration_seasons IS NOT NULL)
		ORDER BY (t.release_year IS NULL), t.release_year DESC, t.title
		LIMIT ?`),
		string(domain.KindMovie), string(domain.KindSeries), limit)
	if err != nil {
		return nil, fmt.Errorf("query newest titles: %w", err)
	}
	return scanTitleDurations(rows)
}

func (r *CatalogRepository) LongestTitles(ctx context.Context, kind domain.Kind, limit int) (out []entities.TitleDuration, err error) {
	defer observe("longest_titles", time.Now(), &err)

	column := "t.duration_minutes"
	if kind == domain.KindSeries {
		column = "t.duration_seasons"
	}
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(`
		SELECT `+titleDurationColumns+`
		FROM titles t
		JOIN content_types ct ON ct.id = t.type_id
		LEFT JOIN ratings r ON r.id = t.rating_id
		WHERE ct.name = ? AND `+column+` IS NOT NULL
		ORDER BY `+column+` DESC, t.title
		LIMIT ?`),
		string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("query longest titles: %w", err)
	}
	return scanTitleDurations(rows)
}

func scanTitleDurations(rows *sql.Rows) ([]entities.TitleDuration, error) {
	defer rows.Close()

	out := []entities.TitleDuration{}
	for rows.Next() {
		var (
			td      entities.TitleDuration
			kind    string
			minutes sql.NullInt64
			seasons sql.NullInt64
		)
		if err := rows.Scan(&td.Name, &td.ReleaseYear, &td.Rating, &kind, &minutes, &seasons); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		td.Kind = domain.Kind(kind)
		td.Minutes = nullIntToPtr(minutes)
		td.Seasons = nullIntToPtr(seasons)
		out = append(out, td)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) TopCountries(ctx context.Context, limit int) (out []entities.CountryCount, err error) {
	defer observe("top_countries", time.Now(), &err)

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(`
		SELECT c.name, COUNT(t.show_id) AS total
		FROM countries c
		JOIN titles t ON t.country_id = c.id
		GROUP BY c.id, c.name
		ORDER BY total DESC, c.name
		LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("query top countries: %w", err)
	}
	defer rows.Close()

	out = []entities.CountryCount{}
	for rows.Next() {
		var c entities.CountryCount
		if err := rows.Scan(&c.Country, &c.Count); err != nil {
			return nil, fmt.Errorf("scan country count: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate country counts: %w", err)
	}
	return out, nil
}

// RatingDistribution counts titles per rating and finds each rating's peak
// release year. Ties on the peak go to the most recent year.
func (r *CatalogRepository) RatingDistribution(ctx context.Context) (out []entities.RatingStat, err error) {
	defer observe("rating_distribution", time.Now(), &err)

	rows, err := r.db.QueryContext(ctx, `
		WITH per_year AS (
			SELECT rating_id, release_year, COUNT(*) AS n
			FROM titles
			WHERE rating_id IS NOT NULL AND release_year IS NOT NULL
			GROUP BY rating_id, release_year
		), peaks AS (
			SELECT rating_id, release_year,
			       ROW_NUMBER() OVER (PARTITION BY rating_id ORDER BY n DESC, release_year DESC) AS rn
			FROM per_year
		)
		SELECT r.name, COUNT(t.show_id) AS total, COALESCE(MAX(p.release_year), 0) AS peak_year
		FROM ratings r
		JOIN titles t ON t.rating_id = r.id
		LEFT JOIN peaks p ON p.rating_id = r.id AND p.rn = 1
		GROUP BY r.id, r.name
		ORDER BY total DESC, r.name`)
	if err != nil {
		return nil, fmt.Errorf("query rating distribution: %w", err)
	}
	defer rows.Close()

	out = []entities.RatingStat{}
	for rows.Next() {
		var s entities.RatingStat
		if err := rows.Scan(&s.Rating, &s.Count, &s.PeakYear); err != nil {
			return nil, fmt.Errorf("scan rating stat: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating stats: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) AdditionsByYear(ctx context.Context, kind domain.Kind) (out []entities.YearCount, err error) {
	defer observe("additions_by_year", time.Now(), &err)

	year := r.dialect.YearOf("t.date_added")
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(`
		SELECT `+year+` AS year_added, COUNT(*)
		FROM titles t
		JOIN content_types ct ON ct.id = t.type_id
		WHERE ct.name = ? AND t.date_added IS NOT NULL
		GROUP BY year_added
		ORDER BY year_added DESC`), string(kind))
	if err != nil {
		return nil, fmt.Errorf("query additions by year: %w", err)
	}
	defer rows.Close()

	out = []entities.YearCount{}
	for rows.Next() {
		var (
			y sql.NullInt64
			c entities.YearCount
		)
		if err := rows.Scan(&y, &c.Count); err != nil {
			return nil, fmt.Errorf("scan year count: %w", err)
		}
		if !y.Valid || y.Int64 <= 0 {
			continue
		}
		c.Year = int(y.Int64)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate year counts: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) DirectorCredits(ctx context.Context) (out []string, err error) {
	defer observe("director_credits", time.Now(), &err)

	rows, err := r.db.QueryContext(ctx, `
		SELECT director FROM titles
		WHERE director IS NOT NULL AND director <> ''`)
	if err != nil {
		return nil, fmt.Errorf("query director credits: %w", err)
	}
	defer rows.Close()

	out = []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan director: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate directors: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) Summary(ctx context.Context) (s entities.CatalogSummary, err error) {
	defer observe("summary", time.Now(), &err)

	var maxSeasons sql.NullInt64
	err = r.db.QueryRowContext(ctx, r.dialect.Rebind(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN ct.name = ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN ct.name = ? THEN 1 ELSE 0 END), 0),
		       MAX(CASE WHEN ct.name = ? THEN t.duration_seasons END)
		FROM titles t
		JOIN content_types ct ON ct.id = t.type_id`),
		string(domain.KindMovie), string(domain.KindSeries), string(domain.KindSeries),
	).Scan(&s.Titles, &s.Films, &s.Series, &maxSeasons)
	if err != nil {
		return entities.CatalogSummary{}, fmt.Errorf("query summary: %w", err)
	}
	s.MaxSeasons = nullIntToPtr(maxSeasons)
	return s, nil
}

func (r *CatalogRepository) ContentTypes(ctx context.Context) ([]entities.Reference, error) {
	return r.references(ctx, "content_types")
}

func (r *CatalogRepository) Countries(ctx context.Context) ([]entities.Reference, error) {
	return r.references(ctx, "countries")
}

func (r *CatalogRepository) Ratings(ctx context.Context) ([]entities.Reference, error) {
	return r.references(ctx, "ratings")
}

// referenceTables whitelists the lookup tables that are spliced into SQL.
var referenceTables = map[string]bool{"content_types": true, "countries": true, "ratings": true}

func (r *CatalogRepository) references(ctx context.Context, table string) (out []entities.Reference, err error) {
	defer observe(table, time.Now(), &err)

	if !referenceTables[table] {
		return nil, fmt.Errorf("unknown reference table %q", table)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM `+table+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	out = []entities.Reference{}
	for rows.Next() {
		var ref entities.Reference
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

// UpsertTitles writes titles in a single transaction, keyed by show_id.
func (r *CatalogRepository) UpsertTitles(ctx context.Context, titles []entities.Title) (n int, err error) {
	defer observe("upsert_titles", time.Now(), &err)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	upsert, err := tx.PrepareContext(ctx, r.dialect.Rebind(`
		INSERT INTO titles (
			show_id, title, type_id, rating_id, country_id, release_year,
			duration_minutes, duration_seasons, director, cast_members,
			date_added, listed_in, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (show_id) DO UPDATE SET
			title = excluded.title,
			type_id = excluded.type_id,
			rating_id = excluded.rating_id,
			country_id = excluded.country_id,
			release_year = excluded.release_year,
			duration_minutes = excluded.duration_minutes,
			duration_seasons = excluded.duration_seasons,
			director = excluded.director,
			cast_members = excluded.cast_members,
			date_added = excluded.date_added,
			listed_in = excluded.listed_in,
			description = excluded.description`))
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer upsert.Close()

	refs := newRefCache(tx, r.dialect)
	perKind := make(map[domain.Kind]int)
	for i := range titles {
		t := &titles[i]

		typeID, err := refs.id(ctx, "content_types", string(t.Kind))
		if err != nil {
			return 0, err
		}
		ratingID, err := refs.id(ctx, "ratings", t.Rating)
		if err != nil {
			return 0, err
		}
		countryID, err := refs.id(ctx, "countries", t.Country)
		if err != nil {
			return 0, err
		}

		_, err = upsert.ExecContext(ctx,
			t.ShowID, t.Name, typeID, idArg(ratingID), idArg(countryID), yearArg(t.ReleaseYear),
			ptrArg(t.Minutes), ptrArg(t.Seasons), stringArg(t.Director), stringArg(t.Cast),
			r.dialect.DateArg(t.DateAdded), stringArg(t.ListedIn), stringArg(t.Description),
		)
		if err != nil {
			return 0, fmt.Errorf("upsert title %s: %w", t.ShowID, err)
		}
		perKind[t.Kind]++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	for kind, count := range perKind {
		metrics.ImportedTitles.WithLabelValues(string(kind)).Add(float64(count))
	}
	return len(titles), nil
}

// refCache resolves lookup names to ids inside one transaction, creating
// missing rows.
type refCache struct {
	tx      *sql.Tx
	dialect Dialect
	ids     map[string]int64
}

func newRefCache(tx *sql.Tx, dialect Dialect) *refCache {
	return &refCache{tx: tx, dialect: dialect, ids: make(map[string]int64)}
}

// id returns 0 for a blank name.
func (c *refCache) id(ctx context.Context, table, name string) (int64, error) {
	if name == "" {
		return 0, nil
	}
	if !referenceTables[table] {
		return 0, fmt.Errorf("unknown reference table %q", table)
	}
	key := table + "\x00" + name
	if id, ok := c.ids[key]; ok {
		return id, nil
	}

	_, err := c.tx.ExecContext(ctx, c.dialect.Rebind(
		`INSERT INTO `+table+` (name) VALUES (?) ON CONFLICT (name) DO NOTHING`), name)
	if err != nil {
		return 0, fmt.Errorf("insert %s %q: %w", table, name, err)
	}
	var id int64
	err = c.tx.QueryRowContext(ctx, c.dialect.Rebind(
		`SELECT id FROM `+table+` WHERE name = ?`), name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("lookup %s %q: %w", table, name, err)
	}
	c.ids[key] = id
	return id, nil
}

func observe(query string, start time.Time, err *error) {
	metrics.ObserveQuery(query, start, *err)
}
