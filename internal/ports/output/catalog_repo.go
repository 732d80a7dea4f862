package output

import (
	"context"

	"catalogstats/internal/domain"
	"catalogstats/internal/domain/entities"
)

// CatalogReader runs the report aggregations against the catalog store.
type CatalogReader interface {
	NewestTitles(ctx context.Context, limit int) ([]entities.TitleDuration, error)
	TopCountries(ctx context.Context, limit int) ([]entities.CountryCount, error)
	RatingDistribution(ctx context.Context) ([]entities.RatingStat, error)
	AdditionsByYear(ctx context.Context, kind domain.Kind) ([]entities.YearCount, error)
	DirectorCredits(ctx context.Context) ([]string, error)
	LongestTitles(ctx context.Context, kind domain.Kind, limit int) ([]entities.TitleDuration, error)
	Summary(ctx context.Context) (entities.CatalogSummary, error)
	ContentTypes(ctx context.Context) ([]entities.Reference, error)
	Countries(ctx context.Context) ([]entities.Reference, error)
	Ratings(ctx context.Context) ([]entities.Reference, error)
}

// CatalogWriter persists imported titles.
type CatalogWriter interface {
	// UpsertTitles writes titles in one transaction, creating lookup rows on
	// demand, and returns the number of rows written.
	UpsertTitles(ctx context.Context, titles []entities.Title) (int, error)
}

// CatalogRepository is the full store contract.
type CatalogRepository interface {
	CatalogReader
	CatalogWriter
	Ping(ctx context.Context) error
}
