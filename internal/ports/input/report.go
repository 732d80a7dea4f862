package input

import (
	"context"
	"io"

	"catalogstats/internal/domain/entities"
)

type ReportUseCase interface {
	BuildReport(ctx context.Context, locale string) (*entities.Report, error)
}

// ImportResult summarizes one CSV import run.
type ImportResult struct {
	Read     int `json:"read"`
	Written  int `json:"written"`
	Rejected int `json:"rejected"`
}

type ImportUseCase interface {
	Import(ctx context.Context, r io.Reader) (ImportResult, error)
}

// SeasonFormatter renders a season count as a localized phrase.
type SeasonFormatter interface {
	Format(locale string, count any) string
}
