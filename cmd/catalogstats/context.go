package main

import (
	"context"
	"strings"
	"sync"

	"catalogstats/internal/application"
	"catalogstats/internal/config"
	"catalogstats/internal/infrastructure/database"
	"catalogstats/internal/infrastructure/i18n"
	"catalogstats/internal/logging"
)

type commandContext struct {
	databaseFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(databaseFlag *string) *commandContext {
	return &commandContext{databaseFlag: databaseFlag}
}

// ensureConfig loads the configuration once and initializes logging from it.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.configErr = err
			return
		}
		if c.databaseFlag != nil {
			if url := strings.TrimSpace(*c.databaseFlag); url != "" {
				if _, _, err := database.ParseDSN(url); err != nil {
					c.configErr = err
					return
				}
				cfg.DatabaseURL = url
			}
		}
		logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
		c.config = cfg
	})
	return c.config, c.configErr
}

// catalog is the wired application graph shared by the commands.
type catalog struct {
	cfg        *config.Config
	db         *database.DB
	repo       *database.CatalogRepository
	translator *i18n.Translator
	locales    *application.LocaleResolver
	seasons    *application.SeasonFormatter
	reports    *application.ReportService
	importer   *application.ImportService
}

// openCatalog connects to the store, optionally migrating it first.
func (c *commandContext) openCatalog(ctx context.Context, migrate bool) (*catalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, err
		}
	}

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	repo := database.NewCatalogRepository(db)
	tr := i18n.NewTranslator(cfg.Locale)
	locales := application.NewLocaleResolver(tr)
	seasons := application.NewSeasonFormatter(tr, locales)

	return &catalog{
		cfg:        cfg,
		db:         db,
		repo:       repo,
		translator: tr,
		locales:    locales,
		seasons:    seasons,
		reports:    application.NewReportService(repo, tr, locales, seasons),
		importer:   application.NewImportService(repo),
	}, nil
}

func (c *catalog) Close() {
	if err := c.db.Close(); err != nil {
		logging.Warn().Err(err).Msg("close database")
	}
}
