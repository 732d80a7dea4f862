package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogstats/internal/domain"
	"catalogstats/internal/domain/entities"
)

const testCSV = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Quiet Field,Anna Ivanova,,Russia,"September 25, 2021",2020,PG,90 min,Dramas,A quiet film.
s2,TV Show,Night Train,Boris Petrov,,"Russia, France","September 24, 2021",2021,TV-MA,2 Seasons,Thrillers,A long ride.
s3,TV Show,Old Harbor,,,France,"January 2, 2019",2019,TV-14,21 Seasons,Dramas,Waves.
s4,Podcast,Nope,,,,,2020,,,,
`

type cliEnv struct {
	dir string
	dsn string
}

func setupCLIEnv(t *testing.T) cliEnv {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	dsn := "sqlite://" + filepath.Join(dir, "catalog.db")
	t.Setenv("DATABASE_URL", dsn)
	t.Setenv("LOCALE", "ru")
	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("MIGRATE_ON_START", "true")
	return cliEnv{dir: dir, dsn: dsn}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateImportReport(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrations applied")

	csvPath := filepath.Join(env.dir, "titles.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCSV), 0o600))

	out, err = runCLI(t, "import", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Read 4, written 3, rejected 1")

	out, err = runCLI(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Статистика каталога")
	assert.Contains(t, out, "2 сезона")
	assert.Contains(t, out, "21 сезон")
	assert.Contains(t, out, "90 мин.")

	out, err = runCLI(t, "report", "--lang", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "2 seasons")
	assert.Contains(t, out, "21 seasons")
}

func TestReportJSONOutput(t *testing.T) {
	env := setupCLIEnv(t)

	csvPath := filepath.Join(env.dir, "titles.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCSV), 0o600))
	_, err := runCLI(t, "import", csvPath)
	require.NoError(t, err)

	out, err := runCLI(t, "report", "--json", "--lang", "en")
	require.NoError(t, err)

	var report entities.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "en", report.Locale)
	assert.Equal(t, int64(3), report.Summary.Titles)
	require.NotNil(t, report.Summary.MaxSeasons)
	assert.Equal(t, 21, *report.Summary.MaxSeasons)
	assert.Len(t, report.Tables, 6)
}

func TestReportOnEmptyCatalog(t *testing.T) {
	setupCLIEnv(t)

	_, err := runCLI(t, "migrate", "up")
	require.NoError(t, err)

	_, err = runCLI(t, "report")
	assert.ErrorIs(t, err, domain.ErrCatalogEmpty)
}

func TestMigrateDown(t *testing.T) {
	setupCLIEnv(t)

	_, err := runCLI(t, "migrate", "up")
	require.NoError(t, err)

	out, err := runCLI(t, "migrate", "down", "--steps", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Rolled back 1 migration(s)")
}

func TestDatabaseFlagValidation(t *testing.T) {
	setupCLIEnv(t)

	_, err := runCLI(t, "--database-url", "mysql://localhost/x", "report")
	assert.ErrorIs(t, err, domain.ErrUnsupportedDriver)
}

func TestInvalidConfig(t *testing.T) {
	setupCLIEnv(t)
	t.Setenv("LOG_FORMAT", "xml")

	_, err := runCLI(t, "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
