package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogstats/internal/application"
	"catalogstats/internal/domain/entities"
	"catalogstats/internal/infrastructure/i18n"
)

func TestRenderReport(t *testing.T) {
	tr := i18n.NewTranslator("ru")
	r := NewRenderer(tr, application.NewSeasonFormatter(tr, application.NewLocaleResolver(tr)))

	seasons := 12
	report := &entities.Report{
		Locale:  "ru",
		Summary: entities.CatalogSummary{Titles: 3, Films: 2, Series: 1, MaxSeasons: &seasons},
		Tables: []entities.Table{
			{
				ID:      "longest",
				Caption: "Самые длинные фильмы и сериалы",
				Headers: []string{"Название", "Тип", "Длительность"},
				Rows:    [][]string{{"Saga", "Сериал", "12 сезонов"}},
			},
			{ID: "countries", Caption: "Страны", Headers: []string{"Страна", "Количество"}, Rows: [][]string{}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, report))
	out := buf.String()

	assert.Contains(t, out, "Статистика каталога")
	assert.Contains(t, out, "12 сезонов")
	assert.Contains(t, out, "Самые длинные фильмы и сериалы")
	assert.Contains(t, out, "Saga")
	assert.Contains(t, out, "Нет данных")
	assert.True(t, strings.Contains(out, "╭"), "rounded style expected")
}

func TestRenderTableAlignsNumbers(t *testing.T) {
	out := renderTable("", []string{"name", "n"}, [][]string{{"a", "7"}, {"bb", "1,234"}})
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, out, "│     7 │")
	assert.Contains(t, out, "│ 1,234 │")
}

func TestRenderTableEmpty(t *testing.T) {
	assert.Empty(t, renderTable("x", nil, nil))
}

func TestIsNumber(t *testing.T) {
	assert.True(t, isNumber("2021"))
	assert.True(t, isNumber("1 234"))
	assert.True(t, isNumber("1,234"))
	assert.False(t, isNumber(""))
	assert.False(t, isNumber("12 сезонов"))
}
