package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestTranslatorLooksUpNestedKeys(t *testing.T) {
	tr := NewTranslator("ru")

	assert.Equal(t, "неизвестно", tr.T("ru", "unknown", nil))
	assert.Equal(t, "сезонов", tr.T("ru", "noun.season_many", nil))
	assert.Equal(t, "Название", tr.T("ru", "table.newest.col_title", nil))
	assert.Equal(t, "seasons", tr.T("en", "noun.season_other", nil))
}

func TestTranslatorTemplateData(t *testing.T) {
	tr := NewTranslator("ru")

	assert.Equal(t, "90 мин.", tr.T("ru", "duration.minutes", map[string]any{"Minutes": 90}))
	assert.Equal(t, "90 min.", tr.T("en", "duration.minutes", map[string]any{"Minutes": 90}))
}

func TestTranslatorFallbacks(t *testing.T) {
	tr := NewTranslator("ru")

	// Unknown locale falls back to the default bundle.
	assert.Equal(t, "неизвестно", tr.T("de", "unknown", nil))
	// Empty locale uses the default bundle.
	assert.Equal(t, "Фильм", tr.T("", "kind.movie", nil))
	// Missing key returns the key itself.
	assert.Equal(t, "no.such.key", tr.T("en", "no.such.key", nil))
	assert.Equal(t, "", tr.T("en", "", nil))
}

func TestTranslatorLanguages(t *testing.T) {
	tr := NewTranslator("ru")

	langs := tr.Languages()
	require.NotEmpty(t, langs)
	assert.Equal(t, language.Russian, langs[0])
	assert.Contains(t, langs, language.English)
}

func TestTranslatorInvalidDefaultLocale(t *testing.T) {
	tr := NewTranslator("not a locale!")
	assert.Equal(t, language.Russian, tr.Languages()[0])
}

func TestTranslatorCachesBundledLocalizers(t *testing.T) {
	tr := NewTranslator("ru")

	assert.Equal(t, "Фильм", tr.T("ru", "kind.movie", nil))
	assert.Equal(t, "Movie", tr.T("en", "kind.movie", nil))
	assert.Equal(t, "Movie", tr.T("en-US,en;q=0.9", "kind.movie", nil))

	cached := 0
	tr.localizers.Range(func(_, _ any) bool {
		cached++
		return true
	})
	assert.Equal(t, 2, cached)
}
