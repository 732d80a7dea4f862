package i18n

import (
	"embed"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"catalogstats/internal/logging"
	"catalogstats/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

// Message files, loaded in order. Nested TOML tables flatten to dotted ids
// ("table.newest.caption").
var localeFiles = []string{"active.ru.toml", "active.en.toml"}

// Ensure Translator implements the output.T port.
var _ output.T = (*Translator)(nil)

// Translator wraps a go-i18n Bundle and caches one Localizer per bundled
// language.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	languages       []language.Tag

	localizers sync.Map // locale string -> *i18n.Localizer
}

// NewTranslator builds a Translator over the embedded message files with
// defaultLocale (e.g. "ru") as the fallback language. An unparseable
// defaultLocale falls back to Russian.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		logging.Warn().Str("locale", defaultLocale).Err(err).Msg("i18n: invalid default locale, using ru")
		tag = language.Russian
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logging.Error().Str("file", file).Err(err).Msg("i18n: failed to load message file")
		}
	}

	languages := []language.Tag{tag}
	for _, t := range bundle.LanguageTags() {
		if t != tag {
			languages = append(languages, t)
		}
	}
	logging.Debug().Interface("languages", languages).Msg("i18n: bundles loaded")

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		languages:       languages,
	}
}

// T renders key for locale with optional template data. Lookup falls back to
// the default language, then to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	msg, err := t.localizer(locale).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		logging.Warn().Str("key", key).Str("locale", locale).Err(err).Msg("i18n: localize failed")
		return key
	}
	return msg
}

func (t *Translator) localizer(locale string) *i18n.Localizer {
	if l, ok := t.localizers.Load(locale); ok {
		return l.(*i18n.Localizer)
	}
	prefs := []string{t.defaultLanguage.String()}
	if locale != "" {
		prefs = append([]string{locale}, prefs...)
	}
	l := i18n.NewLocalizer(t.bundle, prefs...)
	if !t.bundled(locale) {
		// Only bundled locales are cached; raw header values are unbounded.
		return l
	}
	cached, _ := t.localizers.LoadOrStore(locale, l)
	return cached.(*i18n.Localizer)
}

func (t *Translator) bundled(locale string) bool {
	for _, tag := range t.languages {
		if tag.String() == locale {
			return true
		}
	}
	return false
}

// Languages returns the default language followed by every other bundled one.
func (t *Translator) Languages() []language.Tag {
	out := make([]language.Tag, len(t.languages))
	copy(out, t.languages)
	return out
}
