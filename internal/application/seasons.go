package application

import (
	"strconv"

	"catalogstats/internal/domain/plural"
	"catalogstats/internal/ports/input"
	"catalogstats/internal/ports/output"
)

var _ input.SeasonFormatter = (*SeasonFormatter)(nil)

const unknownKey = "unknown"

// SeasonFormatter renders a season count as "<n> <noun>" with the noun
// inflected for the locale. Both the template layer and the report row
// formatter go through it.
type SeasonFormatter struct {
	translator output.T
	locales    *LocaleResolver
}

func NewSeasonFormatter(translator output.T, locales *LocaleResolver) *SeasonFormatter {
	return &SeasonFormatter{
		translator: translator,
		locales:    locales,
	}
}

// Format never fails: absent, malformed or negative counts render as the
// locale's "unknown" string.
func (f *SeasonFormatter) Format(locale string, count any) string {
	// Both the rule and the messages use the resolved bundle language, so the
	// selected noun form always exists in the message file that answers.
	tag := f.locales.Resolve(locale)
	locale = tag.String()

	n, ok := plural.ParseCount(count)
	if !ok {
		return f.translator.T(locale, unknownKey, nil)
	}
	form := plural.RuleFor(tag)(n)
	noun := f.translator.T(locale, "noun.season_"+string(form), nil)
	return strconv.Itoa(n) + " " + noun
}

// For binds the formatter to a locale, giving the single-argument function
// the template layer registers.
func (f *SeasonFormatter) For(locale string) func(any) string {
	return func(count any) string {
		return f.Format(locale, count)
	}
}
