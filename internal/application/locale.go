package application

import (
	"golang.org/x/text/language"

	"catalogstats/internal/ports/output"
)

// LocaleResolver maps a requested locale onto one of the bundled languages.
// The first bundled language is the fallback.
type LocaleResolver struct {
	languages []language.Tag
	matcher   language.Matcher
}

func NewLocaleResolver(translator output.T) *LocaleResolver {
	langs := translator.Languages()
	if len(langs) == 0 {
		langs = []language.Tag{language.Und}
	}
	return &LocaleResolver{
		languages: langs,
		matcher:   language.NewMatcher(langs),
	}
}

// Resolve accepts a BCP 47 tag or an Accept-Language header value.
func (r *LocaleResolver) Resolve(locale string) language.Tag {
	if locale == "" {
		return r.languages[0]
	}
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return r.languages[0]
	}
	_, idx, conf := r.matcher.Match(tags...)
	if conf == language.No {
		return r.languages[0]
	}
	return r.languages[idx]
}
