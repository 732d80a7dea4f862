package web

import (
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"catalogstats/internal/ports/input"
	"catalogstats/internal/ports/output"
)

// FuncRegistry builds the per-request template function map. Every function
// is bound to the request locale, so templates never pass it explicitly.
type FuncRegistry struct {
	seasons input.SeasonFormatter
	tr      output.T
}

func NewFuncRegistry(seasons input.SeasonFormatter, tr output.T) *FuncRegistry {
	return &FuncRegistry{seasons: seasons, tr: tr}
}

// For returns the functions for locale:
//
//	formatSeasons  count → "<n> <noun>" or the unknown string
//	t              message key → localized text
//	formatNumber   integer → digits grouped for the locale
func (r *FuncRegistry) For(locale string) template.FuncMap {
	printer := message.NewPrinter(language.Make(locale))
	return template.FuncMap{
		"formatSeasons": func(count any) string {
			return r.seasons.Format(locale, count)
		},
		"t": func(key string) string {
			return r.tr.T(locale, key, nil)
		},
		"formatNumber": func(n int64) string {
			return printer.Sprintf("%d", n)
		},
	}
}
