// Package plural selects the grammatical number form of a noun for a count.
//
// Forms follow the CLDR category names. Only the categories the catalog needs
// are modelled: East Slavic languages use one/few/many, everything else falls
// back to a binary one/other split.
package plural

import (
	"golang.org/x/text/language"
)

// Form is a plural category.
type Form string

const (
	One   Form = "one"
	Few   Form = "few"
	Many  Form = "many"
	Other Form = "other"
)

// Rule maps a validated, non-negative count to its plural form.
type Rule func(n int) Form

// EastSlavic is the three-way rule shared by Russian, Ukrainian and Belarusian.
// The 11..14 check comes first: it overrides the last-digit rule for the teens.
func EastSlavic(n int) Form {
	lastDigit := n % 10
	lastTwo := n % 100

	switch {
	case lastTwo >= 11 && lastTwo <= 14:
		return Many
	case lastDigit == 1:
		return One
	case lastDigit >= 2 && lastDigit <= 4:
		return Few
	default:
		return Many
	}
}

// OneOther is the singular/plural split used by English and most Western
// European languages.
func OneOther(n int) Form {
	if n == 1 {
		return One
	}
	return Other
}

var eastSlavic = map[language.Base]struct{}{
	mustBase("ru"): {},
	mustBase("uk"): {},
	mustBase("be"): {},
}

// RuleFor returns the rule for the base language of tag.
func RuleFor(tag language.Tag) Rule {
	base, _ := tag.Base()
	if _, ok := eastSlavic[base]; ok {
		return EastSlavic
	}
	return OneOther
}

func mustBase(s string) language.Base {
	return language.MustParseBase(s)
}
