package plural

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestEastSlavic(t *testing.T) {
	cases := []struct {
		n    int
		want Form
	}{
		{0, Many},
		{1, One},
		{2, Few},
		{3, Few},
		{4, Few},
		{5, Many},
		{10, Many},
		{11, Many},
		{12, Many},
		{13, Many},
		{14, Many},
		{15, Many},
		{21, One},
		{22, Few},
		{25, Many},
		{101, One},
		{111, Many},
		{112, Many},
		{114, Many},
		{121, One},
		{1004, Few},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EastSlavic(tc.n), "n=%d", tc.n)
	}
}

func TestEastSlavicSweep(t *testing.T) {
	for n := 0; n <= 10000; n++ {
		got := EastSlavic(n)
		lastDigit, lastTwo := n%10, n%100

		switch {
		case lastTwo >= 11 && lastTwo <= 14:
			if got != Many {
				t.Fatalf("n=%d: teens must be many, got %s", n, got)
			}
		case lastDigit == 1:
			if got != One {
				t.Fatalf("n=%d: want one, got %s", n, got)
			}
		case lastDigit >= 2 && lastDigit <= 4:
			if got != Few {
				t.Fatalf("n=%d: want few, got %s", n, got)
			}
		default:
			if got != Many {
				t.Fatalf("n=%d: want many, got %s", n, got)
			}
		}

		if EastSlavic(n) != got {
			t.Fatalf("n=%d: rule is not deterministic", n)
		}
	}
}

func TestOneOther(t *testing.T) {
	assert.Equal(t, Other, OneOther(0))
	assert.Equal(t, One, OneOther(1))
	assert.Equal(t, Other, OneOther(2))
	assert.Equal(t, Other, OneOther(21))
}

func TestRuleFor(t *testing.T) {
	for _, tag := range []string{"ru", "ru-RU", "uk", "be"} {
		rule := RuleFor(language.MustParse(tag))
		assert.Equal(t, Few, rule(3), tag)
	}
	for _, tag := range []string{"en", "en-GB", "fr", "und"} {
		rule := RuleFor(language.MustParse(tag))
		assert.Equal(t, Other, rule(3), tag)
	}
}
