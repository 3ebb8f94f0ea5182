package bayes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "lowercases", input: "Grab Ride", want: []string{"grab", "ride"}},
		{name: "strips punctuation", input: "McDonald's, Bishan!", want: []string{"mcdonalds", "bishan"}},
		{name: "joins around removed runes", input: "h&m purchase", want: []string{"hm", "purchase"}},
		{name: "drops non-ascii letters", input: "koi thé", want: []string{"koi", "th"}},
		{name: "keeps digits and underscores", input: "qoo10 order_42", want: []string{"qoo10", "order_42"}},
		{name: "collapses whitespace runs", input: "  ez \t link\n topup  ", want: []string{"ez", "link", "topup"}},
		{name: "keeps repeats", input: "don don donki", want: []string{"don", "don", "donki"}},
		{name: "empty", input: "", want: []string{}},
		{name: "whitespace only", input: " \t\n", want: []string{}},
		{name: "punctuation only", input: "!!! ---", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			assert.ElementsMatch(t, tt.want, got)
			assert.Len(t, got, len(tt.want))
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
