// Package corpus provides the training data the merchant classifier starts from.
package corpus

import "github.com/Veraticus/pennywise/internal/model"

// Default returns the built-in Singapore merchant corpus. Each call returns a
// fresh slice the caller may append to.
func Default() []model.TrainingExample {
	out := make([]model.TrainingExample, 0, len(defaultCorpus))
	for _, group := range defaultCorpus {
		for _, text := range group.texts {
			out = append(out, model.TrainingExample{Text: text, Category: group.category})
		}
	}
	return out
}

var defaultCorpus = []struct {
	texts    []string
	category model.Category
}{
	{
		category: model.Transport,
		texts: []string{
			"grab ride to orchard",
			"gojek to changi airport",
			"comfort taxi trip",
			"cdg zig booking",
			"mrt ride",
			"bus fare",
			"ez link topup",
			"grabhitch",
			"ryde pool",
			"taxi fare",
			"sbs transit",
			"smrt journey",
		},
	},
	{
		category: model.Food,
		texts: []string{
			"mcdonalds bishan",
			"starbucks raffles city",
			"kfc lunch",
			"pizza hut delivery",
			"ya kun toast",
			"toast box breakfast",
			"kopitiam meal",
			"food republic",
			"hawker chan",
			"paradise dynasty",
			"din tai fung",
			"jollibee",
			"bubble tea",
			"liho tea",
			"koi thé",
		},
	},
	{
		category: model.Groceries,
		texts: []string{
			"fairprice groceries",
			"cold storage market",
			"sheng shiong",
			"giant supermarket",
			"ntuc warehouse",
			"meidi ya",
			"dairy farm",
			"redmart delivery",
			"prime supermarket",
			"marketplace",
		},
	},
	{
		category: model.Shopping,
		texts: []string{
			"shopee order",
			"lazada purchase",
			"amazon sg",
			"qoo10 buy",
			"uniqlo raffles",
			"h&m purchase",
			"zara orchard",
			"taobao direct",
			"ikea alexandra",
			"don don donki",
		},
	},
	{
		category: model.Bills,
		texts: []string{
			"singtel bill",
			"starhub payment",
			"sp services",
			"pub utilities",
			"town council",
			"insurance premium",
			"income tax",
			"iras payment",
		},
	},
	{
		category: model.Entertainment,
		texts: []string{
			"netflix subscription",
			"spotify premium",
			"golden village",
			"kbox karaoke",
			"universal studios",
			"zoo ticket",
		},
	},
}
