package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/pennywise/internal/bayes"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	examples := Default()
	require.Len(t, examples, 61)

	perCategory := map[model.Category]int{}
	for _, ex := range examples {
		perCategory[ex.Category]++
	}
	assert.Equal(t, map[model.Category]int{
		model.Transport:     12,
		model.Food:          15,
		model.Groceries:     10,
		model.Shopping:      10,
		model.Bills:         8,
		model.Entertainment: 6,
	}, perCategory)

	// Callers may mutate their copy freely.
	examples[0].Text = "changed"
	assert.Equal(t, "grab ride to orchard", Default()[0].Text)
}

func TestDefault_Classifies(t *testing.T) {
	c, err := bayes.New(Default())
	require.NoError(t, err)

	tests := []struct {
		merchant string
		want     model.Category
	}{
		{"GRAB RIDE", model.Transport},
		{"Starbucks Coffee", model.Food},
		{"FairPrice Finest", model.Groceries},
		{"Shopee Singapore", model.Shopping},
		{"Singtel Mobile Bill", model.Bills},
		{"NETFLIX SUBSCRIPTION", model.Entertainment},
	}

	for _, tt := range tests {
		t.Run(tt.merchant, func(t *testing.T) {
			pred, err := c.Classify(tt.merchant)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pred.Category)
		})
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "corpus.yaml", `
training:
  - text: grab ride
    category: transport
  - text: mcdonalds
    category: Food
  - text: grab ride
    category: FOOD
`)

	examples, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []model.TrainingExample{
		{Text: "grab ride", Category: model.Transport},
		{Text: "mcdonalds", Category: model.Food},
		{Text: "grab ride", Category: model.Food},
	}, examples)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{
			name:    "unknown category",
			file:    "bad.yaml",
			content: "training:\n  - text: foo\n    category: Other\n",
			wantErr: model.ErrUnknownCategory,
		},
		{
			name:    "missing text",
			file:    "missing.yaml",
			content: "training:\n  - category: Food\n",
			wantErr: ErrInvalidCorpus,
		},
		{
			name:    "empty list",
			file:    "empty.yaml",
			content: "training: []\n",
			wantErr: ErrInvalidCorpus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.file, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_DefaultsWhenPathEmpty(t *testing.T) {
	examples, err := Load("")
	require.NoError(t, err)
	assert.Len(t, examples, len(Default()))
}

func TestWithCorrections(t *testing.T) {
	base := []model.TrainingExample{{Text: "grab ride", Category: model.Transport}}
	corrections := []model.Correction{
		{ID: 1, Example: model.TrainingExample{Text: "grab ride", Category: model.Food}},
		{ID: 2, Example: model.TrainingExample{Text: "zoo ticket", Category: model.Entertainment}},
	}

	got := WithCorrections(base, corrections)
	assert.Equal(t, []model.TrainingExample{
		{Text: "grab ride", Category: model.Transport},
		{Text: "grab ride", Category: model.Food},
		{Text: "zoo ticket", Category: model.Entertainment},
	}, got)
	assert.Len(t, base, 1)
}

func BenchmarkClassify_DefaultCorpus(b *testing.B) {
	c, err := bayes.New(Default())
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Classify("grab ride to changi airport"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRetrain_DefaultCorpus(b *testing.B) {
	c, err := bayes.New(Default())
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.WithCorrection("grab ride", model.Food); err != nil {
			b.Fatal(err)
		}
	}
}
