package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleInterleavedPairs(t *testing.T) {
	created := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	reviews := Assemble(
		[]string{"Олена", "Petro"},
		[]*string{str("Great place"), str("Чудове місце"), nil, nil},
		[]*string{str("Thank you!"), str("Дякуємо!"), nil, nil},
		[]float64{4.5, 5},
		[]string{"https://example.com/maps/contrib/1", "https://example.com/maps/contrib/2"},
		[]string{"1", "2"},
		[]*string{str("https://img/1.png"), str("https://img/2.png")},
		[]*time.Time{&created, nil},
	)

	require.Len(t, reviews, 2)

	first := reviews[0]
	assert.Equal(t, "1", *first.ID)
	assert.Equal(t, "Олена", *first.Name)
	assert.Equal(t, "Чудове місце", *first.Text)
	assert.Equal(t, "Great place", *first.TranslationText)
	assert.Equal(t, "Дякуємо!", *first.Reply)
	assert.Equal(t, "Thank you!", *first.TranslationReply)
	assert.Equal(t, 4.5, *first.Rating)
	assert.Equal(t, created, *first.CreatedAt)

	second := reviews[1]
	assert.Equal(t, "Petro", *second.Name)
	assert.Nil(t, second.Text)
	assert.Nil(t, second.TranslationText)
	assert.Nil(t, second.Reply)
	assert.Nil(t, second.CreatedAt)
}

func TestAssembleToleratesShortArrays(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{"empty", nil},
		{"one", []string{"a"}},
		{"three", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := Assemble(tt.names, []*string{str("t")}, nil, []float64{1}, nil, []string{"9"}, nil, nil)
			require.Len(t, reviews, len(tt.names))

			for i, r := range reviews {
				assert.Equal(t, tt.names[i], *r.Name)
				assert.Nil(t, r.ProfileURL)
				assert.Nil(t, r.ProfileImg)
				assert.Nil(t, r.Reply)
				assert.Nil(t, r.Text)
				assert.Nil(t, r.CreatedAt)
				if i == 0 {
					assert.Equal(t, "9", *r.ID)
					assert.Equal(t, "t", *r.TranslationText)
				} else {
					assert.Nil(t, r.ID)
					assert.Nil(t, r.Rating)
				}
			}
		})
	}
}

func TestAssembleCopiesValues(t *testing.T) {
	names := []string{"a"}
	reviews := Assemble(names, nil, nil, nil, nil, nil, nil, nil)
	names[0] = "changed"

	assert.Equal(t, "a", *reviews[0].Name)
}
