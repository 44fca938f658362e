package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCheckedProducts_ChecksAndHeaders(t *testing.T) {
	text := "a) Fruit\nX Organic apples\nO Organic pears\n"
	got := ParseCheckedProducts(text)
	require.Len(t, got, 2)
	assert.Equal(t, "**a) Fruit**", got[0])
	assert.Equal(t, "Organic apples", got[1])
}

func TestParseCheckedProducts_Rules(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "boilerplate never classified",
			in:   "Page 1 of 2\nRegulation (EU) 2018/848\nX Organic wheat",
			want: []string{"Organic wheat"},
		},
		{
			name: "checkbox glyph variants",
			in:   "☑ Organic olive oil\nV Organic wine",
			want: []string{"Organic olive oil", "Organic wine"},
		},
		{
			name: "glyphs stripped only from the leading mark",
			in:   "[x] Organic honey\nX Organic 8-grain bread",
			want: []string{"Organic honey", "Organic 8-grain bread"},
		},
		{
			name: "organic heuristic admits glyphless marks",
			// a filled box misread into the neighboring word still counts;
			// a leading O or 0 reads as an empty checkbox
			in:   "fresh organic barley\nO Organic pears\n0 Organic rye",
			want: []string{"fresh organic barley"},
		},
		{
			name: "dash is a category header",
			in:   "- Unprocessed plant products",
			want: []string{"**- Unprocessed plant products**"},
		},
		{
			name: "unmarked lines discarded",
			in:   "Processed feed\nsome stray noise",
			want: nil,
		},
		{
			name: "order is document order",
			in:   "a) Fruit\nX Apples organic\nb) Vegetables\nX Carrots organic",
			want: []string{"**a) Fruit**", "Apples organic", "**b) Vegetables**", "Carrots organic"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCheckedProducts(tt.in))
		})
	}
}
