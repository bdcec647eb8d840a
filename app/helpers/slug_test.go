package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"turkish characters transliterated", "Ürün Çeşitleri!", "urun-cesitleri"},
		{"plain ascii lowercased", "Santrifuj Pompa", "santrifuj-pompa"},
		{"dotless i", "Dalgıç Pompa", "dalgic-pompa"},
		{"punctuation stripped", "Pompa & Motor (2. El)", "pompa-motor-2-el"},
		{"multiple spaces collapse", "Hidrofor   Sistemleri", "hidrofor-sistemleri"},
		{"leading and trailing noise trimmed", "  --Yedek Parça--  ", "yedek-parca"},
		{"consecutive dashes collapse", "SP--100", "sp-100"},
		{"empty input", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}
