package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Almoço R$ 25,90", "almoço r$ 25,90"},
		{"keeps accents", "Café da manhã", "café da manhã"},
		{"keeps date separators", "Paguei 10/05 e 2-3 e 1.2", "paguei 10/05 e 2-3 e 1.2"},
		{"collapses whitespace", "mercado   120,50", "mercado 120,50"},
		{"strips control characters", "uber\x00\x0030", "uber30"},
		{"trims", "  oi  ", "oi"},
		{"newlines become one space", "almoço\n25,90", "almoço 25,90"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize("  Paguei R$ 50  de Uber HOJE ")
	assert.Equal(t, once, Normalize(once))
}
