package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveDate(t *testing.T) {
	now := time.Date(2026, time.May, 20, 15, 30, 0, 0, time.UTC)
	today := time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"numeric day/month", "mercado 120 10/05", time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)},
		{"numeric with four-digit year", "conta 12/03/2025", time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)},
		{"numeric with two-digit year", "conta 12/03/25", time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)},
		{"numeric with dashes", "conta 7-4", time.Date(2026, time.April, 7, 0, 0, 0, 0, time.UTC)},
		{"numeric with dots", "conta 7.4.2026", time.Date(2026, time.April, 7, 0, 0, 0, 0, time.UTC)},

		{"textual month", "jantar 10 de maio", time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)},
		{"textual month with year", "jantar 10 de maio de 2025", time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)},
		{"textual month abbreviation", "jantar 3 de dez", time.Date(2026, time.December, 3, 0, 0, 0, 0, time.UTC)},
		{"textual março", "festa 15 de março", time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)},

		{"hoje", "almoço 25 hoje", today},
		{"ontem", "jantar 40 ontem", today.AddDate(0, 0, -1)},
		{"amanhã", "consulta amanhã", today.AddDate(0, 0, 1)},
		{"amanha unaccented", "consulta amanha", today.AddDate(0, 0, 1)},

		// invalid components fall through silently
		{"day 32 falls back to today", "conta 32/05", today},
		{"month 13 falls back to today", "conta 10/13", today},
		{"february 31 falls back to today", "conta 31/02", today},

		// the literal "hoje" overrides a numeric match
		{"hoje beats numeric date", "10/05 hoje", today},

		{"nothing", "mercado 120,50", today},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDate(Normalize(tt.input), now)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestResolveDateIdempotent(t *testing.T) {
	now := time.Date(2026, time.May, 20, 12, 0, 0, 0, time.UTC)
	text := Normalize("Jantar 10 de maio")
	first := ResolveDate(text, now)
	for i := 0; i < 3; i++ {
		assert.True(t, first.Equal(ResolveDate(text, now)))
	}
}
