package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetectIntent(t *testing.T) {
	e := testEngine(t, time.Now())

	tests := []struct {
		name   string
		input  string
		kind   IntentKind
		period Period
	}{
		{"oi", "Oi", IntentGreeting, ""},
		{"ola accented", "Olá!", IntentGreeting, ""},
		{"ola plain", "ola", IntentGreeting, ""},
		{"bom dia", "Bom dia", IntentGreeting, ""},
		{"greeting inside a sentence is not a greeting", "bom dia, gastei 50 no mercado", IntentTransaction, ""},

		{"ajuda", "ajuda", IntentHelp, ""},
		{"ajuda in sentence", "me ajuda aqui", IntentHelp, ""},
		{"como funciona", "como funciona?", IntentHelp, ""},

		{"resumo defaults to month", "resumo", IntentSummary, PeriodMonth},
		{"quanto gastei defaults to month", "quanto gastei", IntentSummary, PeriodMonth},
		{"resumo da semana", "resumo da semana", IntentSummary, PeriodWeek},
		{"relatorio do ano", "relatório do ano", IntentSummary, PeriodYear},
		{"gastos de hoje", "meus gastos de hoje", IntentSummary, PeriodDay},
		{"resumo do mes accented", "resumo do mês", IntentSummary, PeriodMonth},
		{"resumo do mes plain", "resumo do mes", IntentSummary, PeriodMonth},

		// a period keyword alone is also a summary request
		{"semana alone", "semana", IntentSummary, PeriodWeek},
		{"mes alone accented", "mês", IntentSummary, PeriodMonth},
		{"mes alone plain", "mes", IntentSummary, PeriodMonth},
		{"hoje alone", "hoje", IntentSummary, PeriodDay},
		{"ano alone", "ano", IntentSummary, PeriodYear},

		{"transaction fallback", "Almoço R$ 25,90", IntentTransaction, ""},
		{"period word inside transaction stays transaction", "Paguei 50 reais de Uber hoje", IntentTransaction, ""},
		{"mensalidade does not trigger mes summary", "mensalidade da academia 120", IntentTransaction, ""},
		{"gibberish still routes", "asdfgh", IntentTransaction, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.DetectIntent(Normalize(tt.input))
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.period, got.Period)
		})
	}
}

func TestDetectIntentCorrection(t *testing.T) {
	e := testEngine(t, time.Now())

	tests := []struct {
		name     string
		input    string
		category string
	}{
		{"exact", "corrigir categoria para transporte", CategoryTransporte},
		{"fuzzy missing final vowel", "corrigir categoria para transport", CategoryTransporte},
		{"fuzzy unaccented", "corrigir categoria para alimentacao", CategoryAlimentacao},
		{"fuzzy saude", "corrigir categoria para saude", CategorySaude},
		{"no match", "corrigir categoria para xyz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.DetectIntent(Normalize(tt.input))
			assert.Equal(t, IntentCorrection, got.Kind)
			assert.Equal(t, tt.category, got.Category)
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("transporte", "transporte"))
	assert.InDelta(t, 0.9, similarity("transport", "transporte"), 0.001)
	assert.Less(t, similarity("xyz", "transporte"), categoryMatchThreshold)
}
