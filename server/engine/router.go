package engine

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// IntentKind classifies an inbound message. Routing is total: every text
// maps to exactly one kind, with TransactionCandidate as the fallthrough.
type IntentKind int

const (
	IntentGreeting IntentKind = iota
	IntentHelp
	IntentSummary
	IntentCorrection
	IntentTransaction
)

// Period is a reporting window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Intent is the routing decision for one message.
type Intent struct {
	Kind     IntentKind
	Period   Period // set for IntentSummary
	Category string // set for IntentCorrection; empty if no fuzzy match
	Raw      string // for IntentCorrection, the category text the user typed
}

var greetings = []string{
	"oi", "olá", "ola", "oie", "opa", "eae", "e aí", "e ai",
	"bom dia", "boa tarde", "boa noite", "hey", "hello",
}

var helpKeywords = []string{
	"ajuda", "help", "como funciona", "como usar", "comandos",
	"o que você faz", "o que voce faz", "instruções", "instrucoes",
}

var summaryKeywords = []string{
	"resumo", "relatório", "relatorio", "extrato", "balanço", "balanco",
	"quanto gastei", "quanto eu gastei", "meus gastos", "total gasto",
}

// periodKeywords resolve the reporting window inside a summary request.
// Accented and plain forms are both present; matching is containment over
// the normalized text.
var periodKeywords = []struct {
	word   string
	period Period
}{
	{"hoje", PeriodDay},
	{"diário", PeriodDay},
	{"diario", PeriodDay},
	{"dia", PeriodDay},
	{"semanal", PeriodWeek},
	{"semana", PeriodWeek},
	{"mensal", PeriodMonth},
	{"mês", PeriodMonth},
	{"mes", PeriodMonth},
	{"anual", PeriodYear},
	{"ano", PeriodYear},
}

const correctionPrefix = "corrigir categoria para "

// categoryMatchThreshold is the minimum levenshtein similarity for a
// correction to resolve ("transport" → "transporte" scores 0.9).
const categoryMatchThreshold = 0.6

// DetectIntent classifies normalized text into exactly one intent. Rules
// run in order and the first hit wins: greeting, help, summary, bare
// period, correction, then transaction candidate.
func (e *Engine) DetectIntent(text string) Intent {
	trimmed := strings.Trim(text, " !?.")

	for _, g := range greetings {
		if trimmed == g {
			return Intent{Kind: IntentGreeting}
		}
	}

	for _, h := range helpKeywords {
		if strings.Contains(text, h) {
			return Intent{Kind: IntentHelp}
		}
	}

	if containsAny(text, summaryKeywords) {
		return Intent{Kind: IntentSummary, Period: matchPeriod(text)}
	}

	// A period word on its own is a summary request too ("semana" →
	// weekly report). Only the whole message counts: a trailing "hoje"
	// inside a transaction must not hijack it.
	for _, p := range periodKeywords {
		if trimmed == p.word {
			return Intent{Kind: IntentSummary, Period: p.period}
		}
	}

	if rest, ok := strings.CutPrefix(trimmed, correctionPrefix); ok {
		rest = strings.TrimSpace(rest)
		cat, _ := e.closestCategory(rest)
		return Intent{Kind: IntentCorrection, Category: cat, Raw: rest}
	}

	return Intent{Kind: IntentTransaction}
}

// matchPeriod finds the requested window inside a summary message,
// defaulting to the month.
func matchPeriod(text string) Period {
	for _, p := range periodKeywords {
		if strings.Contains(text, p.word) {
			return p.period
		}
	}
	return PeriodMonth
}

// closestCategory fuzzy-matches user input against the closed category
// set using levenshtein similarity (1 - distance/maxlen). Returns "" when
// the best score is below the threshold.
func (e *Engine) closestCategory(input string) (string, float64) {
	best := ""
	bestScore := 0.0
	for _, name := range e.dict.CategoryNames() {
		score := similarity(input, name)
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	if bestScore < categoryMatchThreshold {
		return "", bestScore
	}
	return best, bestScore
}

func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
