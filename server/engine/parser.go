package engine

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParsedTransaction is the structured record extracted from one message.
// Amount is always present and positive; everything else has a default.
type ParsedTransaction struct {
	Amount        decimal.Decimal
	Category      string
	Description   string
	Date          time.Time
	PaymentMethod string // empty when no method was mentioned
}

const maxDescriptionLen = 120

var titleCaser = cases.Title(language.BrazilianPortuguese)

// ParseTransaction orchestrates the extractors over one raw message.
// Returns false when the text is not a transaction: either no parseable
// amount was found, or the classifier flagged the text as income (salary)
// rather than an expense. Callers must never persist a record without an
// amount, so false carries no partial data.
func (e *Engine) ParseTransaction(raw string) (ParsedTransaction, bool) {
	text := Normalize(raw)

	amount, ok := ExtractAmount(text)
	if !ok {
		return ParsedTransaction{}, false
	}

	cls := e.dict.Classify(text)
	if !cls.Expense {
		return ParsedTransaction{}, false
	}

	desc := strings.TrimSpace(raw)
	if cls.Establishment != "" {
		desc = titleCaser.String(cls.Establishment)
	}

	tx := ParsedTransaction{
		Amount:      amount,
		Category:    cls.Category,
		Description: truncate(desc, maxDescriptionLen),
		Date:        ResolveDate(text, e.now()),
	}
	if method, ok := ExtractPaymentMethod(text); ok {
		tx.PaymentMethod = method
	}
	return tx, true
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
