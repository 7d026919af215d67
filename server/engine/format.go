package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount in pt-BR convention: "R$ 1.234,56".
func FormatMoney(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}
	return "R$ " + grouped.String() + "," + fracPart
}

// FormatDate renders a calendar date as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatConfirmation renders the reply for a saved transaction.
func FormatConfirmation(tx ParsedTransaction) string {
	var b strings.Builder
	b.WriteString("✅ Anotado!\n")
	fmt.Fprintf(&b, "💰 %s\n", FormatMoney(tx.Amount))
	fmt.Fprintf(&b, "📁 %s\n", tx.Category)
	fmt.Fprintf(&b, "📝 %s\n", tx.Description)
	fmt.Fprintf(&b, "📅 %s", FormatDate(tx.Date))
	if tx.PaymentMethod != "" {
		fmt.Fprintf(&b, "\n💳 %s", tx.PaymentMethod)
	}
	return b.String()
}

// FormatGreeting greets the sender by name when one is known.
func FormatGreeting(name string) string {
	if name == "" {
		return "Olá! 👋 Me conta um gasto (ex: \"Almoço R$ 25,90\") ou peça um resumo."
	}
	return fmt.Sprintf("Olá, %s! 👋 Me conta um gasto (ex: \"Almoço R$ 25,90\") ou peça um resumo.", name)
}

// FormatHelp lists what the bot understands.
func FormatHelp() string {
	return strings.Join([]string{
		"🤖 Como usar:",
		"• Registrar gasto: \"Almoço R$ 25,90\" ou \"Paguei 50 reais de Uber hoje\"",
		"• Resumo: \"resumo do mês\", \"quanto gastei essa semana\"",
		"• Corrigir: \"corrigir categoria para transporte\"",
	}, "\n")
}

// FormatNoTransaction prompts the user with example phrasings when no
// amount could be extracted.
func FormatNoTransaction() string {
	return "🤔 Não entendi o valor. Tenta algo como \"Mercado 120,50\" ou \"Paguei R$ 30 de farmácia\"."
}

var periodLabels = map[Period]string{
	PeriodDay:   "de hoje",
	PeriodWeek:  "da semana",
	PeriodMonth: "do mês",
	PeriodYear:  "do ano",
}

// FormatReport renders a period summary with a per-category breakdown.
func FormatReport(r Report) string {
	if r.Count == 0 {
		return fmt.Sprintf("📊 Nenhum gasto registrado %s.", periodLabels[r.Period])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Resumo %s\n", periodLabels[r.Period])
	fmt.Fprintf(&b, "Total: %s (%d lançamentos)", FormatMoney(r.Total), r.Count)
	for _, ct := range r.ByCategory {
		fmt.Fprintf(&b, "\n• %s: %s", ct.Category, FormatMoney(ct.Total))
	}
	return b.String()
}

// FormatCorrectionApplied confirms a category change on the last record.
func FormatCorrectionApplied(description, from, to string) string {
	return fmt.Sprintf("✏️ Categoria de \"%s\" alterada: %s → %s", description, from, to)
}

// FormatNothingToCorrect answers a correction when the sender has no
// transactions yet.
func FormatNothingToCorrect() string {
	return "Você ainda não registrou nenhum gasto para corrigir."
}

// FormatUnknownCategory answers a correction whose category did not match
// anything in the closed set; no mutation was performed.
func FormatUnknownCategory(input string, valid []string) string {
	return fmt.Sprintf("Não conheço a categoria \"%s\". As válidas são: %s.", input, strings.Join(valid, ", "))
}
