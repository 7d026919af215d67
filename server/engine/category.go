package engine

import "strings"

// Classification is the classifier verdict. Expense=false is the salary
// short-circuit: the text is income-like and must not become an expense
// record at all, which callers treat the same as "no amount found".
type Classification struct {
	Category      string
	Establishment string
	Expense       bool
}

// streamingServices are checked before everything else: service names like
// "prime" or "max" collide with generic keywords, and a subscription to any
// of them is lazer regardless of what else the text says.
var streamingServices = []string{
	"netflix", "spotify", "prime video", "amazon prime", "disney+", "disney plus",
	"globoplay", "hbo max", "deezer", "youtube premium", "paramount+",
	"paramount plus", "crunchyroll", "apple tv", "apple music", "telecine",
}

// subscriptionMediaWords turn a generic "assinatura" into a streaming
// signal ("assinatura de streaming de filmes").
var subscriptionMediaWords = []string{
	"streaming", "filme", "série", "serie", "música", "musica", "tv", "jogos", "games",
}

var salaryKeywords = []string{
	"salário", "salario", "contracheque", "holerite", "ordenado",
	"folha de pagamento", "décimo terceiro", "decimo terceiro",
}

var subscriptionWords = []string{"assinatura", "mensalidade", "anuidade"}

// subscriptionDomains resolves "mensalidade da academia" style phrases when
// no establishment or keyword already did.
var subscriptionDomains = []struct {
	words    []string
	category string
}{
	{[]string{"academia", "crossfit", "pilates"}, CategorySaude},
	{[]string{"escola", "curso", "faculdade"}, CategoryEducacao},
	{[]string{"internet", "celular", "telefone"}, CategoryMoradia},
}

// Classify maps normalized text to exactly one category from the closed
// set. Rules run in strict precedence order and the first hit wins; there
// is no scoring. Ambiguity resolves silently to the default category.
func (d *Dictionaries) Classify(text string) Classification {
	// 1. Streaming services and media subscriptions.
	for _, svc := range streamingServices {
		if strings.Contains(text, svc) {
			return Classification{Category: CategoryLazer, Establishment: svc, Expense: true}
		}
	}
	if containsAny(text, subscriptionWords) && containsAny(text, subscriptionMediaWords) {
		return Classification{Category: CategoryLazer, Expense: true}
	}

	// 2. Salary short-circuit: income, not an expense.
	if containsAny(text, salaryKeywords) {
		return Classification{Category: d.DefaultCategory, Expense: false}
	}

	// 3. Establishment dictionary, longest names first.
	for _, e := range d.Establishments {
		if strings.Contains(text, e.Name) {
			return Classification{Category: e.Category, Establishment: e.Name, Expense: true}
		}
	}

	// 4. Generic keywords, fixed category order.
	for _, c := range d.Categories {
		for _, kw := range c.Keywords {
			if strings.Contains(text, kw) {
				return Classification{Category: c.Name, Expense: true}
			}
		}
	}

	// 5. Subscription plus a domain word.
	if containsAny(text, subscriptionWords) {
		for _, dom := range subscriptionDomains {
			if containsAny(text, dom.words) {
				return Classification{Category: dom.category, Expense: true}
			}
		}
	}

	return Classification{Category: d.DefaultCategory, Expense: true}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
