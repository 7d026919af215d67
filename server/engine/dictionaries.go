// Package engine turns one line of free-form chat text into a routing
// decision and, for transactions, a structured record: amount, category,
// description, date and payment method. All extraction is pure computation
// over strings; persistence, reporting and user lookup are collaborators
// injected into the Engine.
package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// The closed category set. The classifier never returns a value outside it.
const (
	CategoryAlimentacao = "alimentação"
	CategoryTransporte  = "transporte"
	CategoryMoradia     = "moradia"
	CategoryLazer       = "lazer"
	CategorySaude       = "saúde"
	CategoryEducacao    = "educação"
	CategoryVestuario   = "vestuário"
	CategoryOutros      = "outros"
)

// CategoryEntry maps a category name to the keywords that imply it.
type CategoryEntry struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// EstablishmentEntry maps a known merchant or service name to a category.
// An establishment hit is a stronger signal than a loose keyword and also
// supplies the transaction description.
type EstablishmentEntry struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Dictionaries holds the static classification tables. Built once at
// startup, read-only afterwards; safe for unlimited concurrent readers.
type Dictionaries struct {
	DefaultCategory string               `json:"default_category"`
	Categories      []CategoryEntry      `json:"categories"`
	Establishments  []EstablishmentEntry `json:"establishments"`
}

// LoadDictionaries reads classification tables from a JSON file. A missing
// file is not an error: the built-in defaults are returned. A file that
// exists but does not parse is an error, so a typo does not silently wipe
// the tables.
func LoadDictionaries(path string) (*Dictionaries, error) {
	if path == "" {
		return DefaultDictionaries(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultDictionaries(), nil
		}
		return nil, fmt.Errorf("read dictionaries %q: %w", path, err)
	}

	var d Dictionaries
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse dictionaries %q: %w", path, err)
	}
	if d.DefaultCategory == "" {
		d.DefaultCategory = CategoryOutros
	}
	d.finalize()
	return &d, nil
}

// CategoryNames returns the closed category set in classifier scan order,
// including the default category.
func (d *Dictionaries) CategoryNames() []string {
	names := make([]string, 0, len(d.Categories)+1)
	for _, c := range d.Categories {
		names = append(names, c.Name)
	}
	names = append(names, d.DefaultCategory)
	return names
}

// finalize orders establishments longest-name-first so that more specific
// names ("supermercado") win over their substrings ("mercado").
func (d *Dictionaries) finalize() {
	sort.SliceStable(d.Establishments, func(i, j int) bool {
		return len(d.Establishments[i].Name) > len(d.Establishments[j].Name)
	})
	for i := range d.Establishments {
		d.Establishments[i].Name = strings.ToLower(d.Establishments[i].Name)
	}
}

// DefaultDictionaries returns the built-in tables. Keyword scan order is
// the declaration order below, and earlier categories win ties.
func DefaultDictionaries() *Dictionaries {
	d := &Dictionaries{
		DefaultCategory: CategoryOutros,
		Categories: []CategoryEntry{
			{
				Name: CategoryAlimentacao,
				Keywords: []string{
					"almoço", "almoco", "jantar", "café", "cafe", "lanche",
					"comida", "restaurante", "pizza", "hamburguer", "hambúrguer",
					"feira", "açougue", "acougue", "bebida", "cerveja", "sorvete",
				},
			},
			{
				Name: CategoryTransporte,
				Keywords: []string{
					"gasolina", "combustível", "combustivel", "ônibus", "onibus",
					"metrô", "metro", "corrida", "táxi", "taxi", "passagem",
					"estacionamento", "pedágio", "pedagio", "carona",
				},
			},
			{
				Name: CategoryMoradia,
				Keywords: []string{
					"aluguel", "condomínio", "condominio", "luz", "energia",
					"água", "agua", "gás", "internet", "telefone", "celular",
					"iptu", "faxina", "reforma",
				},
			},
			{
				Name: CategoryLazer,
				Keywords: []string{
					"cinema", "show", "festa", "viagem", "passeio", "bar",
					"balada", "ingresso", "streaming", "jogo", "parque",
				},
			},
			{
				Name: CategorySaude,
				Keywords: []string{
					"médico", "medico", "consulta", "remédio", "remedio",
					"dentista", "exame", "hospital", "academia", "psicólogo",
					"psicologo", "farmácia", "farmacia",
				},
			},
			{
				Name: CategoryEducacao,
				Keywords: []string{
					"escola", "faculdade", "curso", "livro", "apostila",
					"matrícula", "matricula", "material escolar",
				},
			},
			{
				Name: CategoryVestuario,
				Keywords: []string{
					"roupa", "camisa", "camiseta", "calça", "calca", "tênis",
					"tenis", "sapato", "vestido", "casaco", "bermuda",
				},
			},
		},
		Establishments: []EstablishmentEntry{
			{Name: "uber", Category: CategoryTransporte},
			{Name: "99pop", Category: CategoryTransporte},
			{Name: "buser", Category: CategoryTransporte},
			{Name: "posto", Category: CategoryTransporte},
			{Name: "shell", Category: CategoryTransporte},
			{Name: "ipiranga", Category: CategoryTransporte},
			{Name: "ifood", Category: CategoryAlimentacao},
			{Name: "rappi", Category: CategoryAlimentacao},
			{Name: "supermercado", Category: CategoryAlimentacao},
			{Name: "mercado", Category: CategoryAlimentacao},
			{Name: "padaria", Category: CategoryAlimentacao},
			{Name: "mcdonalds", Category: CategoryAlimentacao},
			{Name: "mc donalds", Category: CategoryAlimentacao},
			{Name: "burger king", Category: CategoryAlimentacao},
			{Name: "habibs", Category: CategoryAlimentacao},
			{Name: "farmácia", Category: CategorySaude},
			{Name: "farmacia", Category: CategorySaude},
			{Name: "drogasil", Category: CategorySaude},
			{Name: "droga raia", Category: CategorySaude},
			{Name: "pacheco", Category: CategorySaude},
			{Name: "smart fit", Category: CategorySaude},
			{Name: "smartfit", Category: CategorySaude},
			{Name: "renner", Category: CategoryVestuario},
			{Name: "riachuelo", Category: CategoryVestuario},
			{Name: "c&a", Category: CategoryVestuario},
			{Name: "centauro", Category: CategoryVestuario},
			{Name: "kalunga", Category: CategoryEducacao},
		},
	}
	d.finalize()
	return d
}
