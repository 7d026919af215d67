package engine

import "regexp"

// Canonical payment methods.
const (
	PaymentCartao        = "Cartão"
	PaymentCredito       = "Crédito"
	PaymentDebito        = "Débito"
	PaymentDinheiro      = "Dinheiro"
	PaymentPix           = "PIX"
	PaymentBoleto        = "Boleto"
	PaymentTransferencia = "Transferência"
)

// paymentPatterns canonicalize surface forms by containment, first match
// wins. Specific methods come before the generic card patterns so that
// "cartão de crédito" resolves to Crédito, not Cartão. Short forms (pix,
// ted, doc, elo) are word-bounded to avoid hits inside unrelated words.
var paymentPatterns = []struct {
	re     *regexp.Regexp
	method string
}{
	{regexp.MustCompile(`cr[ée]d`), PaymentCredito},
	{regexp.MustCompile(`d[ée]b`), PaymentDebito},
	{regexp.MustCompile(`\bpix\b`), PaymentPix},
	{regexp.MustCompile(`boleto`), PaymentBoleto},
	{regexp.MustCompile(`transfer[êe]ncia|\bted\b|\bdoc\b`), PaymentTransferencia},
	{regexp.MustCompile(`dinheiro|esp[ée]cie`), PaymentDinheiro},
	{regexp.MustCompile(`cart[ãa]o|\bvisa\b|\bmastercard\b|\bmaster\b|\belo\b|\bamex\b|\bhipercard\b`), PaymentCartao},
}

// ExtractPaymentMethod finds a payment-method mention in normalized text
// and maps it to the canonical set. Returns false when nothing matches.
func ExtractPaymentMethod(text string) (string, bool) {
	for _, p := range paymentPatterns {
		if p.re.MatchString(text) {
			return p.method, true
		}
	}
	return "", false
}
