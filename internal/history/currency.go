package history

// defaultSymbols is the closed currency table. Codes outside it render with no
// symbol at all; an unrecognised currency is never a reason to drop a hand.
var defaultSymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

func (r *Renderer) symbol(code string) string {
	return r.symbols[code]
}
