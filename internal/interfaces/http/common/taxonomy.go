package common

import "strings"

var categoryAliases = map[string]string{
	"restaurant":   "restaurante",
	"restaurantes": "restaurante",
	"snack":        "lanchonete",
	"lanches":      "lanchonete",
	"pizza":        "pizzaria",
	"pizzas":       "pizzaria",
	"market":       "mercado",
	"supermercado": "mercado",
	"farmácia":     "farmacia",
	"pharmacy":     "farmacia",
	"drinks":       "bebidas",
	"adega":        "bebidas",
	"bakery":       "padaria",
	"other":        "outros",
}

// CanonicalCategory normalises category aliases from query strings and request bodies.
// Unknown values pass through lower-cased so validation can reject them.
func CanonicalCategory(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return ""
	}
	if canonical, ok := categoryAliases[lower]; ok {
		return canonical
	}
	return lower
}
