// Package money centralise le formatage monétaire français et l'arrondi
// à 2 décimales utilisés par les totaux de facture (UI, PDF, payload).
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var fr = message.NewPrinter(language.French)

// FormatEUR formate un montant en euros à la française : groupement par
// espace fine insécable, virgule décimale, 2 décimales, symbole en suffixe.
// Exemple : 1234567.89 -> "1\u202f234\u202f567,89\u00a0€".
func FormatEUR(d decimal.Decimal) string {
	f, _ := d.Float64()
	return FormatEURFloat(f)
}

// FormatEURFloat formate un float64 en euros. Les valeurs non finies (NaN,
// ±Inf) retournent le montant zéro plutôt que de propager une chaîne invalide.
func FormatEURFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return fr.Sprintf("%v\u00a0€", number.Decimal(f, number.Scale(2)))
}

// ParseEUR reconstruit un décimal depuis une chaîne produite par FormatEUR.
// Tolère les espaces ordinaires, insécables (U+00A0) et fines (U+202F).
func ParseEUR(s string) (decimal.Decimal, error) {
	r := strings.NewReplacer(
		"€", "",
		" ", "",
		"\u00a0", "",
		"\u202f", "",
		",", ".",
	)
	return decimal.NewFromString(r.Replace(s))
}

// Round2 arrondit à 2 décimales (demi-supérieur). Point d'arrondi unique du
// pipeline d'export : le moteur de calcul conserve la précision complète.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
