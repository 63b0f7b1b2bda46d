// Package pricing est le moteur de calcul des totaux de facture : fonctions
// pures, déterministes, en arithmétique décimale exacte. Aucun arrondi n'est
// fait ici ; l'arrondi à 2 décimales appartient au pipeline d'export.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// LineTotal calcule le total TTC d'une ligne après remise, plancher à zéro.
//
//	base = quantité × prix unitaire TTC
//	percent : base - base × remise/100
//	fixed   : base - remise × quantité
//
// Invariant : le résultat n'est jamais négatif, quelle que soit l'ampleur de
// la remise (au-delà de 100 % ou du sous-total de ligne).
func LineTotal(quantity int, unitPriceTTC, discount decimal.Decimal, discountType entity.DiscountType) decimal.Decimal {
	qty := decimal.NewFromInt(int64(quantity))
	base := qty.Mul(unitPriceTTC)

	var total decimal.Decimal
	switch discountType {
	case entity.DiscountFixed:
		total = base.Sub(discount.Mul(qty))
	default:
		// percent (et tout type non reconnu traité comme pourcentage neutre)
		total = base.Sub(base.Mul(discount).Div(hundred))
	}

	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// LineDiscount montant de la remise effectivement appliquée à une ligne
// (sous-total d'origine moins total remisé).
func LineDiscount(quantity int, unitPriceTTC, discount decimal.Decimal, discountType entity.DiscountType) decimal.Decimal {
	base := decimal.NewFromInt(int64(quantity)).Mul(unitPriceTTC)
	return base.Sub(LineTotal(quantity, unitPriceTTC, discount, discountType))
}

// UnitPriceHT dérive le prix unitaire hors taxe depuis le TTC et le taux de
// TVA en pourcentage. Le modèle est TTC d'abord : le HT n'est jamais saisi.
func UnitPriceHT(unitPriceTTC, taxRate decimal.Decimal) decimal.Decimal {
	divisor := one.Add(taxRate.Div(hundred))
	if !divisor.IsPositive() {
		// Taux <= -100 % : pas de HT dérivable. Entrée rejetée en amont par
		// le validateur ; ici on retourne le TTC pour rester total.
		return unitPriceTTC
	}
	return unitPriceTTC.Div(divisor)
}

// ComputeTotals replie les lignes en totaux de facture.
//
// Le HT est dérivé ligne par ligne depuis le TTC remisé puis sommé (et non :
// somme des TTC divisée une fois). Les deux ordres sont équivalents tant que
// le taux est uniforme, mais la dérivation par ligne reste correcte si un
// taux par ligne est introduit un jour.
//
// Une liste vide produit des totaux à zéro (TotalPercu reprend l'acompte,
// TotalARecevoir est plancher à zéro).
func ComputeTotals(lines []entity.LineItem, taxRate, acompte decimal.Decimal) entity.Totals {
	divisor := one.Add(taxRate.Div(hundred))

	var totalTTC, totalHT, totalRemise decimal.Decimal
	for _, l := range lines {
		lineTTC := LineTotal(l.Quantity, l.UnitPriceTTC, l.Discount, l.DiscountType)
		totalTTC = totalTTC.Add(lineTTC)
		if divisor.IsPositive() {
			totalHT = totalHT.Add(lineTTC.Div(divisor))
		} else {
			totalHT = totalHT.Add(lineTTC)
		}
		totalRemise = totalRemise.Add(LineDiscount(l.Quantity, l.UnitPriceTTC, l.Discount, l.DiscountType))
	}

	aRecevoir := totalTTC.Sub(acompte)
	if aRecevoir.IsNegative() {
		aRecevoir = decimal.Zero
	}

	return entity.Totals{
		TotalHT:        totalHT,
		TotalTTC:       totalTTC,
		TotalTVA:       totalTTC.Sub(totalHT),
		TotalRemise:    totalRemise,
		TotalPercu:     acompte,
		TotalARecevoir: aRecevoir,
	}
}
