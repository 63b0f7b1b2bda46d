package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountType type de remise appliquée à une ligne.
//
// Le système historique employait deux orthographes selon les couches
// ("percent"/"fixed" côté calcul, "percentage"/"amount" côté validation).
// Une seule forme canonique est conservée ; les orthographes héritées sont
// acceptées en entrée JSON et normalisées au décodage.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent" // remise en % du sous-total de ligne
	DiscountFixed   DiscountType = "fixed"   // remise en euros par unité (× quantité)
)

// ParseDiscountType normalise une orthographe de type de remise.
func ParseDiscountType(s string) (DiscountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "percent", "percentage":
		return DiscountPercent, nil
	case "fixed", "amount":
		return DiscountFixed, nil
	case "":
		// Absence de remise : le pourcentage à zéro est neutre.
		return DiscountPercent, nil
	default:
		return "", fmt.Errorf("type de remise inconnu: %q", s)
	}
}

// Valid indique si le type est l'une des deux formes canoniques.
func (t DiscountType) Valid() bool {
	return t == DiscountPercent || t == DiscountFixed
}

// UnmarshalJSON accepte les orthographes héritées et stocke la forme canonique.
func (t *DiscountType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDiscountType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// LineItem une ligne de produit sur la facture.
// Le prix de référence saisi est le TTC ; le HT est toujours dérivé.
type LineItem struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"` // ex. "Matelas", "Oreillers"
	Quantity     int             `json:"quantity"`
	UnitPriceHT  decimal.Decimal `json:"unit_price_ht"` // dérivé, jamais saisi
	UnitPriceTTC decimal.Decimal `json:"unit_price_ttc"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountType DiscountType    `json:"discount_type"`
	TotalTTC     decimal.Decimal `json:"total_ttc"` // dérivé, plancher à zéro
}
