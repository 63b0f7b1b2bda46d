package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Catégories du catalogue MYCONFORT.
const (
	CategoryMatelas     = "Matelas"
	CategorySurMatelas  = "Sur-matelas"
	CategoryCouettes    = "Couettes"
	CategoryOreillers   = "Oreillers"
	CategoryPlateau     = "Plateau"
	CategoryAccessoires = "Accessoires"
)

// Product entrée du catalogue. Le prix de référence est TTC ; pour les
// produits à calcul automatique le HT est dérivé du taux de TVA de la facture.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	PriceTTC   decimal.Decimal `json:"price_ttc"`
	AutoCalcHT bool            `json:"auto_calc_ht"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
