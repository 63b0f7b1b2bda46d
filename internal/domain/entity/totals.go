package entity

import "github.com/shopspring/decimal"

// Totals agrégat monétaire d'une facture. Toujours recalculé depuis les
// lignes, jamais persisté comme source de vérité.
type Totals struct {
	TotalHT        decimal.Decimal `json:"total_ht"`
	TotalTTC       decimal.Decimal `json:"total_ttc"`
	TotalTVA       decimal.Decimal `json:"total_tva"`
	TotalRemise    decimal.Decimal `json:"total_remise"`
	TotalPercu     decimal.Decimal `json:"total_percu"`      // acompte, repris tel quel
	TotalARecevoir decimal.Decimal `json:"total_a_recevoir"` // max(0, TTC - acompte)
}
