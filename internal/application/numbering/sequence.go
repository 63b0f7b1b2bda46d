// Package numbering fournit la numérotation des factures : un compteur par
// année, derrière un service injecté plutôt qu'un état global mutable.
package numbering

import (
	"context"
	"fmt"
)

// Sequence port du générateur de numéros de facture.
type Sequence interface {
	// Next réserve le prochain numéro de l'année et le retourne formaté.
	Next(ctx context.Context, year int) (string, error)
}

// Format met en forme un numéro de facture : "2025-0042".
func Format(year int, value int64) string {
	return fmt.Sprintf("%d-%04d", year, value)
}
