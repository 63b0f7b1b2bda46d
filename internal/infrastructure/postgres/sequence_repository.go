package postgres

import (
	"context"
	"fmt"

	"github.com/htconfort/myconfort-facturation/internal/application/numbering"
)

var _ numbering.Sequence = (*SequenceRepo)(nil)

// SequenceRepo compteur de numéros de facture, un par année.
// L'incrément est atomique côté base : deux réservations simultanées ne
// peuvent pas produire le même numéro.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construit l'adaptateur.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next réserve le prochain numéro de l'année (format "2025-0042").
func (r *SequenceRepo) Next(ctx context.Context, year int) (string, error) {
	var value int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO invoice_sequences (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value`, year).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("réserver un numéro pour %d: %w", year, err)
	}
	return numbering.Format(year, value), nil
}
