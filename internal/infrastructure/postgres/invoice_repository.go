package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
	"github.com/htconfort/myconfort-facturation/internal/domain/pricing"
	"github.com/htconfort/myconfort-facturation/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo persistance des factures : le document complet est stocké en
// JSONB (lecture/écriture en bloc, dernier écrivain gagnant, comme le
// stockage clé-valeur d'origine) avec quelques colonnes de résumé pour le
// listing.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construit l'adaptateur. Passer un pool ou une tx.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Save insère ou remplace la facture entière sous son numéro.
// Le total TTC de résumé est recalculé ici, jamais repris du document.
func (r *InvoiceRepo) Save(ctx context.Context, inv *entity.Invoice) error {
	doc, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("sérialiser la facture: %w", err)
	}
	totals := pricing.ComputeTotals(inv.Products, inv.TaxRate, inv.Acompte)
	query := `
		INSERT INTO invoices (number, date, client_name, client_email, total_ttc, status, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (number) DO UPDATE SET
			date         = EXCLUDED.date,
			client_name  = EXCLUDED.client_name,
			client_email = EXCLUDED.client_email,
			total_ttc    = EXCLUDED.total_ttc,
			status       = EXCLUDED.status,
			doc          = EXCLUDED.doc,
			updated_at   = EXCLUDED.updated_at`
	_, err = r.q.Exec(ctx, query,
		inv.Number, inv.Date, inv.Client.Name, inv.Client.Email,
		totals.TotalTTC.Round(2), inv.Status, doc, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert facture: %w", err)
	}
	return nil
}

// GetByNumber charge le document complet. Retourne (nil, nil) si absent.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	var doc []byte
	err := r.q.QueryRow(ctx, `SELECT doc FROM invoices WHERE number = $1`, number).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select facture: %w", err)
	}
	var inv entity.Invoice
	if err := json.Unmarshal(doc, &inv); err != nil {
		return nil, fmt.Errorf("désérialiser la facture %s: %w", number, err)
	}
	return &inv, nil
}

// List retourne les résumés, factures les plus récentes d'abord.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.InvoiceSummary, error) {
	rows, err := r.q.Query(ctx, `
		SELECT number, date, client_name, client_email, total_ttc, status
		FROM invoices
		ORDER BY date DESC, number DESC`)
	if err != nil {
		return nil, fmt.Errorf("lister les factures: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoiceSummary
	for rows.Next() {
		s := &entity.InvoiceSummary{}
		if err := rows.Scan(&s.Number, &s.Date, &s.ClientName, &s.ClientEmail, &s.TotalTTC, &s.Status); err != nil {
			return nil, fmt.Errorf("scan résumé: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete supprime par numéro.
func (r *InvoiceRepo) Delete(ctx context.Context, number string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE number = $1`, number)
	if err != nil {
		return fmt.Errorf("supprimer la facture: %w", err)
	}
	return nil
}
