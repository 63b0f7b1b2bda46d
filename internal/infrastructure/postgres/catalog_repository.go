package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/htconfort/myconfort-facturation/internal/domain"
	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
	"github.com/htconfort/myconfort-facturation/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo catalogue de produits MYCONFORT.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construit l'adaptateur.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// Create ajoute un produit au catalogue (nom unique par catégorie).
func (r *CatalogRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO catalog_products (id, name, category, price_ttc, auto_calc_ht, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Category, p.PriceTTC, p.AutoCalcHT, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produit: %w", err)
	}
	return nil
}

// List retourne le catalogue entier, groupé par catégorie puis nom.
func (r *CatalogRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `
		SELECT id, name, category, price_ttc, auto_calc_ht, created_at, updated_at
		FROM catalog_products ORDER BY category, name`)
}

// ListByCategory filtre sur une catégorie ("Matelas", "Oreillers"...).
func (r *CatalogRepo) ListByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	return r.list(ctx, `
		SELECT id, name, category, price_ttc, auto_calc_ht, created_at, updated_at
		FROM catalog_products WHERE category = $1 ORDER BY name`, category)
}

func (r *CatalogRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("lister le catalogue: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p := &entity.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.PriceTTC, &p.AutoCalcHT, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan produit: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
