package directory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/htconfort/myconfort-facturation/internal/application/dto"
	"github.com/htconfort/myconfort-facturation/internal/domain"
	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
	"github.com/htconfort/myconfort-facturation/internal/domain/repository"
)

// CatalogUseCase consultation et alimentation du catalogue de produits.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construit le cas d'usage.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// CreateProductRequest body pour POST /api/catalog.
type CreateProductRequest struct {
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	PriceTTC   decimal.Decimal `json:"price_ttc"`
	AutoCalcHT bool            `json:"auto_calc_ht"`
}

// Create ajoute un produit au catalogue (réservé aux admins via le routeur).
func (uc *CatalogUseCase) Create(ctx context.Context, in CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Category) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PriceTTC.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:         uuid.New().String(),
		Name:       name,
		Category:   strings.TrimSpace(in.Category),
		PriceTTC:   in.PriceTTC.Round(2),
		AutoCalcHT: in.AutoCalcHT,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// List retourne le catalogue, filtrable par catégorie.
func (uc *CatalogUseCase) List(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	var (
		products []*entity.Product
		err      error
	)
	if category != "" {
		products, err = uc.repo.ListByCategory(ctx, category)
	} else {
		products, err = uc.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		PriceTTC: p.PriceTTC,
	}
}
