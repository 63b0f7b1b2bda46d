package directory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htconfort/myconfort-facturation/internal/application/directory"
	"github.com/htconfort/myconfort-facturation/internal/application/dto"
	"github.com/htconfort/myconfort-facturation/internal/domain"
	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doubles de test
// ──────────────────────────────────────────────────────────────────────────────

type memClientRepo struct {
	byEmail map[string]*entity.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{byEmail: map[string]*entity.Client{}}
}

func (r *memClientRepo) Create(_ context.Context, c *entity.Client) error {
	if _, ok := r.byEmail[c.Email]; ok {
		return domain.ErrDuplicate
	}
	cp := *c
	r.byEmail[c.Email] = &cp
	return nil
}

func (r *memClientRepo) GetByEmail(_ context.Context, email string) (*entity.Client, error) {
	c, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) List(_ context.Context, limit, _ int) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(r.byEmail))
	for _, c := range r.byEmail {
		if len(out) == limit {
			break
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

type memCatalogRepo struct {
	products []*entity.Product
}

func (r *memCatalogRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products = append(r.products, &cp)
	return nil
}

func (r *memCatalogRepo) List(context.Context) ([]*entity.Product, error) {
	return r.products, nil
}

func (r *memCatalogRepo) ListByCategory(_ context.Context, category string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Carnet de clients
// ──────────────────────────────────────────────────────────────────────────────

func TestClientCreate_NormaliseEmailEtEspaces(t *testing.T) {
	uc := directory.NewClientUseCase(newMemClientRepo())

	c, err := uc.Create(context.Background(), dto.CreateClientRequest{
		Name:  "  Jane Doe ",
		Email: " Jane.DOE@Example.COM ",
		City:  " Paris ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "jane.doe@example.com", c.Email, "l'email est la clé : minuscules et sans espaces")
	assert.Equal(t, "Paris", c.City)
	assert.NotEmpty(t, c.ID)
}

func TestClientCreate_NomOuEmailManquant(t *testing.T) {
	uc := directory.NewClientUseCase(newMemClientRepo())

	_, err := uc.Create(context.Background(), dto.CreateClientRequest{Name: "Jane Doe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateClientRequest{Email: "jane@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientCreate_EmailDejaPris(t *testing.T) {
	uc := directory.NewClientUseCase(newMemClientRepo())

	_, err := uc.Create(context.Background(), dto.CreateClientRequest{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)

	// Même adresse en casse différente : même clé après normalisation.
	_, err = uc.Create(context.Background(), dto.CreateClientRequest{Name: "Jane bis", Email: "JANE@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestClientGetByEmail_Introuvable(t *testing.T) {
	uc := directory.NewClientUseCase(newMemClientRepo())
	_, err := uc.GetByEmail(context.Background(), "absent@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catalogue
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogCreate_ArrondiLePrix(t *testing.T) {
	uc := directory.NewCatalogUseCase(&memCatalogRepo{})

	p, err := uc.Create(context.Background(), directory.CreateProductRequest{
		Name:     "Matelas Premium 140x190",
		Category: entity.CategoryMatelas,
		PriceTTC: decimal.RequireFromString("899.004"),
	})
	require.NoError(t, err)
	assert.Equal(t, "899.00", p.PriceTTC.StringFixed(2))
}

func TestCatalogCreate_Invalide(t *testing.T) {
	uc := directory.NewCatalogUseCase(&memCatalogRepo{})

	_, err := uc.Create(context.Background(), directory.CreateProductRequest{Category: entity.CategoryMatelas})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "désignation requise")

	_, err = uc.Create(context.Background(), directory.CreateProductRequest{
		Name: "Oreiller", Category: entity.CategoryOreillers,
		PriceTTC: decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "prix négatif refusé")
}

func TestCatalogList_FiltreParCategorie(t *testing.T) {
	repo := &memCatalogRepo{}
	uc := directory.NewCatalogUseCase(repo)

	for _, in := range []directory.CreateProductRequest{
		{Name: "Matelas Premium", Category: entity.CategoryMatelas, PriceTTC: decimal.RequireFromString("899")},
		{Name: "Oreiller Confort", Category: entity.CategoryOreillers, PriceTTC: decimal.RequireFromString("79.90")},
		{Name: "Matelas Souple", Category: entity.CategoryMatelas, PriceTTC: decimal.RequireFromString("649")},
	} {
		_, err := uc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	all, err := uc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matelas, err := uc.List(context.Background(), entity.CategoryMatelas)
	require.NoError(t, err)
	assert.Len(t, matelas, 2)
}
