// Package directory regroupe le carnet de clients et le catalogue de produits,
// les deux référentiels que le formulaire de facture consulte.
package directory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/htconfort/myconfort-facturation/internal/application/dto"
	"github.com/htconfort/myconfort-facturation/internal/domain"
	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
	"github.com/htconfort/myconfort-facturation/internal/domain/repository"
)

// ClientUseCase gestion du carnet de clients.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construit le cas d'usage.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create enregistre une fiche client. L'email sert de clé de dédoublonnage.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Client{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		PostalCode:  strings.TrimSpace(in.PostalCode),
		City:        strings.TrimSpace(in.City),
		HousingType: strings.TrimSpace(in.HousingType),
		DoorCode:    strings.TrimSpace(in.DoorCode),
		SIRET:       strings.TrimSpace(in.SIRET),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// GetByEmail retrouve une fiche pour préremplir le formulaire.
func (uc *ClientUseCase) GetByEmail(ctx context.Context, email string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(c), nil
}

// List liste le carnet, paginé.
func (uc *ClientUseCase) List(ctx context.Context, limit, offset int) ([]dto.ClientResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	clients, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		PostalCode:  c.PostalCode,
		City:        c.City,
		HousingType: c.HousingType,
		DoorCode:    c.DoorCode,
		SIRET:       c.SIRET,
	}
}
