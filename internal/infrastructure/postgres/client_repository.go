package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/htconfort/myconfort-facturation/internal/domain"
	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
	"github.com/htconfort/myconfort-facturation/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo carnet de clients.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construit l'adaptateur.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste une fiche client. L'email est unique dans le carnet.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO clients (id, name, email, phone, address, postal_code, city, housing_type, door_code, siret, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.PostalCode, c.City,
		c.HousingType, c.DoorCode, nullIfEmpty(c.SIRET), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByEmail retourne la fiche ou (nil, nil) si absente.
func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	c := &entity.Client{}
	var siret *string
	err := r.q.QueryRow(ctx, `
		SELECT id, name, email, phone, address, postal_code, city, housing_type, door_code, siret, created_at, updated_at
		FROM clients WHERE email = $1`, email).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.PostalCode, &c.City,
		&c.HousingType, &c.DoorCode, &siret, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select client: %w", err)
	}
	if siret != nil {
		c.SIRET = *siret
	}
	return c, nil
}

// List liste le carnet par ordre alphabétique.
func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, email, phone, address, postal_code, city, housing_type, door_code, siret, created_at, updated_at
		FROM clients ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("lister les clients: %w", err)
	}
	defer rows.Close()

	var out []*entity.Client
	for rows.Next() {
		c := &entity.Client{}
		var siret *string
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.PostalCode, &c.City,
			&c.HousingType, &c.DoorCode, &siret, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		if siret != nil {
			c.SIRET = *siret
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
