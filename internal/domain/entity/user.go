package entity

import "time"

// Rôles des comptes de l'application.
const (
	RoleAdmin      = "admin"
	RoleConseiller = "conseiller"
)

// User compte d'un conseiller ou d'un administrateur.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"` // active | disabled
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
