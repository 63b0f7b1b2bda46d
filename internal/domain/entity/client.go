package entity

import "time"

// Client entrée du carnet de clients. Les coordonnées copiées sur une facture
// (ClientInfo) restent figées même si cette fiche évolue ensuite.
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	PostalCode  string    `json:"postal_code"`
	City        string    `json:"city"`
	HousingType string    `json:"housing_type"`
	DoorCode    string    `json:"door_code"`
	SIRET       string    `json:"siret"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
