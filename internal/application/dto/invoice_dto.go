package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
)

// LineItemRequest ligne de produit telle que saisie dans le formulaire.
// Le type de remise accepte les orthographes héritées ("percentage", "amount")
// via le décodage de entity.DiscountType.
type LineItemRequest struct {
	Name         string              `json:"name"`
	Category     string              `json:"category"`
	Quantity     int                 `json:"quantity"`
	UnitPriceTTC decimal.Decimal     `json:"unit_price_ttc"`
	Discount     decimal.Decimal     `json:"discount"`
	DiscountType entity.DiscountType `json:"discount_type"`
}

// SaveInvoiceRequest body pour PUT /api/invoices/:number (le formulaire envoie
// la facture entière ; les totaux éventuellement présents côté client sont
// ignorés et recalculés).
type SaveInvoiceRequest struct {
	Date          string              `json:"date"` // "2006-01-02"
	EventLocation string              `json:"event_location"`
	Client        entity.ClientInfo   `json:"client"`
	Products      []LineItemRequest   `json:"products"`
	TaxRate       decimal.Decimal     `json:"tax_rate"`
	PaymentMethod string              `json:"payment_method"`
	Acompte       decimal.Decimal     `json:"acompte"`
	Delivery      entity.DeliveryInfo `json:"delivery"`
	Signature     string              `json:"signature,omitempty"`
	TermsAccepted bool                `json:"terms_accepted"`
	AdvisorName   string              `json:"advisor_name"`
}

// InvoiceResponse facture complète avec totaux recalculés.
type InvoiceResponse struct {
	Number        string              `json:"number"`
	Date          string              `json:"date"`
	EventLocation string              `json:"event_location"`
	Client        entity.ClientInfo   `json:"client"`
	Products      []entity.LineItem   `json:"products"`
	TaxRate       decimal.Decimal     `json:"tax_rate"`
	PaymentMethod string              `json:"payment_method"`
	Acompte       decimal.Decimal     `json:"acompte"`
	Delivery      entity.DeliveryInfo `json:"delivery"`
	Signed        bool                `json:"signed"`
	TermsAccepted bool                `json:"terms_accepted"`
	AdvisorName   string              `json:"advisor_name"`
	Status        string              `json:"status"`
	Totals        entity.Totals       `json:"totals"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// InvoiceSummaryResponse ligne de listing.
type InvoiceSummaryResponse struct {
	Number      string          `json:"number"`
	Date        string          `json:"date"`
	ClientName  string          `json:"client_name"`
	ClientEmail string          `json:"client_email"`
	TotalTTC    decimal.Decimal `json:"total_ttc"`
	Status      string          `json:"status"`
}

// CreateClientRequest body pour POST /api/clients.
type CreateClientRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	HousingType string `json:"housing_type"`
	DoorCode    string `json:"door_code"`
	SIRET       string `json:"siret,omitempty"`
}

// ClientResponse fiche client en réponse.
type ClientResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	HousingType string `json:"housing_type"`
	DoorCode    string `json:"door_code"`
	SIRET       string `json:"siret,omitempty"`
}

// ProductResponse entrée du catalogue en réponse.
type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	PriceTTC decimal.Decimal `json:"price_ttc"`
}

// EmailInvoiceRequest body pour POST /api/invoices/:number/email.
type EmailInvoiceRequest struct {
	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`
}
