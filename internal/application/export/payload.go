package export

import (
	"github.com/shopspring/decimal"

	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
)

// PayloadLine ligne de produit normalisée du payload d'export.
type PayloadLine struct {
	Name         string              `json:"name"`
	Category     string              `json:"category"`
	Quantity     int                 `json:"quantity"`
	UnitPriceHT  decimal.Decimal     `json:"unit_price_ht"`
	UnitPriceTTC decimal.Decimal     `json:"unit_price_ttc"`
	Discount     decimal.Decimal     `json:"discount"`
	DiscountType entity.DiscountType `json:"discount_type"`
	TotalTTC     decimal.Decimal     `json:"total_ttc"`
}

// Payload enregistrement canonique transmis au webhook. N'existe que le temps
// d'un export ; jamais persisté. Chaînes nettoyées, email en minuscules,
// montants recalculés depuis les lignes puis arrondis à 2 décimales.
type Payload struct {
	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date"` // "2006-01-02"
	EventLocation string `json:"event_location"`

	ClientName        string `json:"client_name"`
	ClientEmail       string `json:"client_email"`
	ClientPhone       string `json:"client_phone"`
	ClientAddress     string `json:"client_address"`
	ClientPostalCode  string `json:"client_postal_code"`
	ClientCity        string `json:"client_city"`
	ClientHousingType string `json:"client_housing_type"`
	ClientDoorCode    string `json:"client_door_code"`
	ClientSIRET       string `json:"client_siret"`

	Products []PayloadLine `json:"products"`

	TaxRate     decimal.Decimal `json:"tax_rate"`
	TotalHT     decimal.Decimal `json:"total_ht"`
	TotalTTC    decimal.Decimal `json:"total_ttc"`
	TotalTVA    decimal.Decimal `json:"total_tva"`
	TotalRemise decimal.Decimal `json:"total_remise"`
	Acompte     decimal.Decimal `json:"acompte"`
	// RemainingAmount est le TTC moins l'acompte, non plancher : diagnostic.
	// La valeur présentée à l'utilisateur est TotalARecevoir, plancher à zéro.
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	TotalARecevoir  decimal.Decimal `json:"total_a_recevoir"`

	PaymentMethod  string `json:"payment_method"`
	DeliveryMethod string `json:"delivery_method"`
	DeliveryNotes  string `json:"delivery_notes"`
	AdvisorName    string `json:"advisor_name"`
	Signed         bool   `json:"signed"`
	TermsAccepted  bool   `json:"terms_accepted"`

	PDFBase64 string `json:"pdf_base64"`
	PDFSizeKB int    `json:"pdf_size_kb"`

	GeneratedAt        string `json:"generated_at"`        // ISO-8601
	GeneratedTimestamp int64  `json:"generated_timestamp"` // epoch millisecondes
}
