package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Statuts du cycle de vie d'une facture.
const (
	InvoiceStatusDraft = "DRAFT" // en cours d'édition, persistée comme brouillon
	InvoiceStatusSaved = "SAVED" // enregistrée explicitement dans la liste
	InvoiceStatusSent  = "SENT"  // payload validé et transmis au webhook
)

// ClientInfo copie dénormalisée des coordonnées du client au moment de la
// facturation (pas de clé étrangère : le client peut changer après coup).
type ClientInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	HousingType string `json:"housing_type"` // maison, appartement...
	DoorCode    string `json:"door_code"`
	SIRET       string `json:"siret"` // clients professionnels uniquement
}

// DeliveryInfo modalités de livraison, texte libre optionnel.
type DeliveryInfo struct {
	Method string `json:"method"`
	Notes  string `json:"notes"`
}

// Invoice racine d'agrégat d'une transaction : identité, instantané client,
// lignes de produits, taux de TVA unique, paiement, livraison et signature.
//
// Les totaux ne sont jamais portés par l'entité : ils sont recalculés depuis
// les lignes à chaque point de vérité (affichage, PDF, export).
type Invoice struct {
	Number        string          `json:"number"` // unique, compteur annuel
	Date          time.Time       `json:"date"`
	EventLocation string          `json:"event_location"` // foire, salon, magasin
	Client        ClientInfo      `json:"client"`
	Products      []LineItem      `json:"products"` // l'ordre est celui de l'affichage
	TaxRate       decimal.Decimal `json:"tax_rate"` // % appliqué uniformément
	PaymentMethod string          `json:"payment_method"`
	Acompte       decimal.Decimal `json:"acompte"` // versé à la commande
	Delivery      DeliveryInfo    `json:"delivery"`
	Signature     string          `json:"signature,omitempty"` // image encodée, opaque
	TermsAccepted bool            `json:"terms_accepted"`
	AdvisorName   string          `json:"advisor_name"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// IsSigned la présence d'une signature vaut signature.
func (i *Invoice) IsSigned() bool {
	return strings.TrimSpace(i.Signature) != ""
}

// InvoiceSummary ligne de listing (la liste des factures enregistrées n'a pas
// besoin du document complet).
type InvoiceSummary struct {
	Number      string          `json:"number"`
	Date        time.Time       `json:"date"`
	ClientName  string          `json:"client_name"`
	ClientEmail string          `json:"client_email"`
	TotalTTC    decimal.Decimal `json:"total_ttc"`
	Status      string          `json:"status"`
}
