package export

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationErrors porte la liste complète des règles violées, une par champ,
// pour que l'appelant affiche un inventaire exhaustif plutôt que d'imposer
// des cycles corriger-resoumettre.
type ValidationErrors struct {
	Messages []string
}

// Add enregistre une violation : chemin du champ + raison.
func (e *ValidationErrors) Add(field, reason string) {
	e.Messages = append(e.Messages, field+" : "+reason)
}

// Error implémente error.
func (e *ValidationErrors) Error() string {
	return "payload invalide : " + strings.Join(e.Messages, " ; ")
}

// Empty vrai si aucune violation n'a été enregistrée.
func (e *ValidationErrors) Empty() bool {
	return len(e.Messages) == 0
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate contrôle le payload normalisé avant toute sortie du système.
//
// Toutes les violations sont retournées d'un coup. La validation ne mute
// rien : la normalisation a déjà eu lieu dans Sanitize. TermsAccepted est
// typé bool statiquement ; sa véracité est une précondition du flux d'export,
// contrôlée en amont, pas une règle de schéma.
//
// Les prix négatifs, quantités < 1 et taux de TVA négatifs sont rejetés ici :
// choix délibéré là où le système d'origine laissait le comportement indéfini.
func Validate(p *Payload) *ValidationErrors {
	errs := &ValidationErrors{}

	required := []struct {
		field string
		value string
	}{
		{"invoice_number", p.InvoiceNumber},
		{"invoice_date", p.InvoiceDate},
		{"event_location", p.EventLocation},
		{"client_name", p.ClientName},
		{"client_email", p.ClientEmail},
		{"client_phone", p.ClientPhone},
		{"client_address", p.ClientAddress},
		{"client_postal_code", p.ClientPostalCode},
		{"client_city", p.ClientCity},
		{"client_housing_type", p.ClientHousingType},
		{"client_door_code", p.ClientDoorCode},
		{"advisor_name", p.AdvisorName},
		{"payment_method", p.PaymentMethod},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs.Add(r.field, "champ obligatoire manquant")
		}
	}

	if p.ClientEmail != "" && !emailRe.MatchString(p.ClientEmail) {
		errs.Add("client_email", "adresse e-mail invalide")
	}

	if len(p.Products) == 0 {
		errs.Add("products", "au moins une ligne de produit est requise")
	}
	for i, l := range p.Products {
		path := fmt.Sprintf("products[%d]", i)
		if l.Name == "" {
			errs.Add(path+".name", "désignation manquante")
		}
		if l.Category == "" {
			errs.Add(path+".category", "catégorie manquante")
		}
		if l.Quantity < 1 {
			errs.Add(path+".quantity", "la quantité doit être au moins 1")
		}
		if l.UnitPriceTTC.IsNegative() {
			errs.Add(path+".unit_price_ttc", "le prix unitaire ne peut pas être négatif")
		}
		if l.UnitPriceHT.IsNegative() {
			errs.Add(path+".unit_price_ht", "le prix hors taxe ne peut pas être négatif")
		}
		if l.Discount.IsNegative() {
			errs.Add(path+".discount", "la remise ne peut pas être négative")
		}
		if !l.DiscountType.Valid() {
			errs.Add(path+".discount_type", "type de remise inconnu")
		}
		if l.TotalTTC.IsNegative() {
			errs.Add(path+".total_ttc", "le total de ligne ne peut pas être négatif")
		}
	}

	numeric := []struct {
		field string
		neg   bool
	}{
		{"tax_rate", p.TaxRate.IsNegative()},
		{"total_ht", p.TotalHT.IsNegative()},
		{"total_ttc", p.TotalTTC.IsNegative()},
		{"total_tva", p.TotalTVA.IsNegative()},
		{"acompte", p.Acompte.IsNegative()},
		{"remaining_amount", p.RemainingAmount.IsNegative()},
	}
	for _, n := range numeric {
		if n.neg {
			errs.Add(n.field, "la valeur doit être positive ou nulle")
		}
	}

	if p.PDFBase64 == "" {
		errs.Add("pdf_base64", "document PDF manquant")
	}
	if p.PDFSizeKB < 0 {
		errs.Add("pdf_size_kb", "taille de PDF invalide")
	}

	if errs.Empty() {
		return nil
	}
	return errs
}
