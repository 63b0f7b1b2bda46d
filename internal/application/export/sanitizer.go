package export

import (
	"strings"
	"time"

	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
	"github.com/htconfort/myconfort-facturation/internal/domain/pricing"
	"github.com/htconfort/myconfort-facturation/pkg/money"
)

// DefaultAdvisor nom porté sur le payload quand le formulaire laisse le
// conseiller vide.
const DefaultAdvisor = "MYCONFORT"

// Sanitize convertit une facture vivante, possiblement incohérente, en
// enregistrement canonique prêt pour la validation de schéma.
//
// Les totaux sont recalculés intégralement depuis les lignes : aucun total
// stocké sur la facture n'est considéré fiable après des éditions partielles.
// Les prix unitaires sont arrondis avant le recalcul, si bien qu'une seconde
// passe sur sa propre sortie est identique octet pour octet.
//
// La facture d'entrée n'est jamais mutée.
func Sanitize(inv *entity.Invoice, pdfBase64 string, pdfSizeKB int, now time.Time) *Payload {
	taxRate := money.Round2(inv.TaxRate)
	acompte := money.Round2(inv.Acompte)

	lines := make([]entity.LineItem, 0, len(inv.Products))
	payloadLines := make([]PayloadLine, 0, len(inv.Products))
	for _, p := range inv.Products {
		discountType := p.DiscountType
		if !discountType.Valid() {
			discountType = entity.DiscountPercent
		}
		line := entity.LineItem{
			Name:         strings.TrimSpace(p.Name),
			Category:     strings.TrimSpace(p.Category),
			Quantity:     p.Quantity,
			UnitPriceTTC: money.Round2(p.UnitPriceTTC),
			Discount:     money.Round2(p.Discount),
			DiscountType: discountType,
		}
		line.UnitPriceHT = money.Round2(pricing.UnitPriceHT(line.UnitPriceTTC, taxRate))
		line.TotalTTC = money.Round2(pricing.LineTotal(line.Quantity, line.UnitPriceTTC, line.Discount, line.DiscountType))
		lines = append(lines, line)
		payloadLines = append(payloadLines, PayloadLine{
			Name:         line.Name,
			Category:     line.Category,
			Quantity:     line.Quantity,
			UnitPriceHT:  line.UnitPriceHT,
			UnitPriceTTC: line.UnitPriceTTC,
			Discount:     line.Discount,
			DiscountType: line.DiscountType,
			TotalTTC:     line.TotalTTC,
		})
	}

	totals := pricing.ComputeTotals(lines, taxRate, acompte)
	totalTTC := money.Round2(totals.TotalTTC)

	advisor := strings.TrimSpace(inv.AdvisorName)
	if advisor == "" {
		advisor = DefaultAdvisor
	}

	return &Payload{
		InvoiceNumber: strings.TrimSpace(inv.Number),
		InvoiceDate:   formatDate(inv.Date),
		EventLocation: strings.TrimSpace(inv.EventLocation),

		ClientName:        strings.TrimSpace(inv.Client.Name),
		ClientEmail:       strings.ToLower(strings.TrimSpace(inv.Client.Email)),
		ClientPhone:       strings.TrimSpace(inv.Client.Phone),
		ClientAddress:     strings.TrimSpace(inv.Client.Address),
		ClientPostalCode:  strings.TrimSpace(inv.Client.PostalCode),
		ClientCity:        strings.TrimSpace(inv.Client.City),
		ClientHousingType: strings.TrimSpace(inv.Client.HousingType),
		ClientDoorCode:    strings.TrimSpace(inv.Client.DoorCode),
		ClientSIRET:       strings.TrimSpace(inv.Client.SIRET),

		Products: payloadLines,

		TaxRate:         taxRate,
		TotalHT:         money.Round2(totals.TotalHT),
		TotalTTC:        totalTTC,
		TotalTVA:        money.Round2(totals.TotalTVA),
		TotalRemise:     money.Round2(totals.TotalRemise),
		Acompte:         acompte,
		RemainingAmount: totalTTC.Sub(acompte),
		TotalARecevoir:  money.Round2(totals.TotalARecevoir),

		PaymentMethod:  strings.TrimSpace(inv.PaymentMethod),
		DeliveryMethod: strings.TrimSpace(inv.Delivery.Method),
		DeliveryNotes:  strings.TrimSpace(inv.Delivery.Notes),
		AdvisorName:    advisor,
		Signed:         inv.IsSigned(),
		TermsAccepted:  inv.TermsAccepted,

		PDFBase64: pdfBase64,
		PDFSizeKB: pdfSizeKB,

		GeneratedAt:        now.UTC().Format(time.RFC3339),
		GeneratedTimestamp: now.UnixMilli(),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
