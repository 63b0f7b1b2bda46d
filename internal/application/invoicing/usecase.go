// Package invoicing gère le cycle de vie des factures : création d'un
// brouillon numéroté, enregistrement, listing et suppression.
package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/htconfort/myconfort-facturation/internal/application/dto"
	"github.com/htconfort/myconfort-facturation/internal/application/numbering"
	"github.com/htconfort/myconfort-facturation/internal/domain"
	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
	"github.com/htconfort/myconfort-facturation/internal/domain/pricing"
	"github.com/htconfort/myconfort-facturation/internal/domain/repository"
)

// Taux de TVA français standard appliqué par défaut aux nouvelles factures.
var defaultTaxRate = decimal.NewFromInt(20)

// UseCase cas d'usage du cycle de vie des factures.
type UseCase struct {
	repo           repository.InvoiceRepository
	seq            numbering.Sequence
	defaultAdvisor string
	now            func() time.Time
}

// NewUseCase construit le cas d'usage. now est injecté pour les tests ;
// nil vaut time.Now.
func NewUseCase(repo repository.InvoiceRepository, seq numbering.Sequence, defaultAdvisor string, now func() time.Time) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{repo: repo, seq: seq, defaultAdvisor: defaultAdvisor, now: now}
}

// NewDraft crée une facture en mémoire avec un numéro fraîchement réservé et
// la date du jour, puis la persiste comme brouillon.
func (uc *UseCase) NewDraft(ctx context.Context) (*dto.InvoiceResponse, error) {
	now := uc.now()
	number, err := uc.seq.Next(ctx, now.Year())
	if err != nil {
		return nil, fmt.Errorf("facture: réserver un numéro: %w", err)
	}
	inv := &entity.Invoice{
		Number:      number,
		Date:        now,
		TaxRate:     defaultTaxRate,
		AdvisorName: uc.defaultAdvisor,
		Status:      entity.InvoiceStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Save(ctx, inv); err != nil {
		return nil, fmt.Errorf("facture: enregistrer le brouillon: %w", err)
	}
	return uc.toResponse(inv), nil
}

// Save remplace le contenu de la facture par celui du formulaire (écriture
// en bloc, dernier écrivain gagnant) et la promeut au statut SAVED.
// Les totaux transmis par le client sont ignorés : recalcul systématique.
func (uc *UseCase) Save(ctx context.Context, number string, in dto.SaveInvoiceRequest) (*dto.InvoiceResponse, error) {
	existing, err := uc.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	date := existing.Date
	if in.Date != "" {
		parsed, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q", domain.ErrInvalidInput, in.Date)
		}
		date = parsed
	}

	products := make([]entity.LineItem, 0, len(in.Products))
	for _, p := range in.Products {
		line := entity.LineItem{
			Name:         p.Name,
			Category:     p.Category,
			Quantity:     p.Quantity,
			UnitPriceTTC: p.UnitPriceTTC,
			Discount:     p.Discount,
			DiscountType: p.DiscountType,
		}
		line.UnitPriceHT = pricing.UnitPriceHT(line.UnitPriceTTC, in.TaxRate)
		line.TotalTTC = pricing.LineTotal(line.Quantity, line.UnitPriceTTC, line.Discount, line.DiscountType)
		products = append(products, line)
	}

	now := uc.now()
	inv := &entity.Invoice{
		Number:        existing.Number,
		Date:          date,
		EventLocation: in.EventLocation,
		Client:        in.Client,
		Products:      products,
		TaxRate:       in.TaxRate,
		PaymentMethod: in.PaymentMethod,
		Acompte:       in.Acompte,
		Delivery:      in.Delivery,
		Signature:     in.Signature,
		TermsAccepted: in.TermsAccepted,
		AdvisorName:   in.AdvisorName,
		Status:        entity.InvoiceStatusSaved,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     now,
	}
	if err := uc.repo.Save(ctx, inv); err != nil {
		return nil, fmt.Errorf("facture: enregistrer: %w", err)
	}
	return uc.toResponse(inv), nil
}

// Get charge une facture avec ses totaux recalculés.
func (uc *UseCase) Get(ctx context.Context, number string) (*dto.InvoiceResponse, error) {
	inv, err := uc.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(inv), nil
}

// List liste les factures enregistrées (résumés).
func (uc *UseCase) List(ctx context.Context) ([]dto.InvoiceSummaryResponse, error) {
	summaries, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.InvoiceSummaryResponse{
			Number:      s.Number,
			Date:        s.Date.Format("2006-01-02"),
			ClientName:  s.ClientName,
			ClientEmail: s.ClientEmail,
			TotalTTC:    s.TotalTTC,
			Status:      s.Status,
		})
	}
	return out, nil
}

// Delete supprime une facture par numéro (action explicite de l'utilisateur).
func (uc *UseCase) Delete(ctx context.Context, number string) error {
	inv, err := uc.repo.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, number)
}

func (uc *UseCase) toResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		Number:        inv.Number,
		Date:          inv.Date.Format("2006-01-02"),
		EventLocation: inv.EventLocation,
		Client:        inv.Client,
		Products:      inv.Products,
		TaxRate:       inv.TaxRate,
		PaymentMethod: inv.PaymentMethod,
		Acompte:       inv.Acompte,
		Delivery:      inv.Delivery,
		Signed:        inv.IsSigned(),
		TermsAccepted: inv.TermsAccepted,
		AdvisorName:   inv.AdvisorName,
		Status:        inv.Status,
		Totals:        pricing.ComputeTotals(inv.Products, inv.TaxRate, inv.Acompte),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
