package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/htconfort/myconfort-facturation/internal/domain"
	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
	"github.com/htconfort/myconfort-facturation/internal/domain/pricing"
	"github.com/htconfort/myconfort-facturation/internal/domain/repository"
	"github.com/htconfort/myconfort-facturation/pkg/logger"
)

// PDFRenderer port du collaborateur de rendu : la seule exigence est de
// fournir des octets dont on tire une taille et un base64.
type PDFRenderer interface {
	Render(ctx context.Context, inv *entity.Invoice, totals entity.Totals) ([]byte, error)
}

// Dispatcher port du transport sortant. L'implémentation applique son propre
// délai (30 s par défaut) et distingue timeout, panne réseau et rejet HTTP.
type Dispatcher interface {
	Dispatch(ctx context.Context, p *Payload) error
}

// Mailer port de l'envoi d'e-mails avec pièce jointe PDF.
type Mailer interface {
	SendInvoice(to, subject, body string, pdf []byte, filename string) error
}

// UseCase orchestre le flux d'export : chargement → préconditions → rendu PDF
// → assainissement → validation de schéma → envoi webhook → statut SENT.
//
// Machine à états : Draft(édition) → Validated(ok) → Dispatched(envoyée),
// ou Validated(échec) → Draft(édition). Pas d'état intermédiaire, pas de
// réessai automatique : l'utilisateur redéclenche l'export.
type UseCase struct {
	invoices   repository.InvoiceRepository
	renderer   PDFRenderer
	dispatcher Dispatcher
	mailer     Mailer
	log        *logger.Logger
	now        func() time.Time
}

// NewUseCase construit le cas d'usage. now est injecté pour des horodatages
// déterministes en test ; nil vaut time.Now.
func NewUseCase(
	invoices repository.InvoiceRepository,
	renderer PDFRenderer,
	dispatcher Dispatcher,
	mailer Mailer,
	log *logger.Logger,
	now func() time.Time,
) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{
		invoices:   invoices,
		renderer:   renderer,
		dispatcher: dispatcher,
		mailer:     mailer,
		log:        log,
		now:        now,
	}
}

// Export valide et transmet la facture au webhook.
//
// Toute défaillance interne (panique comprise) est convertie dans la même
// forme de liste d'erreurs que les échecs de validation : l'appelant n'a
// qu'une seule surface d'erreur quel que soit le point de rupture.
func (uc *UseCase) Export(ctx context.Context, number string) (p *Payload, err error) {
	defer func() {
		if r := recover(); r != nil {
			uc.log.Error().Interface("panic", r).Str("invoice", number).Msg("export interrompu")
			p = nil
			err = &ValidationErrors{Messages: []string{fmt.Sprintf("interne : erreur inattendue pendant l'export (%v)", r)}}
		}
	}()

	inv, err := uc.invoices.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("export: charger la facture: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	// Préconditions UI-level, contrôlées avant le schéma pour un message net.
	pre := &ValidationErrors{}
	if !inv.TermsAccepted {
		pre.Add("terms_accepted", "les conditions générales doivent être acceptées avant l'export")
	}
	if !inv.IsSigned() {
		pre.Add("signature", "la facture doit être signée avant l'export")
	}
	if !pre.Empty() {
		return nil, pre
	}

	totals := pricing.ComputeTotals(inv.Products, inv.TaxRate, inv.Acompte)
	pdf, err := uc.renderer.Render(ctx, inv, totals)
	if err != nil {
		return nil, fmt.Errorf("export: rendu PDF: %w", err)
	}

	payload := Sanitize(inv, base64.StdEncoding.EncodeToString(pdf), sizeKB(len(pdf)), uc.now())
	if verr := Validate(payload); verr != nil {
		uc.log.Warn().Str("invoice", number).Int("violations", len(verr.Messages)).Msg("payload refusé par le schéma")
		return nil, verr
	}

	if err := uc.dispatcher.Dispatch(ctx, payload); err != nil {
		return nil, err
	}

	inv.Status = entity.InvoiceStatusSent
	inv.UpdatedAt = uc.now()
	if err := uc.invoices.Save(ctx, inv); err != nil {
		// Le payload est parti ; l'échec de marquage ne doit pas le masquer.
		uc.log.Error().Err(err).Str("invoice", number).Msg("facture envoyée mais statut non enregistré")
	}

	uc.log.Info().Str("invoice", number).Int("pdf_kb", payload.PDFSizeKB).Msg("facture exportée")
	return payload, nil
}

// RenderPDF rend le PDF d'une facture et retourne les octets avec le nom de
// fichier à servir.
func (uc *UseCase) RenderPDF(ctx context.Context, number string) ([]byte, string, error) {
	inv, err := uc.invoices.GetByNumber(ctx, number)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: charger la facture: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	totals := pricing.ComputeTotals(inv.Products, inv.TaxRate, inv.Acompte)
	pdf, err := uc.renderer.Render(ctx, inv, totals)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: rendu: %w", err)
	}
	return pdf, fmt.Sprintf("facture_%s.pdf", inv.Number), nil
}

// SendByEmail rend le PDF et l'envoie au client de la facture.
// Le résultat est un succès ou un échec avec message, sans code structuré.
func (uc *UseCase) SendByEmail(ctx context.Context, number, subject, body string) error {
	inv, err := uc.invoices.GetByNumber(ctx, number)
	if err != nil {
		return fmt.Errorf("email: charger la facture: %w", err)
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	to := strings.ToLower(strings.TrimSpace(inv.Client.Email))
	if to == "" {
		return &ValidationErrors{Messages: []string{"client_email : champ obligatoire manquant"}}
	}
	pdf, filename, err := uc.RenderPDF(ctx, number)
	if err != nil {
		return err
	}
	if subject == "" {
		subject = fmt.Sprintf("Votre facture MYCONFORT n° %s", inv.Number)
	}
	if body == "" {
		body = fmt.Sprintf("Bonjour %s,<br><br>Veuillez trouver ci-joint votre facture n° %s.<br><br>L'équipe MYCONFORT", inv.Client.Name, inv.Number)
	}
	if err := uc.mailer.SendInvoice(to, subject, body, pdf, filename); err != nil {
		return fmt.Errorf("email: envoi: %w", err)
	}
	uc.log.Info().Str("invoice", number).Str("to", to).Msg("facture envoyée par e-mail")
	return nil
}

// sizeKB taille arrondie au kilooctet le plus proche.
func sizeKB(n int) int {
	return (n + 512) / 1024
}
