package export_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htconfort/myconfort-facturation/internal/application/export"
	"github.com/htconfort/myconfort-facturation/internal/domain"
	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
	"github.com/htconfort/myconfort-facturation/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doubles de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	saveErr  error
}

func newFakeInvoiceRepo(invs ...*entity.Invoice) *fakeInvoiceRepo {
	r := &fakeInvoiceRepo{invoices: map[string]*entity.Invoice{}}
	for _, inv := range invs {
		r.invoices[inv.Number] = inv
	}
	return r
}

func (r *fakeInvoiceRepo) Save(_ context.Context, inv *entity.Invoice) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *inv
	r.invoices[inv.Number] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByNumber(_ context.Context, number string) (*entity.Invoice, error) {
	inv, ok := r.invoices[number]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) List(context.Context) ([]*entity.InvoiceSummary, error) { return nil, nil }

func (r *fakeInvoiceRepo) Delete(_ context.Context, number string) error {
	delete(r.invoices, number)
	return nil
}

type fakeRenderer struct {
	pdf      []byte
	err      error
	panicMsg string
}

func (f *fakeRenderer) Render(context.Context, *entity.Invoice, entity.Totals) ([]byte, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.pdf, f.err
}

type fakeDispatcher struct {
	err  error
	sent []*export.Payload
}

func (f *fakeDispatcher) Dispatch(_ context.Context, p *export.Payload) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, p)
	return nil
}

type fakeMailer struct {
	to, subject, filename string
	pdf                   []byte
	err                   error
}

func (f *fakeMailer) SendInvoice(to, subject, _ string, pdf []byte, filename string) error {
	if f.err != nil {
		return f.err
	}
	f.to, f.subject, f.pdf, f.filename = to, subject, pdf, filename
	return nil
}

// exportableInvoice facture signée, CGV acceptées, prête pour l'export.
func exportableInvoice() *entity.Invoice {
	inv := invoiceDirty()
	inv.Number = "2025-0042"
	inv.Status = entity.InvoiceStatusSaved
	return inv
}

func fixedNow() time.Time { return testNow }

func newExportUC(repo *fakeInvoiceRepo, renderer *fakeRenderer, dispatcher *fakeDispatcher, mailer *fakeMailer) *export.UseCase {
	return export.NewUseCase(repo, renderer, dispatcher, mailer, logger.Nop(), fixedNow)
}

// ──────────────────────────────────────────────────────────────────────────────
// Export
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_Succes_EnvoieEtMarqueSENT(t *testing.T) {
	repo := newFakeInvoiceRepo(exportableInvoice())
	dispatcher := &fakeDispatcher{}
	uc := newExportUC(repo, &fakeRenderer{pdf: []byte("%PDF-1.7 fake")}, dispatcher, &fakeMailer{})

	p, err := uc.Export(context.Background(), "2025-0042")
	require.NoError(t, err)
	require.NotNil(t, p)

	require.Len(t, dispatcher.sent, 1, "le payload doit être transmis une fois")
	assert.Equal(t, "2025-0042", p.InvoiceNumber)
	assert.NotEmpty(t, p.PDFBase64)
	assert.True(t, p.Signed)

	saved, err := repo.GetByNumber(context.Background(), "2025-0042")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusSent, saved.Status, "la facture doit passer au statut SENT après envoi")
}

func TestExport_FactureInconnue(t *testing.T) {
	uc := newExportUC(newFakeInvoiceRepo(), &fakeRenderer{pdf: []byte("x")}, &fakeDispatcher{}, &fakeMailer{})

	_, err := uc.Export(context.Background(), "2025-9999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Les préconditions (CGV + signature) sont contrôlées avant le schéma et
// remontées dans la même forme de liste d'erreurs.
func TestExport_PreconditionsManquantes(t *testing.T) {
	inv := exportableInvoice()
	inv.Signature = ""
	inv.TermsAccepted = false
	repo := newFakeInvoiceRepo(inv)
	dispatcher := &fakeDispatcher{}
	uc := newExportUC(repo, &fakeRenderer{pdf: []byte("x")}, dispatcher, &fakeMailer{})

	_, err := uc.Export(context.Background(), inv.Number)

	var verr *export.ValidationErrors
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Messages, 2)
	assert.Contains(t, verr.Messages[0], "terms_accepted")
	assert.Contains(t, verr.Messages[1], "signature")
	assert.Empty(t, dispatcher.sent, "rien ne doit partir si les préconditions échouent")
}

func TestExport_PayloadInvalide_RienNEstEnvoye(t *testing.T) {
	inv := exportableInvoice()
	inv.Client.Email = "" // schéma violé après assainissement
	repo := newFakeInvoiceRepo(inv)
	dispatcher := &fakeDispatcher{}
	uc := newExportUC(repo, &fakeRenderer{pdf: []byte("x")}, dispatcher, &fakeMailer{})

	_, err := uc.Export(context.Background(), inv.Number)

	var verr *export.ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, dispatcher.sent)

	saved, _ := repo.GetByNumber(context.Background(), inv.Number)
	assert.Equal(t, entity.InvoiceStatusSaved, saved.Status, "le statut ne doit pas bouger sans envoi")
}

func TestExport_EchecWebhook_StatutInchange(t *testing.T) {
	inv := exportableInvoice()
	repo := newFakeInvoiceRepo(inv)
	sentinel := errors.New("webhook: erreur réseau")
	uc := newExportUC(repo, &fakeRenderer{pdf: []byte("x")}, &fakeDispatcher{err: sentinel}, &fakeMailer{})

	_, err := uc.Export(context.Background(), inv.Number)
	assert.ErrorIs(t, err, sentinel, "l'erreur de transport doit remonter telle quelle")

	saved, _ := repo.GetByNumber(context.Background(), inv.Number)
	assert.Equal(t, entity.InvoiceStatusSaved, saved.Status)
}

// Une panique interne (ici dans le rendu PDF) est convertie dans la même
// surface d'erreur que les échecs de validation.
func TestExport_PaniqueConvertieEnErreursDeValidation(t *testing.T) {
	inv := exportableInvoice()
	uc := newExportUC(newFakeInvoiceRepo(inv), &fakeRenderer{panicMsg: "index out of range"}, &fakeDispatcher{}, &fakeMailer{})

	p, err := uc.Export(context.Background(), inv.Number)
	assert.Nil(t, p)

	var verr *export.ValidationErrors
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Messages, 1)
	assert.Contains(t, verr.Messages[0], "interne")
}

func TestExport_EchecDuMarquage_NeMasquePasLeSucces(t *testing.T) {
	inv := exportableInvoice()
	repo := newFakeInvoiceRepo(inv)
	uc := newExportUC(repo, &fakeRenderer{pdf: []byte("x")}, &fakeDispatcher{}, &fakeMailer{})

	repo.saveErr = errors.New("connexion perdue")

	p, err := uc.Export(context.Background(), inv.Number)
	assert.NoError(t, err, "le payload est parti : l'échec de marquage est journalisé, pas remonté")
	assert.NotNil(t, p)
}

// ──────────────────────────────────────────────────────────────────────────────
// RenderPDF / SendByEmail
// ──────────────────────────────────────────────────────────────────────────────

func TestRenderPDF_NomDeFichier(t *testing.T) {
	inv := exportableInvoice()
	uc := newExportUC(newFakeInvoiceRepo(inv), &fakeRenderer{pdf: []byte("%PDF")}, &fakeDispatcher{}, &fakeMailer{})

	pdf, filename, err := uc.RenderPDF(context.Background(), inv.Number)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Equal(t, "facture_2025-0042.pdf", filename)
}

func TestSendByEmail_SujetParDefaut(t *testing.T) {
	inv := exportableInvoice()
	mailer := &fakeMailer{}
	uc := newExportUC(newFakeInvoiceRepo(inv), &fakeRenderer{pdf: []byte("%PDF")}, &fakeDispatcher{}, mailer)

	err := uc.SendByEmail(context.Background(), inv.Number, "", "")
	require.NoError(t, err)

	assert.Equal(t, "jane.doe@example.com", mailer.to,
		"l'adresse est celle du client de la facture") // l'adresse brute est en casse mixte
	assert.Contains(t, mailer.subject, "2025-0042")
	assert.Equal(t, "facture_2025-0042.pdf", mailer.filename)
}

func TestSendByEmail_EmailClientManquant(t *testing.T) {
	inv := exportableInvoice()
	inv.Client.Email = ""
	uc := newExportUC(newFakeInvoiceRepo(inv), &fakeRenderer{pdf: []byte("%PDF")}, &fakeDispatcher{}, &fakeMailer{})

	err := uc.SendByEmail(context.Background(), inv.Number, "", "")

	var verr *export.ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages[0], "client_email")
}
