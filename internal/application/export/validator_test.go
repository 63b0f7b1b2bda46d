package export_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htconfort/myconfort-facturation/internal/application/export"
	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
)

// validPayload payload complet qui passe la validation sans violation.
func validPayload() *export.Payload {
	return export.Sanitize(invoiceDirty(), "cGRm", 12, testNow)
}

func TestValidate_PayloadValide(t *testing.T) {
	errs := export.Validate(validPayload())
	assert.Nil(t, errs, "un payload complet ne doit produire aucune violation")
}

// Deux manques distincts -> exactement deux messages, pas un message combiné.
func TestValidate_EmailManquantEtProduitsVides_DeuxErreurs(t *testing.T) {
	p := validPayload()
	p.ClientEmail = ""
	p.Products = nil

	errs := export.Validate(p)
	require.NotNil(t, errs)
	require.Len(t, errs.Messages, 2, "une violation par règle : %v", errs.Messages)
	assert.Contains(t, errs.Messages[0], "client_email")
	assert.Contains(t, errs.Messages[1], "products")
}

func TestValidate_EmailInvalide(t *testing.T) {
	p := validPayload()
	p.ClientEmail = "pas-un-email"

	errs := export.Validate(p)
	require.NotNil(t, errs)
	require.Len(t, errs.Messages, 1)
	assert.Contains(t, errs.Messages[0], "client_email")
	assert.Contains(t, errs.Messages[0], "invalide")
}

// Un PDF manquant échoue précisément sur le champ PDF, pas ailleurs.
func TestValidate_PDFManquant_EchoueSurLeChampPDF(t *testing.T) {
	p := validPayload()
	p.PDFBase64 = ""

	errs := export.Validate(p)
	require.NotNil(t, errs)
	require.Len(t, errs.Messages, 1)
	assert.Contains(t, errs.Messages[0], "pdf_base64")
}

func TestValidate_ChampsObligatoiresListesUnParUn(t *testing.T) {
	p := validPayload()
	p.ClientName = ""
	p.ClientPhone = "   " // espaces seuls = manquant
	p.PaymentMethod = ""

	errs := export.Validate(p)
	require.NotNil(t, errs)
	assert.Len(t, errs.Messages, 3)
	joined := strings.Join(errs.Messages, " ; ")
	assert.Contains(t, joined, "client_name")
	assert.Contains(t, joined, "client_phone")
	assert.Contains(t, joined, "payment_method")
}

func TestValidate_LigneInvalide_CheminIndexe(t *testing.T) {
	p := validPayload()
	p.Products[1].Name = ""
	p.Products[1].Quantity = 0

	errs := export.Validate(p)
	require.NotNil(t, errs)
	require.Len(t, errs.Messages, 2)
	assert.Contains(t, errs.Messages[0], "products[1].name")
	assert.Contains(t, errs.Messages[1], "products[1].quantity")
}

// Rejet explicite des montants négatifs : comportement délibéré là où le
// système d'origine les laissait passer silencieusement.
func TestValidate_MontantsNegatifsRejetes(t *testing.T) {
	p := validPayload()
	p.Products[0].UnitPriceTTC = decimal.RequireFromString("-1")
	p.TaxRate = decimal.RequireFromString("-5")
	p.Acompte = decimal.RequireFromString("-10")

	errs := export.Validate(p)
	require.NotNil(t, errs)
	joined := strings.Join(errs.Messages, " ; ")
	assert.Contains(t, joined, "products[0].unit_price_ttc")
	assert.Contains(t, joined, "tax_rate")
	assert.Contains(t, joined, "acompte")
}

func TestValidate_TypeDeRemiseInconnu(t *testing.T) {
	p := validPayload()
	p.Products[0].DiscountType = entity.DiscountType("rabais")

	errs := export.Validate(p)
	require.NotNil(t, errs)
	require.Len(t, errs.Messages, 1)
	assert.Contains(t, errs.Messages[0], "products[0].discount_type")
}

func TestValidationErrors_MessageAgrege(t *testing.T) {
	errs := &export.ValidationErrors{}
	errs.Add("client_email", "champ obligatoire manquant")
	errs.Add("products", "au moins une ligne de produit est requise")

	assert.False(t, errs.Empty())
	assert.Contains(t, errs.Error(), "client_email")
	assert.Contains(t, errs.Error(), "products")
}
