// Package pdf implémente le rendu de la facture MYCONFORT avec Maroto v2.
//
// Mise en page A4 :
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER : MYCONFORT + SIRET     │  N° facture + date + lieu │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENT : nom, adresse, contact, logement, code porte       │
//	│  LIVRAISON : mode + observations                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE : Qté | Désignation | PU TTC | Remise | Total TTC    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAUX : HT / TVA / TTC / remise / acompte / reste à payer │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Signature + mention CGV                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/htconfort/myconfort-facturation/internal/application/export"
	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
	appconfig "github.com/htconfort/myconfort-facturation/pkg/config"
	"github.com/htconfort/myconfort-facturation/pkg/money"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 71, Green: 122, Blue: 12} // vert MYCONFORT
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoGenerator implémente export.PDFRenderer avec Maroto v2.
type MarotoGenerator struct {
	societe appconfig.SocieteConfig
}

var _ export.PDFRenderer = (*MarotoGenerator)(nil)

// NewMarotoGenerator construit le générateur avec l'identité de la société.
func NewMarotoGenerator(societe appconfig.SocieteConfig) *MarotoGenerator {
	return &MarotoGenerator{societe: societe}
}

// Render génère le PDF de la facture et retourne ses octets.
func (g *MarotoGenerator) Render(_ context.Context, inv *entity.Invoice, totals entity.Totals) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Facture %s", inv.Number), true).
		WithAuthor(g.societe.Nom, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(inv))
	if inv.Delivery.Method != "" || inv.Delivery.Notes != "" {
		m.AddRows(deliveryRow(inv.Delivery))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(inv.Products) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(inv, totals)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(signatureRow(inv))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: générer le document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow : société (gauche), numéro + date + lieu (droite).
func (g *MarotoGenerator) headerRow(inv *entity.Invoice) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(g.societe.Nom, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(g.societe.Adresse, "—"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New("SIRET : "+nonEmpty(g.societe.SIRET, "—"), props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Date : "+inv.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
			text.New("Lieu : "+nonEmpty(inv.EventLocation, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 16, Color: colorGray,
			}),
		),
	)
}

// clientRow : coordonnées du client telles que figées sur la facture.
func clientRow(inv *entity.Invoice) core.Row {
	c := inv.Client
	adresse := fmt.Sprintf("%s, %s %s", c.Address, c.PostalCode, c.City)
	logement := fmt.Sprintf("Logement : %s   |   Code porte : %s",
		nonEmpty(c.HousingType, "—"), nonEmpty(c.DoorCode, "—"))
	if c.SIRET != "" {
		logement += "   |   SIRET : " + c.SIRET
	}
	return row.New(18).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(adresse, props.Text{Size: 8, Top: 10, Color: colorGray}),
			text.New(fmt.Sprintf("Email : %s   |   Tél : %s",
				nonEmpty(c.Email, "—"), nonEmpty(c.Phone, "—")),
				props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
	)
}

// deliveryRow : modalités de livraison.
func deliveryRow(d entity.DeliveryInfo) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("LIVRAISON", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   %s", nonEmpty(d.Method, "—"), d.Notes),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

// tableHeaderRow : entête de la table des lignes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qté", 1, align.Center),
		h("Désignation", 5, align.Left),
		h("PU TTC", 2, align.Right),
		h("Remise", 2, align.Right),
		h("Total TTC", 2, align.Right),
	)
}

// tableLineRows : une ligne de table par produit.
func tableLineRows(lines []entity.LineItem) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		remise := "—"
		if l.Discount.IsPositive() {
			if l.DiscountType == entity.DiscountFixed {
				remise = "-" + money.FormatEUR(l.Discount) + "/u"
			} else {
				remise = "-" + l.Discount.StringFixed(0) + "%"
			}
		}
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				fmt.Sprintf("%s (%s)", l.Name, l.Category),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money.FormatEUR(l.UnitPriceTTC),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				remise,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				money.FormatEUR(l.TotalTTC),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return out
}

// totalsRows : bloc des totaux aligné à droite, reste à payer en évidence.
func totalsRows(inv *entity.Invoice, totals entity.Totals) []core.Row {
	pair := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 9.0
		color := colorGray
		if bold {
			style = fontstyle.Bold
			size = 10
			color = colorPrimary
		}
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2, Color: color,
			})),
			col.New(3).Add(text.New(value, props.Text{
				Style: style, Size: size, Align: align.Right, Right: 1, Color: color,
			})),
		)
	}

	rows := []core.Row{
		pair(fmt.Sprintf("Total HT (TVA %s%%) :", inv.TaxRate.StringFixed(0)), money.FormatEUR(totals.TotalHT), false),
		pair("TVA :", money.FormatEUR(totals.TotalTVA), false),
	}
	if totals.TotalRemise.IsPositive() {
		rows = append(rows, pair("Remise totale :", "-"+money.FormatEUR(totals.TotalRemise), false))
	}
	rows = append(rows, pair("TOTAL TTC :", money.FormatEUR(totals.TotalTTC), true))
	if totals.TotalPercu.IsPositive() {
		rows = append(rows,
			pair("Acompte versé :", "-"+money.FormatEUR(totals.TotalPercu), false),
			pair("RESTE À PAYER :", money.FormatEUR(totals.TotalARecevoir), true),
		)
	}
	return rows
}

// signatureRow : mention de signature électronique.
func signatureRow(inv *entity.Invoice) core.Row {
	mention := "Facture non signée"
	if inv.IsSigned() {
		mention = fmt.Sprintf("Signée électroniquement le %s", inv.UpdatedAt.Format("02/01/2006"))
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(mention, props.Text{Size: 8, Align: align.Right, Color: colorGray, Top: 2}),
		),
	)
}

// footerRow : mention CGV.
func footerRow() core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Conditions générales de vente acceptées par le client. Paiement : "+
				"selon modalités portées sur la facture.", props.Text{
				Size: 7, Align: align.Center, Color: colorGray, Top: 3,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
