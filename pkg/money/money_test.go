package money_test

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htconfort/myconfort-facturation/pkg/money"
)

func TestFormatEUR_FormatFrancais(t *testing.T) {
	got := money.FormatEUR(decimal.NewFromFloat(1234567.89))

	assert.True(t, strings.HasSuffix(got, " €"),
		"le symbole € doit suivre le montant après une espace insécable, obtenu %q", got)
	assert.Contains(t, got, ",89", "la virgule est le séparateur décimal, obtenu %q", got)
	assert.NotContains(t, got, ".", "pas de point décimal en français, obtenu %q", got)
}

func TestFormatEUR_DeuxDecimalesToujours(t *testing.T) {
	got := money.FormatEUR(decimal.NewFromInt(5))
	assert.Contains(t, got, "5,00", "les montants entiers s'affichent avec 2 décimales, obtenu %q", got)
}

func TestFormatEURFloat_ValeursNonFinies(t *testing.T) {
	// NaN et ±Inf retournent le montant zéro plutôt qu'une chaîne invalide.
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := money.FormatEURFloat(f)
		parsed, err := money.ParseEUR(got)
		require.NoError(t, err, "la sortie doit rester analysable, obtenu %q", got)
		assert.True(t, parsed.IsZero(), "valeur non finie -> zéro, obtenu %q", got)
	}
}

func TestParseEUR_RoundTrip(t *testing.T) {
	for _, s := range []string{"0", "0.01", "899", "1234567.89", "79.9"} {
		d := decimal.RequireFromString(s)
		formatted := money.FormatEUR(d)
		parsed, err := money.ParseEUR(formatted)
		require.NoError(t, err, "analyse de %q", formatted)
		assert.True(t, parsed.Equal(d.Round(2)),
			"aller-retour format/parse : %s -> %q -> %s", s, formatted, parsed)
	}
}

func TestParseEUR_TolereLesEspaces(t *testing.T) {
	for _, s := range []string{
		"1 234,56 €",           // espace ordinaire
		"1\u00a0234,56\u00a0€",   // espace insécable
		"1\u202f234,56\u202f€",   // espace fine insécable
	} {
		got, err := money.ParseEUR(s)
		require.NoError(t, err, "entrée %q", s)
		assert.True(t, got.Equal(decimal.RequireFromString("1234.56")), "entrée %q -> %s", s, got)
	}
}

func TestRound2_DemiSuperieur(t *testing.T) {
	assert.Equal(t, "0.01", money.Round2(decimal.RequireFromString("0.005")).StringFixed(2))
	assert.Equal(t, "992.82", money.Round2(decimal.RequireFromString("992.8249")).StringFixed(2))
	assert.Equal(t, "992.83", money.Round2(decimal.RequireFromString("992.825")).StringFixed(2))
}
