package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htconfort/myconfort-facturation/internal/domain/entity"
)

// Les deux orthographes historiques de chaque variante sont acceptées en
// entrée et normalisées vers la forme canonique.
func TestParseDiscountType_OrthographesHeritees(t *testing.T) {
	cases := []struct {
		in   string
		want entity.DiscountType
	}{
		{"percent", entity.DiscountPercent},
		{"percentage", entity.DiscountPercent},
		{"PERCENT", entity.DiscountPercent},
		{" percent ", entity.DiscountPercent},
		{"fixed", entity.DiscountFixed},
		{"amount", entity.DiscountFixed},
		{"", entity.DiscountPercent}, // absence de remise : pourcentage neutre
	}
	for _, c := range cases {
		got, err := entity.ParseDiscountType(c.in)
		require.NoError(t, err, "entrée %q", c.in)
		assert.Equal(t, c.want, got, "entrée %q", c.in)
	}
}

func TestParseDiscountType_Inconnu(t *testing.T) {
	_, err := entity.ParseDiscountType("rabais")
	assert.Error(t, err)
}

func TestDiscountType_UnmarshalJSON_Normalise(t *testing.T) {
	var line entity.LineItem
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Matelas","discount_type":"percentage"}`), &line))
	assert.Equal(t, entity.DiscountPercent, line.DiscountType,
		"l'orthographe héritée doit être stockée sous la forme canonique")

	require.NoError(t, json.Unmarshal([]byte(`{"discount_type":"amount"}`), &line))
	assert.Equal(t, entity.DiscountFixed, line.DiscountType)
}

func TestDiscountType_UnmarshalJSON_Inconnu(t *testing.T) {
	var line entity.LineItem
	err := json.Unmarshal([]byte(`{"discount_type":"rabais"}`), &line)
	assert.Error(t, err, "un type de remise inconnu doit être rejeté au décodage")
}

func TestInvoice_IsSigned(t *testing.T) {
	inv := entity.Invoice{}
	assert.False(t, inv.IsSigned())

	inv.Signature = "   "
	assert.False(t, inv.IsSigned(), "des espaces seuls ne valent pas signature")

	inv.Signature = "data:image/png;base64,xxx"
	assert.True(t, inv.IsSigned())
}
