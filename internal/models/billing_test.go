package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGSTIN(t *testing.T) {
	assert.Equal(t, "09ABCDE1234F1Z5", NormalizeGSTIN(" 09abcde1234f1z5 "))
	assert.Equal(t, "", NormalizeGSTIN("   "))
}

func TestCalculateTotals(t *testing.T) {
	b := &Bill{Items: []BillItem{
		{Quantity: 100, Rate: 10, GSTPercent: 5},
		{Quantity: 1, Rate: 500, GSTPercent: 18},
	}}
	b.CalculateTotals()

	assert.InDelta(t, 1000, b.Items[0].TaxableValue, 1e-9)
	assert.InDelta(t, 50, b.Items[0].GSTAmount, 1e-9)
	assert.InDelta(t, 1050, b.Items[0].LineTotal, 1e-9)
	assert.InDelta(t, 1500, b.Subtotal, 1e-9)
	assert.InDelta(t, 140, b.TotalGST, 1e-9)
	assert.InDelta(t, 1640, b.GrandTotal, 1e-9)
}

func TestCalculateTotalsResetsDerivedFields(t *testing.T) {
	b := &Bill{Items: []BillItem{{Quantity: 2, Rate: 5, GSTPercent: 0, TaxableValue: 999}}}
	b.CalculateTotals()
	assert.InDelta(t, 10, b.Items[0].TaxableValue, 1e-9)
	assert.InDelta(t, 10, b.GrandTotal, 1e-9)
}
