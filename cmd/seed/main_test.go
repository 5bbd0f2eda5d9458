package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseProductRows(t *testing.T) {
	rows := [][]string{
		{"p1", "Anillo", "19.90", "Plata 950", "https://img/1.jpg", "", "Nuevo", "AN-1"},
		{"", "  ", "10"},
		{"", "Collar", "1,250.5", "", "", "no"},
		{"", "Pulsera"},
	}

	products, skipped := parseProductRows(rows)

	require.Len(t, products, 3)
	assert.Equal(t, 1, skipped)

	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, int64(1990), products[0].PriceCents)
	assert.True(t, products[0].Active)
	assert.Equal(t, "Nuevo", products[0].Badge)
	assert.Equal(t, "AN-1", products[0].SKU)

	assert.Equal(t, int64(125050), products[1].PriceCents)
	assert.False(t, products[1].Active)

	assert.Equal(t, int64(0), products[2].PriceCents)
	assert.True(t, products[2].Active)
}

func TestParsePriceCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12", 1200},
		{"0.5", 50},
		{"-5", 0},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePriceCents(tt.in))
		})
	}
}

func TestReadProductsFromXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.xlsx")

	f := excelize.NewFile()
	sheet := "Products"
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"id", "name", "price", "description", "image_url", "active", "badge", "sku"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"", "Aretes", 35.5, "Oro", "", "true"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"", "", 10}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	products, skipped, err := readProductsFromXLSX(path, sheet)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "Aretes", products[0].Name)
	assert.Equal(t, int64(3550), products[0].PriceCents)

	_, _, err = readProductsFromXLSX(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	assert.Error(t, err)
}
