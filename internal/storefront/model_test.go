package storefront

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTheme(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "Exact", id: "onyx", want: "onyx"},
		{name: "Case and spaces", id: "  Ocean ", want: "ocean"},
		{name: "Unknown", id: "neon", want: "aurora"},
		{name: "Empty", id: "", want: "aurora"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupTheme(tt.id).ID)
		})
	}
}

func TestThemes_ReturnsCopy(t *testing.T) {
	themes := Themes()
	require.NotEmpty(t, themes)
	themes[0].Accent = "#000000"

	assert.NotEqual(t, "#000000", LookupTheme(themes[0].ID).Accent)
}

func TestChannel_Decode(t *testing.T) {
	var rgb StoreRgb
	require.NoError(t, json.Unmarshal([]byte(`{"r":"128","g":999,"b":"nope"}`), &rgb))

	assert.Equal(t, "rgb(128,255,0)", rgb.CSS())
	assert.Equal(t, 0, Channel(math.NaN()).Value())
	assert.Equal(t, 7, Channel(7.99).Value())
}

func TestStoreConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      StoreConfig
		wantKeys []string
	}{
		{name: "Valid", cfg: StoreConfig{StoreName: "Tienda", Currency: "PEN"}},
		{name: "Missing name", cfg: StoreConfig{}, wantKeys: []string{"storeName"}},
		{name: "Long name", cfg: StoreConfig{StoreName: strings.Repeat("a", 121)}, wantKeys: []string{"storeName"}},
		{name: "Bad currency", cfg: StoreConfig{StoreName: "T", Currency: "BTC"}, wantKeys: []string{"currency"}},
		{name: "Too many features", cfg: StoreConfig{StoreName: "T", Features: make([]StoreFeature, 9)}, wantKeys: []string{"features"}},
		{name: "Whatsapp without digits", cfg: StoreConfig{StoreName: "T", SupportWhatsapp: "call me"}, wantKeys: []string{"supportWhatsapp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := tt.cfg.Validate()
			if len(tt.wantKeys) == 0 {
				assert.Nil(t, problems)
				return
			}
			for _, k := range tt.wantKeys {
				assert.Contains(t, problems, k)
			}
		})
	}
}

func TestWhatsappDigits(t *testing.T) {
	assert.Equal(t, "51999999999", WhatsappDigits("+51 999-999-999"))
	assert.Equal(t, "", WhatsappDigits("n/a"))
}

func TestDecodeProducts_Lenient(t *testing.T) {
	products, err := DecodeProducts([]byte(`[
		{"id": 12, "name": "Queque", "priceCents": "1500.4", "active": true, "sku": null},
		"not an object",
		{"id": "x", "name": true, "priceCents": {}, "active": "true"}
	]`))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "12", products[0].ID)
	assert.Equal(t, int64(1500), products[0].PriceCents)
	assert.True(t, products[0].Active)
	assert.Equal(t, "", products[0].SKU)

	assert.Equal(t, "true", products[1].Name)
	assert.Equal(t, int64(0), products[1].PriceCents)
	assert.False(t, products[1].Active, "only a JSON true activates a product")
}

func TestDecodeProducts_Shapes(t *testing.T) {
	empty, err := DecodeProducts(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	empty, err = DecodeProducts([]byte("null"))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = DecodeProducts([]byte(`{"id":"1"}`))
	assert.Error(t, err)
}

func TestActiveProducts(t *testing.T) {
	in := []StoreProduct{
		{ID: "a", Active: false},
		{ID: "b", Active: true, PriceCents: -10},
		{ID: "c", Active: true, PriceCents: MaxPriceCents + 5},
	}

	out := ActiveProducts(in)

	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, int64(0), out[0].PriceCents)
	assert.Equal(t, MaxPriceCents, out[1].PriceCents)
}

func TestClampPrice(t *testing.T) {
	assert.Equal(t, int64(0), ClampPrice(-50))
	assert.Equal(t, int64(0), ClampPrice(math.NaN()))
	assert.Equal(t, int64(13), ClampPrice(12.5))
	assert.Equal(t, MaxPriceCents, ClampPrice(2_000_000_000))
}
