package storefront

import (
	"strings"
	"unicode"
)

// Currency codes accepted by the storefront; the first one is the default.
var currencyLocales = []struct {
	Code   string
	Locale string
}{
	{"PEN", "es-PE"},
	{"USD", "en-US"},
	{"EUR", "es-ES"},
	{"MXN", "es-MX"},
	{"COP", "es-CO"},
	{"CLP", "es-CL"},
	{"ARS", "es-AR"},
}

const (
	MaxFeatures       = 8
	defaultFeatureSet = 3
	maxStoreNameLen   = 120
)

// StoreFeature is one card of the "why buy from us" strip.
type StoreFeature struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Color    string `json:"color,omitempty"`
}

// StoreContent holds the optional display strings. Blank values fall back to
// the hard-coded defaults at render time.
type StoreContent struct {
	HeroTitle           string `json:"heroTitle,omitempty"`
	HeroSubtitle        string `json:"heroSubtitle,omitempty"`
	HeroPrimaryButton   string `json:"heroPrimaryButton,omitempty"`
	HeroSecondaryButton string `json:"heroSecondaryButton,omitempty"`
	ProductsTitle       string `json:"productsTitle,omitempty"`
	ProductsSubtitle    string `json:"productsSubtitle,omitempty"`
	EmptyProductsText   string `json:"emptyProductsText,omitempty"`
	AddToCartLabel      string `json:"addToCartLabel,omitempty"`
	CartTitle           string `json:"cartTitle,omitempty"`
	CartEmptyText       string `json:"cartEmptyText,omitempty"`
	CheckoutButton      string `json:"checkoutButton,omitempty"`
	CheckoutTitle       string `json:"checkoutTitle,omitempty"`
	ConfirmOrderButton  string `json:"confirmOrderButton,omitempty"`
	OrderSuccessText    string `json:"orderSuccessText,omitempty"`
	FooterText          string `json:"footerText,omitempty"`
}

// StoreConfig is the generator's primary input.
type StoreConfig struct {
	StoreName       string         `json:"storeName"`
	Tagline         string         `json:"tagline"`
	Currency        string         `json:"currency"`
	ThemeID         string         `json:"themeId"`
	SupportWhatsapp string         `json:"supportWhatsapp,omitempty"`
	PrimaryCTA      string         `json:"primaryCta,omitempty"`
	CustomRgb       *CustomRgb     `json:"customRgb,omitempty"`
	Content         *StoreContent  `json:"content,omitempty"`
	Features        []StoreFeature `json:"features,omitempty"`
}

// Validate reports field problems keyed by JSON field name. Generation never
// requires a valid config; this is for API-level input checks only.
func (c StoreConfig) Validate() map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(c.StoreName) == "" {
		problems["storeName"] = "store name is required"
	} else if len([]rune(c.StoreName)) > maxStoreNameLen {
		problems["storeName"] = "store name is too long"
	}
	if c.Currency != "" && !IsSupportedCurrency(c.Currency) {
		problems["currency"] = "unsupported currency"
	}
	if len(c.Features) > MaxFeatures {
		problems["features"] = "too many features"
	}
	if c.SupportWhatsapp != "" && WhatsappDigits(c.SupportWhatsapp) == "" {
		problems["supportWhatsapp"] = "whatsapp number must contain digits"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// IsSupportedCurrency reports whether code is in the fixed currency set.
func IsSupportedCurrency(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range currencyLocales {
		if c.Code == code {
			return true
		}
	}
	return false
}

// NormalizeCurrency returns the upper-cased code and its formatting locale,
// falling back to the default currency.
func NormalizeCurrency(code string) (string, string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range currencyLocales {
		if c.Code == code {
			return c.Code, c.Locale
		}
	}
	return currencyLocales[0].Code, currencyLocales[0].Locale
}

// SupportedCurrencies lists the accepted codes in display order.
func SupportedCurrencies() []string {
	out := make([]string, 0, len(currencyLocales))
	for _, c := range currencyLocales {
		out = append(out, c.Code)
	}
	return out
}

// WhatsappDigits strips everything but digits from a phone number.
func WhatsappDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
