// Package storefront turns a store configuration and product list into one
// self-contained HTML document with an embedded cart and checkout runtime.
package storefront

import (
	"embed"
	"fmt"
	"net/url"
	"strings"
	"text/template"
	"time"

	"github.com/ikkim/landing-studio/internal/htmlsafe"
)

//go:embed templates/storefront.html.tmpl
var templateFS embed.FS

const fontStylesheetURL = "https://fonts.googleapis.com/css2?family=Inter:wght@400;600;800&family=Playfair+Display:wght@600;800&display=swap"

var storefrontTemplate = template.Must(template.ParseFS(templateFS, "templates/storefront.html.tmpl"))

// BackendParams are the client document-store connection parameters the
// runtime uses to submit orders.
type BackendParams struct {
	APIKey           string `json:"apiKey"`
	AuthDomain       string `json:"authDomain"`
	ProjectID        string `json:"projectId"`
	AppID            string `json:"appId"`
	SDKURL           string `json:"-"`
	OrdersCollection string `json:"ordersCollection"`
}

// Enabled reports whether enough parameters are present to initialize the SDK.
func (b BackendParams) Enabled() bool {
	return strings.TrimSpace(b.APIKey) != "" && strings.TrimSpace(b.ProjectID) != ""
}

// Generate renders the storefront document for the current calendar year.
func Generate(storeID string, cfg StoreConfig, products []StoreProduct, backend BackendParams) string {
	return Render(storeID, cfg, products, backend, time.Now().Year())
}

// Render is Generate with an explicit copyright year. Output is a pure
// function of its arguments.
func Render(storeID string, cfg StoreConfig, products []StoreProduct, backend BackendParams, year int) string {
	view := buildView(storeID, cfg, products, backend, year)

	var b strings.Builder
	if err := storefrontTemplate.Execute(&b, view); err != nil {
		// Only reachable through a template bug; keep the page usable.
		return fallbackDocument(view.StoreName)
	}
	return b.String()
}

type ctaView struct {
	Href     string
	Label    string
	WhatsApp bool
}

type featureView struct {
	Title    string
	Subtitle string
	Color    string
}

type productView struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	Badge       string
	Price       string
}

// storefrontView carries only escaped strings, except the CSS block values
// which come from the catalog or are computed.
type storefrontView struct {
	Lang        string
	StoreID     string
	StoreName   string
	Title       string
	Description string
	FontURL     string
	SDKScripts  []string

	ThemeID  string
	Accent   string
	Accent2  string
	Surface  string
	Surface2 string
	Text     string
	Muted    string
	Radius   int
	Font     string

	Content    resolvedContent
	PrimaryCTA ctaView
	Features   []featureView
	Products   []productView
	Year       int

	DataJSON       string
	Runtime        string
	RuntimeVersion string
}

func buildView(storeID string, cfg StoreConfig, products []StoreProduct, backend BackendParams, year int) storefrontView {
	theme := LookupTheme(cfg.ThemeID)
	accent, accent2 := theme.Accent, theme.Accent2
	if cfg.CustomRgb != nil {
		if cfg.CustomRgb.Accent != nil {
			accent = cfg.CustomRgb.Accent.CSS()
		}
		if cfg.CustomRgb.Accent2 != nil {
			accent2 = cfg.CustomRgb.Accent2.CSS()
		}
	}

	currency, locale := NormalizeCurrency(cfg.Currency)
	storeName := orDefault(cfg.StoreName, "Mi tienda")
	content := resolveContent(cfg, storeName)
	active := ActiveProducts(products)
	whatsapp := WhatsappDigits(cfg.SupportWhatsapp)

	data := buildData(storeID, storeName, currency, locale, whatsapp, theme, accent, accent2, content, active, backend)
	dataJSON, err := htmlsafe.ScriptJSON(data)
	if err != nil {
		dataJSON = "{}"
	}

	view := storefrontView{
		Lang:        "es",
		StoreID:     htmlsafe.Escape(storeID),
		StoreName:   htmlsafe.Escape(storeName),
		Title:       htmlsafe.Escape(storeName),
		Description: htmlsafe.Escape(orDefault(cfg.Tagline, content.HeroSubtitle)),
		FontURL:     htmlsafe.Escape(fontStylesheetURL),

		ThemeID:  theme.ID,
		Accent:   accent,
		Accent2:  accent2,
		Surface:  theme.Surface,
		Surface2: theme.Surface2,
		Text:     theme.Text,
		Muted:    theme.Muted,
		Radius:   theme.Radius,
		Font:     theme.Font,

		Content:    escapeContent(content),
		PrimaryCTA: buildPrimaryCTA(storeName, whatsapp, content),
		Features:   buildFeatures(cfg.Features),
		Products:   buildProducts(active, currency),
		Year:       year,

		DataJSON:       dataJSON,
		Runtime:        RuntimeSource(),
		RuntimeVersion: RuntimeVersion,
	}
	if backend.Enabled() {
		if sdk := htmlsafe.SafeURL(strings.TrimRight(backend.SDKURL, "/")); sdk != "" {
			view.SDKScripts = []string{
				htmlsafe.Escape(sdk + "/firebase-app-compat.js"),
				htmlsafe.Escape(sdk + "/firebase-firestore-compat.js"),
			}
		}
	}
	return view
}

func resolveContent(cfg StoreConfig, storeName string) resolvedContent {
	c := StoreContent{}
	if cfg.Content != nil {
		c = *cfg.Content
	}
	return resolvedContent{
		HeroTitle:           orDefault(c.HeroTitle, storeName),
		HeroSubtitle:        orDefault(c.HeroSubtitle, orDefault(cfg.Tagline, "Productos seleccionados con cariño, listos para ti.")),
		HeroPrimaryButton:   orDefault(c.HeroPrimaryButton, orDefault(cfg.PrimaryCTA, "Comprar ahora")),
		HeroSecondaryButton: orDefault(c.HeroSecondaryButton, "Ver productos"),
		ProductsTitle:       orDefault(c.ProductsTitle, "Nuestros productos"),
		ProductsSubtitle:    orDefault(c.ProductsSubtitle, "Elige tus favoritos y arma tu pedido en segundos."),
		EmptyProductsText:   orDefault(c.EmptyProductsText, "Pronto tendremos productos disponibles."),
		AddToCartLabel:      orDefault(c.AddToCartLabel, "Agregar al carrito"),
		CartTitle:           orDefault(c.CartTitle, "Tu carrito"),
		CartEmptyText:       orDefault(c.CartEmptyText, "Tu carrito está vacío."),
		CheckoutButton:      orDefault(c.CheckoutButton, "Finalizar pedido"),
		CheckoutTitle:       orDefault(c.CheckoutTitle, "Datos de contacto"),
		ConfirmOrderButton:  orDefault(c.ConfirmOrderButton, "Confirmar pedido"),
		OrderSuccessText:    orDefault(c.OrderSuccessText, "¡Gracias! Recibimos tu pedido y te contactaremos pronto."),
		FooterText:          orDefault(c.FooterText, "Todos los derechos reservados."),
	}
}

func escapeContent(c resolvedContent) resolvedContent {
	e := htmlsafe.Escape
	return resolvedContent{
		HeroTitle:           e(c.HeroTitle),
		HeroSubtitle:        e(c.HeroSubtitle),
		HeroPrimaryButton:   e(c.HeroPrimaryButton),
		HeroSecondaryButton: e(c.HeroSecondaryButton),
		ProductsTitle:       e(c.ProductsTitle),
		ProductsSubtitle:    e(c.ProductsSubtitle),
		EmptyProductsText:   e(c.EmptyProductsText),
		AddToCartLabel:      e(c.AddToCartLabel),
		CartTitle:           e(c.CartTitle),
		CartEmptyText:       e(c.CartEmptyText),
		CheckoutButton:      e(c.CheckoutButton),
		CheckoutTitle:       e(c.CheckoutTitle),
		ConfirmOrderButton:  e(c.ConfirmOrderButton),
		OrderSuccessText:    e(c.OrderSuccessText),
		FooterText:          e(c.FooterText),
	}
}

// WhatsappLink builds a wa.me deep link with a pre-filled message.
func WhatsappLink(digits, message string) string {
	return "https://wa.me/" + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

func buildPrimaryCTA(storeName, whatsapp string, content resolvedContent) ctaView {
	if whatsapp == "" {
		return ctaView{Href: "#productos", Label: htmlsafe.Escape(content.HeroPrimaryButton)}
	}
	msg := fmt.Sprintf("Hola %s, quiero hacer un pedido.", storeName)
	return ctaView{
		Href:     htmlsafe.Escape(WhatsappLink(whatsapp, msg)),
		Label:    htmlsafe.Escape(content.HeroPrimaryButton),
		WhatsApp: true,
	}
}

var defaultFeatures = []StoreFeature{
	{Title: "Envíos rápidos", Subtitle: "Recibe tu pedido en tiempo récord."},
	{Title: "Pago seguro", Subtitle: "Coordina el medio de pago que prefieras."},
	{Title: "Atención personalizada", Subtitle: "Resolvemos tus dudas al instante."},
}

func buildFeatures(features []StoreFeature) []featureView {
	if len(features) == 0 {
		features = defaultFeatures[:defaultFeatureSet]
	}
	if len(features) > MaxFeatures {
		features = features[:MaxFeatures]
	}
	out := make([]featureView, 0, len(features))
	for _, f := range features {
		out = append(out, featureView{
			Title:    htmlsafe.Escape(orDefault(f.Title, "Beneficio")),
			Subtitle: htmlsafe.Escape(f.Subtitle),
			Color:    htmlsafe.Escape(htmlsafe.CSSValue(f.Color)),
		})
	}
	return out
}

func buildProducts(products []StoreProduct, currency string) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, productView{
			ID:          htmlsafe.Escape(p.ID),
			Name:        htmlsafe.Escape(orDefault(p.Name, "Producto")),
			Description: htmlsafe.Escape(p.Description),
			ImageURL:    htmlsafe.Escape(htmlsafe.SafeURL(p.ImageURL)),
			Badge:       htmlsafe.Escape(p.Badge),
			Price:       htmlsafe.Escape(FormatMoney(p.PriceCents, currency)),
		})
	}
	return out
}

var currencySymbols = map[string]string{
	"PEN": "S/",
	"USD": "$",
	"EUR": "€",
	"MXN": "$",
	"COP": "$",
	"CLP": "$",
	"ARS": "$",
}

// FormatMoney is the server-side price format used before the runtime
// re-renders with locale-aware formatting.
func FormatMoney(cents int64, currency string) string {
	if cents < 0 {
		cents = 0
	}
	symbol, ok := currencySymbols[currency]
	if !ok {
		return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, currency)
	}
	return fmt.Sprintf("%s %d.%02d", symbol, cents/100, cents%100)
}

func fallbackDocument(escapedName string) string {
	return "<!DOCTYPE html><html lang=\"es\"><head><meta charset=\"utf-8\"><title>" + escapedName +
		"</title></head><body><h1>" + escapedName + "</h1></body></html>"
}
