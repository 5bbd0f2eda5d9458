package storefront

import "github.com/ikkim/landing-studio/internal/htmlsafe"

// RuntimeVersion identifies the embedded client runtime fragment.
const RuntimeVersion = "1.4.0"

// OrderHistoryLimit is how many orders the runtime keeps in local storage.
const OrderHistoryLimit = 50

// resolvedContent has every display string resolved to a non-empty value.
type resolvedContent struct {
	HeroTitle           string `json:"heroTitle"`
	HeroSubtitle        string `json:"heroSubtitle"`
	HeroPrimaryButton   string `json:"heroPrimaryButton"`
	HeroSecondaryButton string `json:"heroSecondaryButton"`
	ProductsTitle       string `json:"productsTitle"`
	ProductsSubtitle    string `json:"productsSubtitle"`
	EmptyProductsText   string `json:"emptyProductsText"`
	AddToCartLabel      string `json:"addToCartLabel"`
	CartTitle           string `json:"cartTitle"`
	CartEmptyText       string `json:"cartEmptyText"`
	CheckoutButton      string `json:"checkoutButton"`
	CheckoutTitle       string `json:"checkoutTitle"`
	ConfirmOrderButton  string `json:"confirmOrderButton"`
	OrderSuccessText    string `json:"orderSuccessText"`
	FooterText          string `json:"footerText"`
}

type themeData struct {
	ID       string `json:"id"`
	Accent   string `json:"accent"`
	Accent2  string `json:"accent2"`
	Surface  string `json:"surface"`
	Surface2 string `json:"surface2"`
	Text     string `json:"text"`
	Muted    string `json:"muted"`
	Radius   int    `json:"radius"`
}

type storageKeys struct {
	Cart   string `json:"cart"`
	Orders string `json:"orders"`
}

type dataProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"priceCents"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Badge       string `json:"badge,omitempty"`
	SKU         string `json:"sku,omitempty"`
}

// storefrontData is the JSON document the runtime parses at load.
type storefrontData struct {
	Version      string          `json:"version"`
	StoreID      string          `json:"storeId"`
	StoreName    string          `json:"storeName"`
	Currency     string          `json:"currency"`
	Locale       string          `json:"locale"`
	Whatsapp     string          `json:"whatsapp,omitempty"`
	HistoryLimit int             `json:"historyLimit"`
	Storage      storageKeys     `json:"storage"`
	Theme        themeData       `json:"theme"`
	Content      resolvedContent `json:"content"`
	Products     []dataProduct   `json:"products"`
	Backend      *BackendParams  `json:"backend,omitempty"`
}

// CartStorageKey is the local-storage key holding a store's cart.
func CartStorageKey(storeID string) string {
	return "cart_" + storeID
}

// OrdersStorageKey is the local-storage key holding a store's order history.
func OrdersStorageKey(storeID string) string {
	return "orders_" + storeID
}

func buildData(storeID, storeName, currency, locale, whatsapp string, theme StoreTheme, accent, accent2 string,
	content resolvedContent, products []StoreProduct, backend BackendParams) storefrontData {
	items := make([]dataProduct, 0, len(products))
	for _, p := range products {
		items = append(items, dataProduct{
			ID:          p.ID,
			Name:        orDefault(p.Name, "Producto"),
			PriceCents:  p.PriceCents,
			Description: p.Description,
			ImageURL:    htmlsafe.SafeURL(p.ImageURL),
			Badge:       p.Badge,
			SKU:         p.SKU,
		})
	}

	data := storefrontData{
		Version:      RuntimeVersion,
		StoreID:      storeID,
		StoreName:    storeName,
		Currency:     currency,
		Locale:       locale,
		Whatsapp:     whatsapp,
		HistoryLimit: OrderHistoryLimit,
		Storage: storageKeys{
			Cart:   CartStorageKey(storeID),
			Orders: OrdersStorageKey(storeID),
		},
		Theme: themeData{
			ID:       theme.ID,
			Accent:   accent,
			Accent2:  accent2,
			Surface:  theme.Surface,
			Surface2: theme.Surface2,
			Text:     theme.Text,
			Muted:    theme.Muted,
			Radius:   theme.Radius,
		},
		Content:  content,
		Products: items,
	}
	if backend.Enabled() {
		b := backend
		if b.OrdersCollection == "" {
			b.OrdersCollection = "orders"
		}
		data.Backend = &b
	}
	return data
}
