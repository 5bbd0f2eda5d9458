// Package landing generates static single-page marketing sites for business
// niches from a small seed catalog.
package landing

import (
	"embed"
	"strings"
	"text/template"
	"time"

	"github.com/ikkim/landing-studio/internal/htmlsafe"
	"github.com/ikkim/landing-studio/internal/storefront"
)

//go:embed templates/landing.html.tmpl
var templateFS embed.FS

var landingTemplate = template.Must(template.ParseFS(templateFS, "templates/landing.html.tmpl"))

// PlaceholderPhone is the WhatsApp number written into generated pages.
// Publishers replace it in the editor.
const PlaceholderPhone = "51999999999"

const fontStylesheetURL = "https://fonts.googleapis.com/css2?family=Poppins:wght@400;600;700&family=Playfair+Display:wght@600;700&display=swap"

// Request is the marketing-page generator input.
type Request struct {
	Category     string `json:"category" form:"category"`
	Specialty    string `json:"specialty" form:"specialty"`
	BusinessName string `json:"businessName" form:"businessName"`
}

// Generate renders the page for the current calendar year.
func Generate(req Request) string {
	return Render(req, time.Now().Year())
}

// Render is Generate with an explicit copyright year.
func Render(req Request, year int) string {
	view := buildView(req, year)

	var b strings.Builder
	if err := landingTemplate.Execute(&b, view); err != nil {
		return "<!DOCTYPE html><html lang=\"es\"><head><meta charset=\"utf-8\"><title>" + view.BusinessName +
			"</title></head><body><h1>" + view.BusinessName + "</h1></body></html>"
	}
	return b.String()
}

type offerView struct {
	Title       string
	Description string
	Price       string
	Featured    bool
}

type faqView struct {
	Question string
	Answer   string
}

// landingView holds escaped strings only; palette values come from the
// theme table.
type landingView struct {
	BusinessName   string
	CategoryLabel  string
	SpecialtyLabel string
	Voice          string
	HeroImage      string
	FontURL        string
	SeedKey        string

	Primary    string
	Secondary  string
	Background string
	Surface    string
	Text       string
	Muted      string
	Font       string

	WhatsappHref string
	Offers       []offerView
	Highlights   []string
	Gallery      []string
	FAQs         []faqView
	Year         int
}

func buildView(req Request, year int) landingView {
	seed, _ := Resolve(req.Category, req.Specialty)
	theme := LookupLandingTheme(seed.ThemeKey)
	e := htmlsafe.Escape

	name := strings.TrimSpace(req.BusinessName)
	if name == "" {
		name = seed.SpecialtyLabel + " Pro"
	}

	offers := deriveOffers(seed.SpecialtyLabel)
	offerViews := make([]offerView, 0, len(offers))
	for _, o := range offers {
		offerViews = append(offerViews, offerView{
			Title:       e(o.Title),
			Description: e(o.Description),
			Price:       e(o.Price),
			Featured:    o.Featured,
		})
	}

	highlights := deriveHighlights(seed.SpecialtyLabel)
	for i := range highlights {
		highlights[i] = e(highlights[i])
	}

	gallery := deriveGallery(seed.SpecialtyLabel, seed.ImageURL)
	for i := range gallery {
		gallery[i] = e(htmlsafe.SafeURL(gallery[i]))
	}

	faqs := deriveFAQs(seed.SpecialtyLabel, name)
	faqViews := make([]faqView, 0, len(faqs))
	for _, f := range faqs {
		faqViews = append(faqViews, faqView{Question: e(f.Question), Answer: e(f.Answer)})
	}

	message := "Hola, quiero información sobre " + strings.ToLower(seed.SpecialtyLabel) + "."

	return landingView{
		BusinessName:   e(name),
		CategoryLabel:  e(seed.CategoryLabel),
		SpecialtyLabel: e(seed.SpecialtyLabel),
		Voice:          e(seed.Voice),
		HeroImage:      e(htmlsafe.SafeURL(seed.ImageURL)),
		FontURL:        e(fontStylesheetURL),
		SeedKey:        e(seed.Key()),

		Primary:    theme.Primary,
		Secondary:  theme.Secondary,
		Background: theme.Background,
		Surface:    theme.Surface,
		Text:       theme.Text,
		Muted:      theme.Muted,
		Font:       theme.Font,

		WhatsappHref: e(storefront.WhatsappLink(PlaceholderPhone, message)),
		Offers:       offerViews,
		Highlights:   highlights,
		Gallery:      gallery,
		FAQs:         faqViews,
		Year:         year,
	}
}
