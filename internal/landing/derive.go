package landing

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Offer is one pricing card of the marketing page.
type Offer struct {
	Title       string
	Description string
	Price       string
	Featured    bool
}

// FAQ is one disclosure entry.
type FAQ struct {
	Question string
	Answer   string
}

var offerTiers = [3]struct {
	name       string
	desc       string
	multiplier int
}{
	{name: "Esencial", desc: "Lo básico de %s, ideal para conocernos.", multiplier: 10},
	{name: "Completo", desc: "Nuestra opción más pedida de %s, con todo incluido.", multiplier: 18},
	{name: "Premium", desc: "La experiencia completa de %s con atención prioritaria.", multiplier: 30},
}

var highlightTemplates = []string{
	"Más de 500 clientes felices con nuestro servicio de %s.",
	"Atención por WhatsApp en minutos, también fines de semana.",
	"Precios transparentes: sabes cuánto pagas antes de empezar.",
	"Equipo con experiencia real en %s.",
	"Reserva en línea y confirma en un solo mensaje.",
	"Garantía de satisfacción en cada trabajo de %s.",
	"Aceptamos Yape, Plin, transferencias y tarjetas.",
	"Ubicación céntrica y atención a domicilio en zonas seleccionadas.",
}

var galleryPool = []string{
	stock("photo-1497366811353-6870744d04b2"),
	stock("photo-1521737604893-d14cc237f11d"),
	stock("photo-1556761175-b413da4baf72"),
	stock("photo-1600880292203-757bb62b4baf"),
	stock("photo-1559136555-9303baea8ebd"),
	stock("photo-1522202176988-66273c2fd55f"),
	stock("photo-1556745757-8d76bdb6984b"),
	stock("photo-1573497019940-1c28c88b4f3e"),
}

func labelHash(label string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(label)))
	return h.Sum32()
}

// deriveOffers builds the three pricing cards. The base price is a pure
// function of the specialty label.
func deriveOffers(label string) []Offer {
	base := 3 + int(labelHash(label)%7)
	out := make([]Offer, 0, len(offerTiers))
	for i, tier := range offerTiers {
		out = append(out, Offer{
			Title:       label + " " + tier.name,
			Description: fmt.Sprintf(tier.desc, strings.ToLower(label)),
			Price:       fmt.Sprintf("Desde S/ %d", base*tier.multiplier),
			Featured:    i == 1,
		})
	}
	return out
}

func deriveHighlights(label string) []string {
	start := int(labelHash(label) % uint32(len(highlightTemplates)))
	lower := strings.ToLower(label)
	out := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		tpl := highlightTemplates[(start+i)%len(highlightTemplates)]
		if strings.Contains(tpl, "%s") {
			tpl = fmt.Sprintf(tpl, lower)
		}
		out = append(out, tpl)
	}
	return out
}

// deriveGallery returns the seed image followed by two distinct pool images.
func deriveGallery(label, seedImage string) []string {
	h := labelHash(label)
	first := int(h % uint32(len(galleryPool)))
	second := (first + 1 + int((h>>8)%uint32(len(galleryPool)-1))) % len(galleryPool)
	return []string{seedImage, galleryPool[first], galleryPool[second]}
}

func deriveFAQs(label, businessName string) []FAQ {
	lower := strings.ToLower(label)
	return []FAQ{
		{
			Question: "¿Cómo reservo o hago un pedido?",
			Answer:   "Escríbenos por WhatsApp y " + businessName + " te confirma disponibilidad al instante.",
		},
		{
			Question: "¿Cuánto cuesta el servicio de " + lower + "?",
			Answer:   "Tenemos planes desde el nivel esencial hasta premium. Te enviamos una cotización sin compromiso.",
		},
		{
			Question: "¿Qué medios de pago aceptan?",
			Answer:   "Yape, Plin, transferencia bancaria, tarjetas y efectivo.",
		},
	}
}
