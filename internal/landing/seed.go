package landing

import "strings"

// TemplateSeed is one niche of the marketing-page catalog.
type TemplateSeed struct {
	Category       string `json:"category"`
	Specialty      string `json:"specialty"`
	CategoryLabel  string `json:"categoryLabel"`
	SpecialtyLabel string `json:"specialtyLabel"`
	Voice          string `json:"voice"`
	ImageURL       string `json:"imageUrl"`
	ThemeKey       string `json:"themeKey"`
}

// Key is the composite catalog key "category:specialty".
func (s TemplateSeed) Key() string {
	return seedKey(s.Category, s.Specialty)
}

const (
	fallbackVoice = "Atención cercana y resultados que se notan desde el primer día."
	fallbackImage = "https://images.unsplash.com/photo-1497366216548-37526070297c?auto=format&fit=crop&w=1400&q=80"
)

func stock(id string) string {
	return "https://images.unsplash.com/" + id + "?auto=format&fit=crop&w=1400&q=80"
}

var seedCatalog = []TemplateSeed{
	{Category: "restaurant", Specialty: "criolla", CategoryLabel: "Restaurante", SpecialtyLabel: "Comida criolla", Voice: "Sazón de casa con recetas de siempre, servidas como en familia.", ImageURL: stock("photo-1504674900247-0877df9cc836"), ThemeKey: "warm"},
	{Category: "restaurant", Specialty: "cevicheria", CategoryLabel: "Restaurante", SpecialtyLabel: "Cevichería", Voice: "Pescado del día y leche de tigre preparada al momento.", ImageURL: stock("photo-1535399831218-d5bd36d1a6b3"), ThemeKey: "fresh"},
	{Category: "restaurant", Specialty: "polleria", CategoryLabel: "Restaurante", SpecialtyLabel: "Pollería", Voice: "Pollo a la brasa jugoso, papas crocantes y cremas de la casa.", ImageURL: stock("photo-1598103442097-8b74394b95c6"), ThemeKey: "bold"},
	{Category: "restaurant", Specialty: "chifa", CategoryLabel: "Restaurante", SpecialtyLabel: "Chifa", Voice: "Wok al fuego vivo y la fusión que todos piden los domingos.", ImageURL: stock("photo-1563245372-f21724e3856d"), ThemeKey: "bold"},
	{Category: "restaurant", Specialty: "pizzeria", CategoryLabel: "Restaurante", SpecialtyLabel: "Pizzería", Voice: "Masa madre, horno caliente y delivery que llega a tiempo.", ImageURL: stock("photo-1513104890138-7c749659a591"), ThemeKey: "warm"},
	{Category: "restaurant", Specialty: "cafeteria", CategoryLabel: "Restaurante", SpecialtyLabel: "Cafetería", Voice: "Café de origen peruano y postres recién horneados.", ImageURL: stock("photo-1495474472287-4d71bcdd2085"), ThemeKey: "calm"},
	{Category: "health", Specialty: "dentista", CategoryLabel: "Salud", SpecialtyLabel: "Odontología", Voice: "Sonrisas sanas con tratamientos sin dolor y precios claros.", ImageURL: stock("photo-1588776814546-1ffcf47267a5"), ThemeKey: "fresh"},
	{Category: "health", Specialty: "nutricion", CategoryLabel: "Salud", SpecialtyLabel: "Nutrición", Voice: "Planes de alimentación reales que se adaptan a tu rutina.", ImageURL: stock("photo-1490645935967-10de6ba17061"), ThemeKey: "fresh"},
	{Category: "health", Specialty: "psicologia", CategoryLabel: "Salud", SpecialtyLabel: "Psicología", Voice: "Un espacio seguro para hablar, entenderte y avanzar.", ImageURL: stock("photo-1527689368864-3a821dbccc34"), ThemeKey: "calm"},
	{Category: "health", Specialty: "fisioterapia", CategoryLabel: "Salud", SpecialtyLabel: "Fisioterapia", Voice: "Recupera tu movilidad con terapias guiadas por especialistas.", ImageURL: stock("photo-1576091160550-2173dba999ef"), ThemeKey: "calm"},
	{Category: "beauty", Specialty: "barberia", CategoryLabel: "Belleza", SpecialtyLabel: "Barbería", Voice: "Cortes clásicos, fades precisos y barba perfilada a navaja.", ImageURL: stock("photo-1503951914875-452162b0f3f1"), ThemeKey: "bold"},
	{Category: "beauty", Specialty: "salon", CategoryLabel: "Belleza", SpecialtyLabel: "Salón de belleza", Voice: "Color, corte y peinado con las tendencias de temporada.", ImageURL: stock("photo-1560066984-138dadb4c035"), ThemeKey: "elegant"},
	{Category: "beauty", Specialty: "spa", CategoryLabel: "Belleza", SpecialtyLabel: "Spa", Voice: "Masajes y rituales de relajación para desconectarte de verdad.", ImageURL: stock("photo-1544161515-4ab6ce6db874"), ThemeKey: "elegant"},
	{Category: "beauty", Specialty: "unas", CategoryLabel: "Belleza", SpecialtyLabel: "Uñas", Voice: "Manicure y diseños que duran, con productos de calidad.", ImageURL: stock("photo-1604654894610-df63bc536371"), ThemeKey: "elegant"},
	{Category: "fitness", Specialty: "gimnasio", CategoryLabel: "Fitness", SpecialtyLabel: "Gimnasio", Voice: "Equipos modernos y entrenadores que te acompañan en cada meta.", ImageURL: stock("photo-1534438327276-14e5300c3a48"), ThemeKey: "bold"},
	{Category: "fitness", Specialty: "yoga", CategoryLabel: "Fitness", SpecialtyLabel: "Yoga", Voice: "Clases para todos los niveles, cuerpo fuerte y mente en calma.", ImageURL: stock("photo-1506126613408-eca07ce68773"), ThemeKey: "calm"},
	{Category: "fitness", Specialty: "crossfit", CategoryLabel: "Fitness", SpecialtyLabel: "CrossFit", Voice: "Entrenamientos intensos en comunidad, escalados a tu nivel.", ImageURL: stock("photo-1517963879433-6ad2b056d712"), ThemeKey: "bold"},
	{Category: "services", Specialty: "gasfiteria", CategoryLabel: "Servicios", SpecialtyLabel: "Gasfitería", Voice: "Reparaciones rápidas y garantizadas, sin sorpresas en el precio.", ImageURL: stock("photo-1581244277943-fe4a9c777189"), ThemeKey: "fresh"},
	{Category: "services", Specialty: "electricista", CategoryLabel: "Servicios", SpecialtyLabel: "Electricidad", Voice: "Instalaciones seguras hechas por técnicos certificados.", ImageURL: stock("photo-1621905251918-48416bd8575a"), ThemeKey: "bold"},
	{Category: "services", Specialty: "abogado", CategoryLabel: "Servicios", SpecialtyLabel: "Asesoría legal", Voice: "Te explicamos tus opciones en lenguaje claro y defendemos tus intereses.", ImageURL: stock("photo-1589829545856-d10d557cf95f"), ThemeKey: "elegant"},
	{Category: "services", Specialty: "contador", CategoryLabel: "Servicios", SpecialtyLabel: "Contabilidad", Voice: "Tus impuestos y libros al día para que te enfoques en vender.", ImageURL: stock("photo-1554224155-6726b3ff858f"), ThemeKey: "calm"},
	{Category: "education", Specialty: "idiomas", CategoryLabel: "Educación", SpecialtyLabel: "Idiomas", Voice: "Aprende a conversar desde la primera clase con profesores nativos.", ImageURL: stock("photo-1523240795612-9a054b0db644"), ThemeKey: "fresh"},
	{Category: "education", Specialty: "academia", CategoryLabel: "Educación", SpecialtyLabel: "Academia preuniversitaria", Voice: "Preparación intensiva con simulacros y seguimiento personal.", ImageURL: stock("photo-1509062522246-3755977927d7"), ThemeKey: "bold"},
	{Category: "education", Specialty: "musica", CategoryLabel: "Educación", SpecialtyLabel: "Clases de música", Voice: "Instrumento, voz y teoría con un método divertido y constante.", ImageURL: stock("photo-1511379938547-c1f69419868d"), ThemeKey: "warm"},
	{Category: "pets", Specialty: "veterinaria", CategoryLabel: "Mascotas", SpecialtyLabel: "Veterinaria", Voice: "Cuidamos a tu engreído con cariño y atención de emergencia.", ImageURL: stock("photo-1548199973-03cce0bbc87b"), ThemeKey: "fresh"},
	{Category: "pets", Specialty: "grooming", CategoryLabel: "Mascotas", SpecialtyLabel: "Grooming", Voice: "Baño, corte y spa para que tu mascota luzca y se sienta genial.", ImageURL: stock("photo-1516734212186-a967f81ad0d7"), ThemeKey: "warm"},
	{Category: "events", Specialty: "fotografia", CategoryLabel: "Eventos", SpecialtyLabel: "Fotografía", Voice: "Capturamos tus momentos con un estilo natural y entrega puntual.", ImageURL: stock("photo-1452587925148-ce544e77e70d"), ThemeKey: "elegant"},
	{Category: "events", Specialty: "catering", CategoryLabel: "Eventos", SpecialtyLabel: "Catering", Voice: "Bocaditos y buffets que hacen que tu evento sea recordado.", ImageURL: stock("photo-1555244162-803834f70033"), ThemeKey: "warm"},
}

// seedAliases maps historical or synonym keys to canonical catalog keys.
var seedAliases = map[string]string{
	"restaurant:comida-criolla":   "restaurant:criolla",
	"restaurant:comida_criolla":   "restaurant:criolla",
	"restaurante:criolla":         "restaurant:criolla",
	"restaurant:ceviche":          "restaurant:cevicheria",
	"restaurant:pollo-a-la-brasa": "restaurant:polleria",
	"restaurant:cafe":             "restaurant:cafeteria",
	"restaurant:pizza":            "restaurant:pizzeria",
	"health:odontologia":          "health:dentista",
	"health:dental":               "health:dentista",
	"health:nutricionista":        "health:nutricion",
	"health:psicologo":            "health:psicologia",
	"beauty:peluqueria":           "beauty:salon",
	"beauty:manicure":             "beauty:unas",
	"fitness:gym":                 "fitness:gimnasio",
	"services:plomeria":           "services:gasfiteria",
	"services:legal":              "services:abogado",
	"services:contabilidad":       "services:contador",
	"education:ingles":            "education:idiomas",
	"pets:veterinario":            "pets:veterinaria",
	"events:foto":                 "events:fotografia",
}

var seedsByKey = func() map[string]TemplateSeed {
	m := make(map[string]TemplateSeed, len(seedCatalog))
	for _, s := range seedCatalog {
		m[s.Key()] = s
	}
	return m
}()

func seedKey(category, specialty string) string {
	return normalize(category) + ":" + normalize(specialty)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Seeds returns the catalog in display order.
func Seeds() []TemplateSeed {
	out := make([]TemplateSeed, len(seedCatalog))
	copy(out, seedCatalog)
	return out
}

// Resolve finds the seed for a category/specialty pair. Aliases are checked
// before the catalog. On a miss it synthesizes a generic seed labelled with
// the raw input and reports found=false.
func Resolve(category, specialty string) (TemplateSeed, bool) {
	key := seedKey(category, specialty)
	if canonical, ok := seedAliases[key]; ok {
		key = canonical
	}
	if s, ok := seedsByKey[key]; ok {
		return s, true
	}
	return fallbackSeed(category, specialty), false
}

func fallbackSeed(category, specialty string) TemplateSeed {
	cat := strings.TrimSpace(category)
	spec := strings.TrimSpace(specialty)
	return TemplateSeed{
		Category:       normalize(category),
		Specialty:      normalize(specialty),
		CategoryLabel:  orDefault(cat, "Negocio"),
		SpecialtyLabel: orDefault(spec, orDefault(cat, "Servicios")),
		Voice:          fallbackVoice,
		ImageURL:       fallbackImage,
		ThemeKey:       fallbackThemeKey,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
