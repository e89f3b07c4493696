// internal/domain/models/content.go
package models

// ContentSnapshot is the complete in-memory representation of all public
// site content at a point in time. It is always fully populated: slices the
// database cannot provide keep the compiled-in defaults, so renderers never
// observe a partially missing snapshot.
type ContentSnapshot struct {
	SiteSettings SiteSettings    `json:"siteSettings"`
	OpeningHours []OpeningHour   `json:"openingHours"`
	Services     []Service       `json:"services"`
	Prices       []PriceCategory `json:"prices"`
	Gallery      []GalleryImage  `json:"gallery"`
	Testimonials []Testimonial   `json:"testimonials"`
	Promotions   []Promotion     `json:"promotions"`
	Legal        Legal           `json:"legal"`
}

// DefaultSnapshot returns the static fallback content bundled at build time.
// It seeds the settings collection on first start and backs every snapshot
// slice until the corresponding collection has at least one row.
func DefaultSnapshot() ContentSnapshot {
	return ContentSnapshot{
		SiteSettings: SiteSettings{
			BrandPrimary: "#b76e79",
			BrandAccent:  "#f3e2e5",
			BookingURL:   "https://www.treatwell.at/salon/glow-studio",
			Phone:        "+43 660 0000000",
			Email:        "hallo@glow-studio.at",
			Address:      "Donaustadtstraße 1, 1220 Wien",
			Instagram:    "https://instagram.com/glowstudio.wien",
			Facebook:     "https://facebook.com/glowstudio.wien",
			LogoURL:      "",
		},
		OpeningHours: []OpeningHour{
			{Day: "Montag", Open: "09:00", Close: "18:00"},
			{Day: "Dienstag", Open: "09:00", Close: "18:00"},
			{Day: "Mittwoch", Open: "09:00", Close: "18:00"},
			{Day: "Donnerstag", Open: "09:00", Close: "20:00"},
			{Day: "Freitag", Open: "09:00", Close: "20:00"},
			{Day: "Samstag", Open: "10:00", Close: "16:00"},
			{Day: "Sonntag", Closed: true},
		},
		Services: []Service{
			{
				Slug:        "wimpernverlaengerung",
				Title:       "Wimpernverlängerung",
				Excerpt:     "Einzeln applizierte Wimpern für einen natürlichen oder dramatischen Look.",
				Description: "<p>Unsere Wimpernverlängerung wird Härchen für Härchen aufgetragen und hält bei guter Pflege mehrere Wochen. Wir beraten Sie zu Länge, Schwung und Volumen.</p>",
				ImageURL:    "/assets/defaults/lashes.jpg",
				Order:       1,
			},
			{
				Slug:        "wimpernlifting",
				Title:       "Wimpernlifting",
				Excerpt:     "Natürlicher Schwung für Ihre eigenen Wimpern, ohne Extensions.",
				Description: "<p>Das Wimpernlifting formt Ihre Naturwimpern von der Basis an nach oben und hält sechs bis acht Wochen. Inklusive Färbung und Pflegeserum.</p>",
				ImageURL:    "/assets/defaults/lifting.jpg",
				Order:       2,
			},
		},
		Prices: []PriceCategory{
			{
				ServiceID: "wimpernverlaengerung",
				Category:  "Neuanlage",
				Items: []PriceItem{
					{Name: "1:1 Technik", Amount: 95, Duration: 120},
					{Name: "Leichtes Volumen", Amount: 115, Duration: 135, Badge: "Beliebt"},
				},
				Order: 1,
			},
		},
		Gallery:      []GalleryImage{},
		Testimonials: []Testimonial{},
		Promotions:   []Promotion{},
		Legal: Legal{
			Impressum:   "<h2>Impressum</h2><p>Glow Studio, Donaustadtstraße 1, 1220 Wien.</p>",
			Datenschutz: "<h2>Datenschutz</h2><p>Wir verarbeiten personenbezogene Daten ausschließlich zur Terminvereinbarung.</p>",
		},
	}
}
