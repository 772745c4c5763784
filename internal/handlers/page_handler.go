package handlers

import (
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"physio-backend/internal/config"
)

// PageHandler renders the marketing pages from the embedded templates.
type PageHandler struct {
	templates *template.Template
	site      config.SiteConfig
	version   string
}

// Section is one content block on the home page.
type Section struct {
	ID    string
	Title string
	Body  string
}

// PriceItem is one row of the pricing table.
type PriceItem struct {
	Treatment string
	Duration  string
	Price     string
}

// NewPageHandler parses the embedded templates once at startup.
func NewPageHandler(templatesFS fs.FS, site config.SiteConfig, version string) *PageHandler {
	tmpl, err := template.ParseFS(templatesFS, "*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	return &PageHandler{templates: tmpl, site: site, version: version}
}

type pageData struct {
	SiteName string
	BaseURL  string
	Version  string
	Sections []Section
	Pricing  []PriceItem
}

// Home renders the single-page site.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	// Anything that is not a known route falls through to here via the
	// router's catch-all; real 404s still get one.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := pageData{
		SiteName: h.site.Name,
		BaseURL:  h.site.BaseURL,
		Version:  h.version,
		Sections: siteSections,
		Pricing:  priceList,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("Failed to render home page: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Robots serves robots.txt.
func (h *PageHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("User-agent: *\nAllow: /\nDisallow: /api/\n"))
}

// The section copy is static content; the practice updates it rarely
// enough that a redeploy is fine.
var siteSections = []Section{
	{ID: "hero", Title: "Ihre Gesundheit in guten Händen", Body: "Moderne Physiotherapie mit persönlicher Betreuung."},
	{ID: "services", Title: "Leistungen", Body: "Krankengymnastik, manuelle Therapie, Lymphdrainage, Massage und Hausbesuche."},
	{ID: "gallery", Title: "Unsere Praxis", Body: "Helle Behandlungsräume und ein moderner Trainingsbereich."},
	{ID: "contact", Title: "Kontakt & Termine", Body: "Rufen Sie uns an oder nutzen Sie das Formular für Ihre Terminanfrage."},
}

var priceList = []PriceItem{
	{Treatment: "Krankengymnastik", Duration: "20 Min.", Price: "27 €"},
	{Treatment: "Manuelle Therapie", Duration: "20 Min.", Price: "31 €"},
	{Treatment: "Manuelle Lymphdrainage", Duration: "30 Min.", Price: "34 €"},
	{Treatment: "Klassische Massage", Duration: "20 Min.", Price: "25 €"},
	{Treatment: "Hausbesuch (Zuschlag)", Duration: "", Price: "18 €"},
}
