package handlers

import (
	"io/fs"
	"log"
	"net/http"
)

// PWAHandler serves the installable-web-app shell. The manifest and the
// service worker live at root paths so the worker's scope covers the
// whole origin, and neither may be cached immutably: the update
// lifecycle depends on the browser re-fetching sw.js to notice a new
// deploy.
type PWAHandler struct {
	staticFS fs.FS
}

// NewPWAHandler creates a new PWA handler
func NewPWAHandler(staticFS fs.FS) *PWAHandler {
	return &PWAHandler{staticFS: staticFS}
}

// Manifest serves the web app manifest.
func (h *PWAHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	h.serve(w, "manifest.json", "application/manifest+json")
}

// ServiceWorker serves sw.js with the root-scope header.
func (h *PWAHandler) ServiceWorker(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Service-Worker-Allowed", "/")
	h.serve(w, "sw.js", "application/javascript")
}

func (h *PWAHandler) serve(w http.ResponseWriter, name, contentType string) {
	content, err := fs.ReadFile(h.staticFS, name)
	if err != nil {
		log.Printf("Failed to read embedded %s: %v", name, err)
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(content)
}
