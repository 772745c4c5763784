package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physio-backend/internal/config"
	"physio-backend/internal/services"
)

func TestPWAServiceWorkerHeaders(t *testing.T) {
	staticFS := fstest.MapFS{
		"sw.js":         {Data: []byte("// worker")},
		"manifest.json": {Data: []byte(`{"name":"Physio"}`)},
	}
	h := NewPWAHandler(staticFS)

	rec := httptest.NewRecorder()
	h.ServiceWorker(rec, httptest.NewRequest("GET", "/sw.js", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Service-Worker-Allowed"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "application/javascript", rec.Header().Get("Content-Type"))
	assert.Equal(t, "// worker", rec.Body.String())
}

func TestPWAManifestHeaders(t *testing.T) {
	staticFS := fstest.MapFS{
		"manifest.json": {Data: []byte(`{"name":"Physio"}`)},
	}
	h := NewPWAHandler(staticFS)

	rec := httptest.NewRecorder()
	h.Manifest(rec, httptest.NewRequest("GET", "/manifest.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/manifest+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
}

func TestPageHandlerHome(t *testing.T) {
	templatesFS := fstest.MapFS{
		"index.html": {Data: []byte(`<html><title>{{.SiteName}}</title>{{range .Sections}}<h2>{{.Title}}</h2>{{end}}</html>`)},
	}
	h := NewPageHandler(templatesFS, config.SiteConfig{Name: "Praxis Test"}, "1.2.3")

	rec := httptest.NewRecorder()
	h.Home(rec, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Praxis Test")
	assert.Contains(t, rec.Body.String(), "Leistungen")
}

func TestPageHandlerUnknownPathIs404(t *testing.T) {
	templatesFS := fstest.MapFS{
		"index.html": {Data: []byte(`<html></html>`)},
	}
	h := NewPageHandler(templatesFS, config.SiteConfig{}, "dev")

	rec := httptest.NewRecorder()
	h.Home(rec, httptest.NewRequest("GET", "/no-such-page", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVersionHandler(t *testing.T) {
	svc := services.NewReleaseService("1.0.0", nil)
	h := NewVersionHandler(svc)

	rec := httptest.NewRecorder()
	h.GetVersion(rec, httptest.NewRequest("GET", "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"running":"1.0.0"`)
}

func TestNotifyDeploy(t *testing.T) {
	svc := services.NewReleaseService("1.0.0", nil)
	h := NewVersionHandler(svc)

	req := httptest.NewRequest("POST", "/api/deploy/notify", strings.NewReader(`{"version":"1.1.0"}`))
	rec := httptest.NewRecorder()
	h.NotifyDeploy(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"announced":true`)

	latest, _ := svc.LatestVersion()
	assert.Equal(t, "1.1.0", latest)
}

func TestNotifyDeployMissingVersion(t *testing.T) {
	h := NewVersionHandler(services.NewReleaseService("1.0.0", nil))

	req := httptest.NewRequest("POST", "/api/deploy/notify", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.NotifyDeploy(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
