// Package server renders the field guide website and exposes a small JSON
// API over the merged catalog.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"go-desert-guide/internal/catalog"
	"go-desert-guide/internal/models"
	"go-desert-guide/internal/navigation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

// Catalog is the data surface the server renders from.
type Catalog interface {
	PlantBySlug(ctx context.Context, slug string) (models.PlantRecord, error)
	AllPlants(ctx context.Context) []models.PlantRecord
}

// Server serves the catalog, detail and about pages plus the JSON API.
type Server struct {
	provider  Catalog
	templates *template.Template
	mux       *http.ServeMux

	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

// New creates a Server over the given catalog.
func New(provider Catalog) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		provider:  provider,
		templates: tmpl,
		mux:       http.NewServeMux(),
		registry:  prometheus.NewRegistry(),
	}

	s.requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "desert_guide_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"route", "code"})
	s.requestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "desert_guide_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	})
	s.registry.MustRegister(s.requestsTotal, s.requestDuration)

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.Handle("GET /{$}", s.instrument("catalog", s.handleCatalog))
	s.mux.Handle("GET /plants/{slug}", s.instrument("detail", s.handleDetail))
	s.mux.Handle("GET /about", s.instrument("about", s.handleAbout))

	s.mux.Handle("GET /api/plants", s.instrument("api_plants", s.handleAPIPlants))
	s.mux.Handle("GET /api/plants/{slug}", s.instrument("api_plant", s.handleAPIPlant))
	s.mux.Handle("GET /api/search", s.instrument("api_search", s.handleAPISearch))

	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// statusRecorder captures the response code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		s.requestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.requestDuration.Observe(time.Since(start).Seconds())
	})
}

// catalogPage is the template payload for the listing page.
type catalogPage struct {
	Plants     []models.PlantRecord
	Query      string
	Category   string
	Categories []models.Category
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	plants := s.search(r.Context(), query, category)
	s.render(w, "catalog.html", catalogPage{
		Plants:     plants,
		Query:      query,
		Category:   category,
		Categories: models.Categories(),
	})
}

// search applies the catalog page's filter semantics: case-insensitive
// substring match over common and scientific names plus the exact category
// filter. Full-text search stays a CLI concern; mid-word fragments must
// still match here.
func (s *Server) search(ctx context.Context, query, category string) []models.PlantRecord {
	return catalog.Filter(s.provider.AllPlants(ctx), query, category)
}

// detailPage is the template payload for one plant page.
type detailPage struct {
	Plant    models.PlantRecord
	Images   []models.GalleryImage
	PrevSlug string
	NextSlug string
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	plant, err := s.provider.PlantBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.renderNotFound(w)
			return
		}
		log.WithError(err).Errorf("Failed to load plant %q", slug)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	order := make([]string, 0)
	for _, rec := range s.provider.AllPlants(r.Context()) {
		order = append(order, rec.Slug)
	}
	prev, next := navigation.Neighbors(order, slug)

	s.render(w, "detail.html", detailPage{
		Plant:    plant,
		Images:   catalog.ImageSet(plant),
		PrevSlug: prev,
		NextSlug: next,
	})
}

func (s *Server) handleAbout(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "about.html", nil)
}

func (s *Server) renderNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	if err := s.templates.ExecuteTemplate(w, "notfound.html", nil); err != nil {
		log.WithError(err).Error("Failed to render not-found page")
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.WithError(err).Errorf("Failed to render template %s", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleAPIPlants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.provider.AllPlants(r.Context()))
}

func (s *Server) handleAPIPlant(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	plant, err := s.provider.PlantBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "plant not found", "slug": slug})
			return
		}
		log.WithError(err).Errorf("Failed to load plant %q", slug)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, plant)
}

func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	plants := s.search(r.Context(), query, category)
	if plants == nil {
		plants = []models.PlantRecord{}
	}
	writeJSON(w, http.StatusOK, plants)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode JSON response")
	}
}
