// ABOUTME: HTTP API over the entity catalog: full payload, entity lists, and server-rendered layouts.
// ABOUTME: A chi router delegating to the pure engine; the interactive adapter lives in the TUI, not here.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/redpolitica/trayectoria/export"
	"github.com/redpolitica/trayectoria/feed"
	"github.com/redpolitica/trayectoria/layout"
	"github.com/redpolitica/trayectoria/timeline"
)

// PayloadSource yields the current payload document. Satisfied by
// *store.Store and by fixed in-memory payloads in tests.
type PayloadSource interface {
	LoadPayload() (feed.Payload, error)
}

// Server exposes the timeline catalog over HTTP.
type Server struct {
	router chi.Router
	source PayloadSource
	cfg    layout.Config
	auth   string // bearer token, empty for loopback-only deployments
}

// NewServer builds a Server with all routes configured.
func NewServer(source PayloadSource, cfg layout.Config, authToken string) *Server {
	s := &Server{
		source: source,
		cfg:    cfg,
		auth:   authToken,
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Group(func(r chi.Router) {
		if s.auth != "" {
			r.Use(s.requireToken)
		}
		r.Get("/api/timeline", s.handleTimeline)
		r.Get("/api/{kind}", s.handleEntityList)
		r.Get("/api/{kind}/{id}/layout", s.handleEntityLayout)
		r.Get("/api/{kind}/{id}/svg", s.handleEntitySVG)
		r.Get("/api/{kind}/{id}/digest", s.handleEntityDigest)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler, delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requireToken enforces bearer-token auth on API routes.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.auth {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTimeline serves the full document-scoped payload.
func (s *Server) handleTimeline(w http.ResponseWriter, _ *http.Request) {
	p, err := s.source.LoadPayload()
	if err != nil {
		log.Printf("load payload: %v", err)
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// entitySummary is the list view: id and display name only.
type entitySummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

func (s *Server) handleEntityList(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	p, err := s.source.LoadPayload()
	if err != nil {
		log.Printf("load payload: %v", err)
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}

	summaries := []entitySummary{}
	for _, e := range p.Entities(kind) {
		summaries = append(summaries, entitySummary{ID: e.ID, DisplayName: e.DisplayName})
	}
	writeJSON(w, http.StatusOK, summaries)
}

// layoutResponse is the declarative layout an external renderer consumes.
type layoutResponse struct {
	Entity   entitySummary `json:"entity"`
	Bounds   []int         `json:"bounds"` // [startYear, endYear]
	RowCount int           `json:"rowCount"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Bars     []barResponse `json:"bars"`
}

type barResponse struct {
	Primary   string   `json:"primary"`
	Secondary string   `json:"secondary"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags,omitempty"`
	Row       int      `json:"row"`
	Left      int      `json:"left"`
	Top       int      `json:"top"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
}

func (s *Server) handleEntityLayout(w http.ResponseWriter, r *http.Request) {
	e, kind, ok := s.lookupEntity(w, r)
	if !ok {
		return
	}
	lay := s.buildLayout(e, kind)

	resp := layoutResponse{
		Entity:   entitySummary{ID: e.ID, DisplayName: e.DisplayName},
		Bounds:   []int{lay.Bounds.StartYear, lay.Bounds.EndYear},
		RowCount: lay.RowCount,
		Width:    lay.Grid.TotalWidth,
		Height:   lay.Height,
		Bars:     []barResponse{},
	}
	for _, bar := range lay.Bars {
		resp.Bars = append(resp.Bars, barResponse{
			Primary:   bar.PrimaryLabel,
			Secondary: bar.SecondaryLabel,
			Category:  bar.Category.String(),
			Tags:      bar.Tags,
			Row:       bar.Row,
			Left:      bar.Left,
			Top:       bar.Top,
			Width:     bar.Width,
			Height:    bar.Height,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEntitySVG(w http.ResponseWriter, r *http.Request) {
	e, kind, ok := s.lookupEntity(w, r)
	if !ok {
		return
	}
	lay := s.buildLayout(e, kind)

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := export.WriteSVG(w, lay, s.cfg); err != nil {
		log.Printf("write svg: %v", err)
	}
}

func (s *Server) handleEntityDigest(w http.ResponseWriter, r *http.Request) {
	e, kind, ok := s.lookupEntity(w, r)
	if !ok {
		return
	}
	lay := s.buildLayout(e, kind)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.WriteDigest(w, e.DisplayName, lay, s.cfg); err != nil {
		log.Printf("write digest: %v", err)
	}
}

// lookupEntity resolves the {kind}/{id} path pair, writing the error
// response itself when the lookup fails.
func (s *Server) lookupEntity(w http.ResponseWriter, r *http.Request) (feed.Entity, feed.Kind, bool) {
	kind, ok := kindFromPath(r)
	if !ok {
		http.NotFound(w, r)
		return feed.Entity{}, kind, false
	}
	p, err := s.source.LoadPayload()
	if err != nil {
		log.Printf("load payload: %v", err)
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return feed.Entity{}, kind, false
	}
	e, found := p.FindEntity(kind, chi.URLParam(r, "id"))
	if !found {
		http.NotFound(w, r)
		return feed.Entity{}, kind, false
	}
	return e, kind, true
}

// buildLayout runs the pure pipeline for one entity.
func (s *Server) buildLayout(e feed.Entity, kind feed.Kind) layout.Layout {
	mode := timeline.ModeSubject
	if kind == feed.KindContainer {
		mode = timeline.ModeContainer
	}
	return layout.Build(timeline.FromEntity(e, mode), s.cfg, time.Now())
}

// kindFromPath maps the plural URL segment to a payload kind.
func kindFromPath(r *http.Request) (feed.Kind, bool) {
	switch chi.URLParam(r, "kind") {
	case "subjects":
		return feed.KindSubject, true
	case "containers":
		return feed.KindContainer, true
	default:
		return feed.KindSubject, false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
