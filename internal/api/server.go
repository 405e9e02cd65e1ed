package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/arajah/artimeline/internal/chart"
	"github.com/arajah/artimeline/internal/domain"
	"github.com/arajah/artimeline/internal/query"
	"github.com/arajah/artimeline/internal/store"
)

const maxImport = 5 * 1024 * 1024 // 5MB

// Server exposes one local timeline session over HTTP.
type Server struct {
	store      *store.Store
	dataPath   string
	exportBase string
	addr       string
}

// New creates a new API server around an already-loaded store. When
// dataPath is non-empty every mutation is written back to it.
func New(s *store.Store, dataPath, exportBase, addr string) *Server {
	if exportBase == "" {
		exportBase = "AR_Timeline_data"
	}
	return &Server{store: s, dataPath: dataPath, exportBase: exportBase, addr: addr}
}

// Handler builds the route table. Split out from Run for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /events", s.listEvents)
	mux.HandleFunc("POST /events", s.addEvent)
	mux.HandleFunc("GET /events/{id}", s.getEvent)
	mux.HandleFunc("PUT /events/{id}", s.updateEvent)
	mux.HandleFunc("DELETE /events/{id}", s.deleteEvent)

	// Projections
	mux.HandleFunc("GET /chart", s.chartRows)
	mux.HandleFunc("GET /meta", s.meta)

	// Bulk transfer
	mux.HandleFunc("POST /import", s.importTimeline)
	mux.HandleFunc("GET /export/json", s.exportJSON)
	mux.HandleFunc("GET /export/csv", s.exportCSV)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	return withCORS(mux)
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	fmt.Printf("Starting server on %s\n", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

// persist writes the working timeline back to disk after a mutation.
func (s *Server) persist() error {
	if s.dataPath == "" {
		return nil
	}
	return s.store.SaveFile(s.dataPath)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crit := query.Criteria{
		Story:     q.Get("story"),
		Era:       q.Get("era"),
		Character: q.Get("character"),
		Category:  q.Get("category"),
		Keyword:   q.Get("q"),
	}

	events := query.Sort(query.Filter(s.store.Events(), crit))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

func (s *Server) addEvent(w http.ResponseWriter, r *http.Request) {
	var ev domain.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.store.Add(ev)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.persist(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// resolve finds the full event id for an exact id or unique-enough prefix.
func (s *Server) resolve(id string) (string, bool) {
	if _, ok := s.store.Get(id); ok {
		return id, true
	}
	for _, e := range s.store.Events() {
		if strings.HasPrefix(e.ID, id) {
			return e.ID, true
		}
	}
	return "", false
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resolve(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	ev, _ := s.store.Get(id)
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resolve(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	var ev domain.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	found, err := s.store.Update(id, ev)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	if err := s.persist(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	updated, _ := s.store.Get(id)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resolve(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	s.store.Delete(id)
	if err := s.persist(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) chartRows(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crit := query.Criteria{
		Story:     q.Get("story"),
		Era:       q.Get("era"),
		Character: q.Get("character"),
		Category:  q.Get("category"),
		Keyword:   q.Get("q"),
	}

	rows := chart.Project(query.Sort(query.Filter(s.store.Events(), crit)))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows":  rows,
		"count": len(rows),
	})
}

func (s *Server) meta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, query.DistinctValues(s.store.Events()))
}

func (s *Server) importTimeline(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImport))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body failed")
		return
	}

	// Reject before touching the store: Deserialize already leaves the
	// store alone on failure, this just picks the status code.
	if err := s.store.Deserialize(body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.persist(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loaded": s.store.Len(),
	})
}

func (s *Server) exportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Serialize()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.exportBase+".json"))
	w.Write(data)
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.store.WriteCSV(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.exportBase+".csv"))
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
