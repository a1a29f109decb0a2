package main

import (
	"bufio"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/liip/sheriff"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Server struct {
	fleet    *Fleet
	feed     VehicleFeedSource
	stats    Stats
	renderer *Renderer
	hub      *wsHub
	now      func() time.Time
}

func NewServer(cfg *Config, fleet *Fleet) (*Server, error) {
	renderer, err := NewRenderer(cfg.Map)
	if err != nil {
		return nil, err
	}
	return &Server{
		fleet:    fleet,
		feed:     NewStaticVehicleFeedSource(fleet),
		stats:    resolveStats(cfg.Stats, fleet),
		renderer: renderer,
		hub:      newHub(),
		now:      time.Now,
	}, nil
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	s.registerRoutes(r)
	r.Use(withLogging)
	return r
}

// Close ends every live view session.
func (s *Server) Close() {
	s.hub.closeAll()
}

func (s *Server) registerRoutes(r *mux.Router) {
	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/vehicles", s.handleVehicles).Methods(http.MethodGet)
	r.HandleFunc("/api/vehicles.pb", s.handleGtfsRt).Methods(http.MethodGet)
	r.HandleFunc("/api/vehicles/{id}", s.handleVehicle).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", s.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWebSocket)
	r.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)
}

// newDashboardFromQuery builds a throwaway view for a page request, using
// ?tab= and ?selected= as the UI state.
func (s *Server) newDashboardFromQuery(r *http.Request) (*Dashboard, error) {
	d := NewDashboard(s.fleet, s.stats)
	q := r.URL.Query()
	mode, err := ParsePanelMode(q.Get("tab"))
	if err != nil {
		return nil, err
	}
	if err := d.SetMode(mode); err != nil {
		return nil, err
	}
	if id := q.Get("selected"); id != "" {
		if err := d.Select(id); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.newDashboardFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	vm, err := d.View()
	if err != nil {
		log.Error().Err(err).Msg("could not build dashboard view")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, vm); err != nil {
		log.Error().Err(err).Msg("could not render dashboard")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.feed.Fetch(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, errors.Wrap(err, "could not fetch vehicles"))
		return
	}
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, vehicles)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errors.New("could not reduce vehicles"))
		return
	}
	writeJSON(w, http.StatusOK, reduced)
}

func (s *Server) handleVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	v, ok := s.fleet.Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, errors.Wrapf(ErrUnknownVehicle, "%q", id))
		return
	}
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errors.New("could not reduce vehicle"))
		return
	}
	writeJSON(w, http.StatusOK, reduced)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats)
}

func (s *Server) handleGtfsRt(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.feed.Fetch(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, errors.Wrap(err, "could not fetch vehicles"))
		return
	}
	b, err := MarshalGtfsRt(vehicles, s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-protobuf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("could not encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrader take over the connection through the logger.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func withLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)

		requestLogger := log.With().
			Int("status", rec.status).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("ip", r.RemoteAddr).
			Str("latency", time.Since(start).String()).
			Logger()

		switch {
		case rec.status >= http.StatusInternalServerError:
			requestLogger.Error().Msg("HTTP Request")
		case rec.status >= http.StatusBadRequest:
			requestLogger.Warn().Msg("HTTP Request")
		default:
			requestLogger.Info().Msg("HTTP Request")
		}
	})
}
