package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// API paths.
const (
	PathTop       = "/api/leaderboard"
	PathSubscribe = "/api/leaderboard/ws"
)

const maxBodyBytes = 4 << 10

// Server exposes a Service over HTTP with websocket push of every update.
type Server struct {
	svc      Service
	hub      *Hub
	size     int
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer wraps svc. size caps the list length served.
func NewServer(svc Service, size int, logger *log.Logger) *Server {
	if size <= 0 {
		size = DefaultSize
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		svc:    svc,
		hub:    NewHub(),
		size:   size,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+PathTop, s.handleTop)
	mux.HandleFunc("POST "+PathTop, s.handleSubmit)
	mux.HandleFunc("GET "+PathSubscribe, s.handleSubscribe)
	return s.logRequests(mux)
}

// Run drives the websocket hub until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	s.hub.Run(ctx)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.Run(ctx)
	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting leaderboard server", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	n := s.size
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		n = min(v, s.size)
	}

	entries, err := s.svc.FetchTop(r.Context(), n)
	if err != nil {
		s.logger.Error("fetch failed", "error", err)
		writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var e Entry
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "malformed entry")
		return
	}
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}

	entries, err := s.svc.Submit(r.Context(), e)
	switch {
	case errors.Is(err, ErrInvalidName):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error("submit failed", "name", e.Name, "score", e.Score, "error", err)
		writeError(w, http.StatusInternalServerError, "submission failed")
		return
	}

	s.logger.Info("score submitted", "name", e.Name, "score", e.Score)
	if err := s.hub.Publish(entries); err != nil {
		s.logger.Warn("publish failed", "error", err)
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.FetchTop(r.Context(), s.size)
	if err != nil {
		s.logger.Error("fetch failed", "error", err)
		writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	initial, err := encodeEnvelope(EventLeaderboard, nonNil(entries))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16)}
	c.send <- initial
	if !s.hub.join(c) {
		conn.Close()
		return
	}
	s.logger.Debug("subscriber joined", "remote", r.RemoteAddr)

	go c.writer()
	go c.reader(s.hub)
}

// logRequests logs every request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func nonNil(entries []Entry) []Entry {
	if entries == nil {
		return []Entry{}
	}
	return entries
}
