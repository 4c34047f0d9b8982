// Package server exposes solver tree sessions over HTTP: JSON views, file
// upload and a websocket channel for navigating one session.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lox/solverview/internal/session"
)

// Server serves the session store over HTTP.
type Server struct {
	store      *session.Store
	config     *Config
	logger     zerolog.Logger
	upgrader   websocket.Upgrader
	httpServer *http.Server

	mu          sync.Mutex
	connections map[*Connection]struct{}
}

// NewServer creates a server for store.
func NewServer(store *session.Store, config *Config, logger zerolog.Logger) *Server {
	s := &Server{
		store:       store,
		config:      config,
		logger:      logger.With().Str("component", "server").Logger(),
		connections: make(map[*Connection]struct{}),
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin:     s.originAllowed,
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}
	s.httpServer = &http.Server{
		Addr:              config.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("GET /api/sessions", s.handleSessions)
	mux.HandleFunc("DELETE /api/session/{id}", s.handleDelete)
	mux.HandleFunc("GET /api/ws/{id}", s.handleWebSocket)

	mux.HandleFunc("GET /api/game/{id}", s.handleView(OpGame))
	mux.HandleFunc("GET /api/tree/{id}", s.handleView(OpTree))
	mux.HandleFunc("GET /api/node/{id}", s.handleView(OpNode))
	mux.HandleFunc("GET /api/strategy/{id}", s.handleView(OpStrategy))
	mux.HandleFunc("GET /api/hand_matrix/{id}", s.handleView(OpHandMatrix))
	mux.HandleFunc("GET /api/ev_analysis/{id}", s.handleView(OpEVAnalysis))
	mux.HandleFunc("GET /api/hand_details/{id}", s.handleView(OpHandDetails))

	return s.logRequests(s.cors(mux))
}

// Serve serves on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("Starting HTTP server")
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown closes websocket connections and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	limit := s.config.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: fmt.Sprintf("File exceeds %d MB limit", s.config.Server.MaxUploadMB)})
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "No file part"})
		default:
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return
	}
	defer func() { _ = file.Close() }()

	filename := cleanFilename(header.Filename)
	if filename == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "No selected file"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("failed to read upload: %v", err)})
		return
	}

	sess, err := s.store.Load(filename, data)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		SessionID: sess.ID,
		Filename:  sess.Filename,
		GameInfo:  sess.GameInfo(),
	})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "success"})
}

// handleView serves one view of a session, reading path and hand from the
// query string.
func (s *Server) handleView(op Op) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.Get(r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}

		q := r.URL.Query()
		result, err := query(sess, op, q.Get("path"), q.Get("hand"))
		if err != nil {
			if statusFor(err) == http.StatusInternalServerError {
				s.logger.Error().Err(err).Str("op", string(op)).Str("session_id", sess.ID).Msg("View failed")
			}
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	conn := NewConnection(ws, s.store, sess.ID, s.logger)
	s.mu.Lock()
	s.connections[conn] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info().Str("session_id", sess.ID).Int("total", total).Msg("Client connected")

	conn.Start()
	go func() {
		<-conn.Done()
		s.mu.Lock()
		delete(s.connections, conn)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info().Str("session_id", sess.ID).Int("total", total).Msg("Client disconnected")
	}()
}

// originAllowed reports whether a request origin may use the API. With no
// configured origins every origin is allowed.
func (s *Server) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	allowed := s.config.Server.AllowedOrigins
	if origin == "" || len(allowed) == 0 {
		return true
	}
	for _, o := range allowed {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// cleanFilename keeps the base name of an uploaded file, replacing anything
// outside a conservative character set.
func cleanFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
	return strings.TrimLeft(cleaned, ".")
}
