// Package server exposes the countdown and live scene snapshots over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"snowfall/internal/clock"
	"snowfall/internal/countdown"
	"snowfall/internal/effect"
	"snowfall/internal/render"
)

// StatusProvider reports clock sync bookkeeping. clock.Source satisfies it.
type StatusProvider interface {
	Status() clock.Status
}

// Options configures a Server.
type Options struct {
	// SnapshotWidth caps the PNG width; the query parameter w may lower it.
	SnapshotWidth  int
	AllowedOrigins []string
	InstanceID     string
}

// Server serves one effect controller and countdown presenter.
type Server struct {
	ctrl      *effect.Controller
	presenter *countdown.Presenter
	clock     StatusProvider
	painter   *render.Painter
	hub       *Broadcaster
	opts      Options
}

// New wires the server. The broadcaster is registered as a presenter sink and
// a release listener.
func New(ctrl *effect.Controller, presenter *countdown.Presenter, src StatusProvider, opts Options) *Server {
	if opts.SnapshotWidth <= 0 {
		opts.SnapshotWidth = 640
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	s := &Server{
		ctrl:      ctrl,
		presenter: presenter,
		clock:     src,
		painter:   render.NewPainter(),
		hub:       NewBroadcaster(),
		opts:      opts,
	}
	presenter.AddSink(s.hub)
	ctrl.OnRelease(func(ev effect.ReleaseEvent) {
		s.hub.Publish(Event{Type: "release", Chunks: ev.Chunks})
	})
	return s
}

// Hub exposes the websocket broadcaster.
func (s *Server) Hub() *Broadcaster { return s.hub }

// Routes builds the chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWS)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		r.Get("/countdown", s.handleCountdown)
		r.Get("/scene.svg", s.handleSVG)
		r.Get("/scene.png", s.handlePNG)
		r.Get("/stats", s.handleStats)
		r.Get("/params", s.handleParams)
		r.Post("/params", s.handleSetParams)
		r.Post("/release", s.handleRelease)
	})
	return r
}

// Handler wraps the routes with CORS and cleartext HTTP/2 support.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodHead, http.MethodGet, http.MethodPost},
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})
	return h2c.NewHandler(c.Handler(s.Routes()), &http2.Server{})
}

// HTTPServer returns an http.Server for addr with conservative timeouts. The
// write timeout is left unset for the websocket stream.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// CountdownResponse is the /countdown payload.
type CountdownResponse struct {
	Text      string             `json:"text"`
	Remaining countdown.Duration `json:"remaining"`
	Target    time.Time          `json:"target"`
	Now       time.Time          `json:"now"`
	Clock     clock.Status       `json:"clock"`
}

func (s *Server) snapshot() countdown.Snapshot {
	snap := s.presenter.Last()
	if snap.Text == "" {
		snap = s.presenter.Update()
	}
	return snap
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	st := s.clock.Status()
	clockText := "network time"
	if st.Fallback {
		clockText = "local time"
	}
	renderPage(w, r, Page(PageData{
		Title:     "snowfall",
		Countdown: s.snapshot().Text,
		Clock:     clockText,
		Variant:   s.ctrl.Name(),
	}))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"instance":    s.opts.InstanceID,
		"subscribers": s.hub.Subscribers(),
	})
}

func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	writeJSON(w, http.StatusOK, CountdownResponse{
		Text:      snap.Text,
		Remaining: snap.Remaining,
		Target:    snap.Target,
		Now:       snap.Now,
		Clock:     s.clock.Status(),
	})
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	frame := s.ctrl.Capture()
	var buf bytes.Buffer
	s.painter.WriteSVG(&buf, frame)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	width := s.opts.SnapshotWidth
	if v := r.URL.Query().Get("w"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid width", http.StatusBadRequest)
			return
		}
		width = min(n, width)
	}
	frame := s.ctrl.Capture()
	var buf bytes.Buffer
	if err := s.painter.WritePNG(&buf, frame, width); err != nil {
		log.Error().Err(err).Msg("failed to encode snapshot")
		http.Error(w, "failed to encode snapshot", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Stats())
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Parameters())
}

func (s *Server) handleSetParams(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if len(r.PostForm) == 0 {
		http.Error(w, "no parameters given", http.StatusBadRequest)
		return
	}
	values := make(map[string]string, len(r.PostForm))
	for key, vs := range r.PostForm {
		values[key] = vs[len(vs)-1]
	}
	if err := s.ctrl.SetParameters(values); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.ctrl.Parameters())
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	n := s.ctrl.Release()
	writeJSON(w, http.StatusOK, map[string]int{"chunks": n})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
