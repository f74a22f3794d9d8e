// Package serve hosts bar charts over HTTP and forwards the interactions
// of the browser to them.
package serve

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/midbel/bars"
)

const (
	EventMouseOver = "mouseover"
	EventMouseOut  = "mouseout"
	EventClick     = "click"
)

var (
	ErrChart = errors.New("chart not found")
	ErrEvent = errors.New("unknown event")
)

type hosted struct {
	mu    sync.Mutex
	id    string
	name  string
	chart bars.Chart
}

// Info describes a hosted chart.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// MarkState is the state of a mark after an event has been applied.
type MarkState struct {
	Mark    string `json:"mark"`
	Fill    string `json:"fill"`
	Tooltip string `json:"tooltip"`
	Visible bool   `json:"visible"`
}

// Server keeps the charts it hosts in memory. Every chart is guarded by
// its own lock.
type Server struct {
	logger *log.Logger

	mu     sync.RWMutex
	charts map[string]*hosted
	order  []string
}

func New(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		logger: logger,
		charts: make(map[string]*hosted),
	}
}

// Add draws c and hosts it. It returns the identifier of the chart.
func (s *Server) Add(name string, c bars.Chart) (string, error) {
	id := uuid.NewString()
	switch b := c.Backend.(type) {
	case nil:
		c.Backend = bars.SVGBackend{EventsURL: chartURL(id)}
	case bars.SVGBackend:
		b.EventsURL = chartURL(id)
		b.NoScript = false
		c.Backend = b
	}
	if err := c.Render(io.Discard); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.charts[id] = &hosted{
		id:    id,
		name:  name,
		chart: c,
	}
	s.order = append(s.order, id)
	s.logger.Info("chart hosted", "chart", name, "id", id)
	return id, nil
}

func (s *Server) List() []Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Info, 0, len(s.order))
	for _, id := range s.order {
		h := s.charts[id]
		list = append(list, Info{
			ID:   h.id,
			Name: h.name,
			URL:  chartURL(h.id),
		})
	}
	return list
}

// Dispatch applies event to the mark at index of the chart id.
func (s *Server) Dispatch(id string, index int, event string) (MarkState, error) {
	var state MarkState
	h, err := s.lookup(id)
	if err != nil {
		return state, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	layer := h.chart.Layer
	switch event {
	case EventMouseOver:
		err = layer.MouseOver(index)
	case EventMouseOut:
		err = layer.MouseOut(index)
	case EventClick:
		err = layer.Click(index)
	default:
		err = ErrEvent
	}
	if err != nil {
		return state, err
	}
	m, _ := layer.Scene().Mark(index)
	state.Mark = m.ID
	state.Fill = m.Color()
	if p, ok := layer.Tooltip().(*bars.Popup); ok {
		state.Tooltip = p.Content
		state.Visible = p.Visible()
	}
	return state, nil
}

// Write renders the current state of the chart id.
func (s *Server) Write(w io.Writer, id string) error {
	h, err := s.lookup(id)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.chart.Refresh(w)
}

func (s *Server) lookup(id string) (*hosted, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.charts[id]
	if !ok {
		return nil, ErrChart
	}
	return h, nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequest)

	r.Get("/", s.handleList)
	r.Get("/charts/{id}", s.handleChart)
	r.Post("/charts/{id}/marks/{index}/{event}", s.handleEvent)
	return r
}

// ListenAndServe serves the hosted charts until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.List())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := s.Write(w, id); err != nil {
		s.fail(w, err)
	}
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var (
		id    = chi.URLParam(r, "id")
		event = chi.URLParam(r, "event")
	)
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid mark index", http.StatusBadRequest)
		return
	}
	state, err := s.Dispatch(id, index, event)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrChart):
		code = http.StatusNotFound
	case errors.Is(err, ErrEvent), errors.Is(err, bars.ErrNoMark):
		code = http.StatusBadRequest
	default:
		s.logger.Error("request failed", "err", err)
	}
	http.Error(w, err.Error(), code)
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			now = time.Now()
			ww  = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "elapsed", time.Since(now))
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func chartURL(id string) string {
	return "/charts/" + id
}
