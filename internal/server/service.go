// Package server provides the local HTTP API for evaluating snapshots.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/wealthyways/wealthyways/internal/advisor"
	"github.com/wealthyways/wealthyways/internal/classifier"
	"github.com/wealthyways/wealthyways/internal/store"
)

// DefaultAddr is used when Config.Addr is empty.
const DefaultAddr = "127.0.0.1:8790"

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	Model        classifier.Info
	EventsBuffer int
}

// Event is emitted for every successful evaluation.
type Event struct {
	ID        int64            `json:"id"`
	Type      string           `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Category  advisor.Category `json:"category"`
	Tier      advisor.Tier     `json:"tier"`
	Score     float64          `json:"score"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time       `json:"started_at"`
	Model           classifier.Info `json:"model"`
	History         bool            `json:"history"`
	Evaluations     int64           `json:"evaluations"`
	Rejected        int64           `json:"rejected"`
	LastError       string          `json:"last_error,omitempty"`
	EventCount      int             `json:"event_count"`
	SubscriberCount int             `json:"subscriber_count"`
}

// Service provides the evaluation HTTP API.
type Service struct {
	cfg     Config
	model   advisor.Classifier
	history *store.History // nil when history is disabled
	metrics *metrics

	mu          sync.RWMutex
	startedAt   time.Time
	evaluations int64
	rejected    int64
	lastError   string
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a service that evaluates with model. history may be nil.
func New(cfg Config, model advisor.Classifier, history *store.History) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	return &Service{
		cfg:       cfg,
		model:     model,
		history:   history,
		metrics:   newMetrics(),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the router serving every endpoint.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)

	// Routes stay on the root router: a method mismatch inside a mux
	// subrouter answers 404 instead of 405.
	r.HandleFunc("/v1/evaluate", s.handleEvaluate).Methods(http.MethodPost)
	r.HandleFunc("/v1/history", s.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/v1/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/v1/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/v1/stream", s.handleStream).Methods(http.MethodGet)

	return r
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	slog.Info("api listening", "addr", ln.Addr().String(), "model", s.cfg.Model.Path)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("api shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// evaluate runs one evaluation and records its outcome in the service state.
func (s *Service) evaluate(ctx context.Context, snap advisor.Snapshot) (advisor.Advice, string, error) {
	adv, err := advisor.Evaluate(snap, s.model)
	if err != nil {
		s.recordFailure(err)
		return advisor.Advice{}, "", err
	}

	s.metrics.observe(adv)
	s.mu.Lock()
	s.evaluations++
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      "evaluation",
		Timestamp: time.Now(),
		Category:  adv.Category,
		Tier:      adv.Tier,
		Score:     adv.Score,
	}
	s.mu.Unlock()
	s.publishEvent(ev)

	slog.Debug("evaluated snapshot", "category", adv.Category.String(), "score", adv.Score, "tier", string(adv.Tier))

	if s.history == nil {
		return adv, "", nil
	}
	rec, err := s.history.Save(ctx, store.NewRecord(adv, s.cfg.Model.Path))
	if err != nil {
		// History is best-effort; the advice is still returned.
		slog.Warn("saving history failed", "err", err)
		return adv, "", nil
	}
	return adv, rec.ID, nil
}

func (s *Service) recordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if errors.Is(err, advisor.ErrInvalidSnapshot) {
		s.rejected++
		s.metrics.rejected.Inc()
		return
	}
	s.lastError = err.Error()
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		Model:           s.cfg.Model,
		History:         s.history != nil,
		Evaluations:     s.evaluations,
		Rejected:        s.rejected,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
