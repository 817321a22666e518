// Package proxy is a thin gateway that forwards interview requests to the
// backend service unchanged.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/api"
	"github.com/abhisek/intervue/internal/logger"
	"github.com/abhisek/intervue/internal/middleware"
)

const maxBodyBytes = 1 << 20

// Route is one forwarded endpoint and the message returned when it fails.
type Route struct {
	Name    string
	Failure string
}

// Routes are the forwarded endpoints under /api/interview.
var Routes = []Route{
	{Name: "start", Failure: "Failed to start interview session"},
	{Name: "response", Failure: "Failed to process response"},
	{Name: "feedback", Failure: "Failed to generate feedback"},
}

// Proxy forwards request bodies verbatim to a backend.
type Proxy struct {
	backend *url.URL
	client  *http.Client
	origins []string
	log     *zap.Logger
}

// New creates a Proxy for backendURL. A zero timeout leaves the HTTP client
// without a deadline.
func New(backendURL string, timeout time.Duration, allowedOrigins []string, log *zap.Logger) (*Proxy, error) {
	u, err := url.Parse(strings.TrimRight(backendURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend URL %q", backendURL)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Proxy{
		backend: u,
		client:  &http.Client{Timeout: timeout},
		origins: allowedOrigins,
		log:     log,
	}, nil
}

// Router builds the HTTP handler.
func (p *Proxy) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(p.log.Named("http")))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(p.origins))

	for _, rt := range Routes {
		r.Post("/api/interview/"+rt.Name, p.forward(rt))
	}
	return r
}

// Run serves on addr until ctx is cancelled.
func (p *Proxy) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           p.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		p.log.Info("proxy listening", zap.String("addr", addr), zap.String("backend", p.backend.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (p *Proxy) forward(rt Route) http.HandlerFunc {
	target := p.backend.String() + "/api/interview/" + rt.Name

	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.WithCtx(r.Context(), p.log).With(zap.String("route", rt.Name))

		data, err := p.relay(r, w, target)
		if err != nil {
			log.Warn("proxy request failed", zap.Error(err))
			api.Error(w, http.StatusInternalServerError, rt.Failure)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// relay posts the incoming body to target and returns the backend's JSON.
func (p *Proxy) relay(r *http.Request, w http.ResponseWriter, target string) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	if !json.Valid(body) {
		return nil, errors.New("request body is not JSON")
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building backend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id := chiMiddleware.GetReqID(r.Context()); id != "" {
		req.Header.Set(chiMiddleware.RequestIDHeader, id)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading backend response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("backend returned %s", resp.Status)
	}
	if !json.Valid(data) {
		return nil, errors.New("backend response is not JSON")
	}
	return data, nil
}
