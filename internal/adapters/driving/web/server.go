package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the HTTP front end.
type Server struct {
	ports   *Ports
	search  domain.SearchSettings
	limiter *rate.Limiter
	pages   map[string]*template.Template
	mux     *http.ServeMux
}

// NewServer creates a server over ports. Search behaviour and the API rate
// limit come from the settings port, or defaults when it is absent.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	settings := domain.DefaultAppSettings()
	if ports.Settings != nil {
		loaded, err := ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		settings = *loaded
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		ports:   ports,
		search:  settings.Search,
		limiter: newLimiter(settings.Web),
		pages:   pages,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

func newLimiter(w domain.WebSettings) *rate.Limiter {
	if w.RateLimit <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := w.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(w.RateLimit), burst)
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"index.html", "food.html", "error.html"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.Handle("GET /api/search", s.throttle(http.HandlerFunc(s.handleSearchAPI)))
	s.mux.HandleFunc("GET /foods/{slug}", s.handleFoodPage)
	s.mux.HandleFunc("GET /api/foods/{slug}/label", s.handleLabelAPI)
	s.mux.HandleFunc("/", s.handleNotFound)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return logRequests(s.mux)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("listening on http://%s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// throttle rejects requests beyond the configured rate.
func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, apiError{Error: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("%s %s %d %s", r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Microsecond))
	})
}
