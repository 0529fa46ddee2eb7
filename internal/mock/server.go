// Package mock serves canned responses derived from saved request
// files, for frontend development against APIs that do not exist yet.
package mock

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/tkaraca/restel/internal/core/request"
)

// Option configures the server.
type Option func(*Server)

// WithPort sets the listen port.
func WithPort(port int) Option {
	return func(s *Server) { s.port = port }
}

// WithLatency adds artificial latency before each response.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// Server answers the method+path of each saved request with its body.
type Server struct {
	router  *httprouter.Router
	port    int
	latency time.Duration
	httpSrv *http.Server
	addr    string
}

// NewServer builds a server from request files. Requests whose URLs do
// not yield a rooted path, and duplicate method+path pairs, are
// skipped.
func NewServer(reqs []*request.Request, opts ...Option) (*Server, error) {
	s := &Server{
		router: httprouter.New(),
		port:   8080,
	}
	for _, opt := range opts {
		opt(s)
	}

	type routeKey struct{ method, path string }
	seen := make(map[routeKey]bool)

	for _, req := range reqs {
		u, err := url.Parse(req.URL)
		if err != nil || !strings.HasPrefix(u.Path, "/") {
			// A scheme-less URL parses with the host folded into the
			// path; httprouter rejects paths without a leading slash.
			continue
		}
		key := routeKey{req.Method, u.Path}
		if seen[key] {
			continue
		}
		seen[key] = true
		s.router.Handle(req.Method, u.Path, s.handlerFor(req))
	}

	s.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, `{"error":"no saved request matches %s %s"}`, r.Method, r.URL.Path)
	})

	if len(seen) == 0 {
		return nil, fmt.Errorf("no routable requests found")
	}
	return s, nil
}

func (s *Server) handlerFor(req *request.Request) httprouter.Handle {
	status := http.StatusOK
	var body []byte
	contentType := "text/plain; charset=utf-8"

	switch req.BodyType() {
	case request.BodyJSON:
		body = []byte(req.Body.Content)
		contentType = "application/json"
	case request.BodyRaw:
		body = []byte(req.Body.Content)
	default:
		if req.Method == "POST" {
			status = http.StatusCreated
		}
	}

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if s.latency > 0 {
			time.Sleep(s.latency)
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		w.Write(body)
	}
}

// Start begins listening. It returns once the listener is bound; use
// Wait or the context to manage shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.port, err)
	}
	s.addr = ln.Addr().String()
	s.httpSrv = &http.Server{Handler: s.router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpSrv.Shutdown(shutdownCtx)
	}()

	go s.httpSrv.Serve(ln)
	return nil
}

// Addr returns the bound address after Start.
func (s *Server) Addr() string {
	return s.addr
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
