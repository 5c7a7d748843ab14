package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Timeout    time.Duration   // 0 → 15s
	CORSOrigin string          // empty disables CORS headers
	Logger     *zerolog.Logger // nil → global logger
	// TrustProxy rewrites RemoteAddr from X-Forwarded-For/X-Real-IP. Off,
	// the socket peer is what logs and the inquiry limiter see.
	TrustProxy bool
}

type Server struct{ mux *chi.Mux }

func New(opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	l := log.Logger
	if opts.Logger != nil {
		l = *opts.Logger
	}

	m := chi.NewRouter()
	// all middlewares before any routes
	if opts.TrustProxy {
		m.Use(chimw.RealIP)
	}
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(CORS(opts.CORSOrigin))
	m.Use(Timeout(opts.Timeout))
	m.Use(Metrics)
	m.Use(Logger(l))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
