package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const requestTimeout = 15 * time.Second

// Server owns the chi router shared by the hotel API and auxiliary mounts.
type Server struct{ mux *chi.Mux }

func New() *Server {
	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		chimw.RequestID,
		chimw.Recoverer,
		Timeout(requestTimeout),
		Observe(log.Logger),
	)
	return &Server{mux: r}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches h at path, e.g. the Prometheus handler at /metrics.
func (s *Server) Mount(path string, h http.Handler) { s.mux.Handle(path, h) }
