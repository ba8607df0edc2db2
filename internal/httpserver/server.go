// internal/httpserver/server.go
//
// HTTP server wiring for the Mastermind backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", POST /check.
//   - Game endpoints (player token): POST /game/new, POST /game/guess,
//     GET /game/{id}, DELETE /game/{id}.
//   - A background sweep drops free-play games idle for longer than GAME_TTL_MINUTES.
//   - Daily endpoints (player token): mounted under /daily.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled so the player cookie works.
//   - Games are only visible to the player that created them.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/config"
	"github.com/robalobadob/mastermind/internal/daily"
	"github.com/robalobadob/mastermind/internal/store"
)

// Server bundles router, session store, and configuration.
type Server struct {
	r        *chi.Mux
	cfg      *config.Config
	store    store.Store
	sessions *sessions
	daily    *dailyServer
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, st store.Store) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		cfg:   cfg,
		store: st,
		now:   time.Now,
		sessions: &sessions{
			secret: cfg.SessionSecret,
			ttl:    cfg.SessionTTL,
			secure: cfg.Production,
			now:    time.Now,
		},
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(cfg.RequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "mastermind",
			"endpoints": []string{"/health", "POST /check", "POST /game/new", "POST /game/guess", "GET /game/{id}", "DELETE /game/{id}", "/daily/*", "GET /me"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Post("/check", s.handleCheck)

	s.r.Group(func(r chi.Router) {
		r.Use(s.sessions.withPlayer)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/{id}", s.handleGetGame)
		r.Delete("/game/{id}", s.handleDeleteGame)
		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, playerFrom(r.Context()))
		})
		s.mountDaily(r, daily.NewBoard())
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})
	return s
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	go s.sweepLoop(ctx)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// sweepLoop drops idle games until ctx is cancelled.
func (s *Server) sweepLoop(ctx context.Context) {
	if s.cfg.GameTTL <= 0 {
		return
	}
	t := time.NewTicker(min(s.cfg.GameTTL/2, time.Minute))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweepIdle(ctx)
		}
	}
}

// sweepIdle removes games untouched for longer than the configured TTL.
func (s *Server) sweepIdle(ctx context.Context) int {
	n, err := s.store.Sweep(ctx, s.now().Add(-s.cfg.GameTTL))
	if err != nil {
		log.Warn().Err(err).Msg("sweep idle games")
		return 0
	}
	if n > 0 {
		log.Debug().Int("removed", n).Msg("swept idle games")
	}
	return n
}

// ----------------------------- middleware ----------------------------------

// accessLog writes one line per request through the request-scoped logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Str("reqId", chimw.GetReqID(r.Context())).
		Msg("request")
})

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
