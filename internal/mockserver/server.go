// Package mockserver is an in-memory implementation of the ArcaneDex HTTP
// API. It backs the client's integration tests and local development.
package mockserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/arcanedex/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
)

type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	// RequestsPerSecond and Burst bound each client IP. Zero disables limiting.
	RequestsPerSecond float64
	Burst             int
	BcryptCost        int
}

func DefaultOptions() Options {
	return Options{
		JWTSecret:         "arcanedex-dev-secret",
		TokenTTL:          time.Hour,
		RequestsPerSecond: 20,
		Burst:             40,
		BcryptCost:        bcrypt.DefaultCost,
	}
}

type Server struct {
	store  *Store
	tokens *TokenIssuer
	opts   Options
	log    logging.Logger
}

func New(opts Options, log logging.Logger) *Server {
	return &Server{
		store:  NewStore(opts.BcryptCost),
		tokens: NewTokenIssuer(opts.JWTSecret, opts.TokenTTL),
		opts:   opts,
		log:    log,
	}
}

func (s *Server) Store() *Store { return s.store }

func (s *Server) Tokens() *TokenIssuer { return s.tokens }

// Handler returns the chi router with every endpoint mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))
	if s.opts.RequestsPerSecond > 0 {
		r.Use(rateLimit(s.opts.RequestsPerSecond, max(s.opts.Burst, 1)))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/users/register", s.handleRegister)
	r.Post("/users/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.auth)

		r.Get("/users/profile", s.handleGetProfile)
		r.Put("/users/profile", s.handleUpdateProfile)
		r.Delete("/users/deleteAccount", s.handleDeleteAccount)

		r.Get("/creatures", s.handleListCreatures)
		r.Get("/creatures/{id}", s.handleCreatureDetails)
		r.Post("/creatures/favourites", s.handleAddFavorite)
		r.Delete("/creatures/favourites/{id}", s.handleRemoveFavorite)
		r.Put("/creatures/favourites/{id}/background", s.handleChangeBackground)
		r.Put("/creatures/favourites/{id}/background/default", s.handleResetBackground)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/admin/creatures", s.handleAdminListCreatures)
			r.Post("/admin/creatures", s.handleAddCreature)
			r.Put("/admin/creatures/{id}", s.handleEditCreature)
		})
	})

	return r
}
