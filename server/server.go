package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/internship-portal/applications"
	"github.com/jrsteele09/internship-portal/files"
	"github.com/jrsteele09/internship-portal/internal/config"
	"github.com/jrsteele09/internship-portal/internships"
	"github.com/jrsteele09/internship-portal/notify"
	"github.com/jrsteele09/internship-portal/token"
	"github.com/jrsteele09/internship-portal/users"
	"github.com/rs/zerolog/log"
)

// Repos groups the stores the handlers work against
type Repos struct {
	Users        users.UserRepo
	Internships  internships.Repo
	Applications applications.Repo
}

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	repos   Repos
	tokens  *token.Manager
	mailer  notify.Mailer
	uploads *files.Store
	now     func() time.Time
}

type Option func(*Server)

// WithTokenManager replaces the manager built from the configured JWT secret
func WithTokenManager(m *token.Manager) Option {
	return func(s *Server) {
		s.tokens = m
	}
}

func WithMailer(m notify.Mailer) Option {
	return func(s *Server) {
		s.mailer = m
	}
}

func WithNowFunc(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func New(config config.Config, repos Repos, uploads *files.Store, opts ...Option) (*Server, error) {
	s := &Server{
		mux:     http.NewServeMux(),
		config:  config,
		repos:   repos,
		uploads: uploads,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.env = config.GetEnv()

	if s.tokens == nil {
		s.tokens = token.New(
			config.GetJWTSecret(),
			token.WithTokenExpiry(config.GetAccessTokenExpiry(), config.GetRefreshTokenExpiry()),
		)
	}
	if s.mailer == nil {
		s.mailer = notify.New(config)
	}

	if err := s.InitialiseSystem(context.Background(), config); err != nil {
		return nil, fmt.Errorf("[Server New] Failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Tokens exposes the token manager, e.g. for periodic revocation cleanup
func (s *Server) Tokens() *token.Manager {
	return s.tokens
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colouredMethod(method), path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
