package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	fakeapplicationrepo "github.com/jrsteele09/internship-portal/applications/repofake"
	"github.com/jrsteele09/internship-portal/files"
	"github.com/jrsteele09/internship-portal/internal/config"
	fakeinternshiprepo "github.com/jrsteele09/internship-portal/internships/repofake"
	"github.com/jrsteele09/internship-portal/server"
	"github.com/jrsteele09/internship-portal/storage/sqlite"
	fakeuserrepo "github.com/jrsteele09/internship-portal/users/repofake"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const revocationCleanupInterval = 10 * time.Minute

func main() {
	c := config.New()
	setupLogging(c.GetEnv())
	if err := run(c); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func setupLogging(env string) {
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	displayAppname(c.GetAppName())

	repos, closeRepos, err := openRepos(c)
	if err != nil {
		return err
	}
	defer closeRepos()

	uploads, err := files.NewStore(c.GetDataFolder(), c.GetMaxUploadSize())
	if err != nil {
		return fmt.Errorf("upload store: %w", err)
	}

	handler, err := server.New(c, repos, uploads)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cleanupRevokedTokens(ctx, handler)

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	errCh := make(chan error, 1)
	go func() { errCh <- listenAndServe(httpServer) }()

	select {
	case err := <-errCh:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

// openRepos builds the repositories selected by DATABASE
func openRepos(c config.Config) (server.Repos, func(), error) {
	switch c.GetDatabase() {
	case config.DatabaseSQLite:
		if err := os.MkdirAll(c.GetDataFolder(), 0o755); err != nil {
			return server.Repos{}, nil, fmt.Errorf("data folder: %w", err)
		}
		path := filepath.Join(c.GetDataFolder(), "portal.db")
		db, err := sqlite.Open(path)
		if err != nil {
			return server.Repos{}, nil, err
		}
		log.Info().Str("path", path).Msg("Using SQLite store")
		return server.Repos{
				Users:        db.Users(),
				Internships:  db.Internships(),
				Applications: db.Applications(),
			}, func() {
				if err := db.Close(); err != nil {
					log.Err(err).Msg("Failed to close database")
				}
			}, nil
	case config.DatabaseMemory:
		log.Info().Msg("Using in-memory store")
		return server.Repos{
			Users:        fakeuserrepo.NewFakeUserRepo(),
			Internships:  fakeinternshiprepo.NewFakeInternshipRepo(),
			Applications: fakeapplicationrepo.NewFakeApplicationRepo(),
		}, func() {}, nil
	}
	return server.Repos{}, nil, fmt.Errorf("unknown DATABASE %q", c.GetDatabase())
}

func cleanupRevokedTokens(ctx context.Context, s *server.Server) {
	ticker := time.NewTicker(revocationCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tokens().CleanupRevokedTokens()
		}
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
