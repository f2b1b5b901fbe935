package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/jrsteele09/internship-portal/internal/config"
	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/jrsteele09/internship-portal/users"
	"github.com/rs/zerolog/log"
)

// InitialiseSystem ensures the configured superuser exists.
func (s *Server) InitialiseSystem(ctx context.Context, config config.AdminConfig) error {
	generatedPassword, err := s.createSuperuser(ctx, config.GetAdminUsername(), config.GetAdminEmail(), config.GetAdminPassword())
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to bootstrap superuser: %w", err)
	}

	if generatedPassword != "" {
		log.Info().Msg("📋 System Configuration:")
		log.Info().Msgf("   Base URL:    %s", s.config.GetBaseURL())
		log.Info().Msg("👤 Superuser Credentials:")
		log.Info().Msgf("   Username:    %s", config.GetAdminUsername())
		log.Info().Msgf("   Email:       %s", config.GetAdminEmail())
		log.Info().Msgf("   Password:    %s", generatedPassword)
	}
	return nil
}

// createSuperuser creates the superuser if its username is free and returns the
// password it was given; empty when the account already exists
func (s *Server) createSuperuser(_ context.Context, username, email, defaultPassword string) (generatedPassword string, err error) {
	existing, err := s.repos.Users.GetByUsername(username)
	if err == nil {
		if !existing.IsSuperuser {
			log.Warn().Str("username", username).Msg("bootstrap username belongs to a non-superuser account")
		}
		return "", nil
	}
	if !apperrors.Is(err, apperrors.ErrUserNotFound) {
		return "", fmt.Errorf("[server createSuperuser] failed to look up %s: %w", username, err)
	}

	generatedPassword = defaultPassword
	if generatedPassword == "" {
		// Generate a secure random password
		passwordBytes := make([]byte, 16)
		if _, err := rand.Read(passwordBytes); err != nil {
			return "", fmt.Errorf("[server createSuperuser] failed to generate password: %w", err)
		}
		generatedPassword = base64.URLEncoding.EncodeToString(passwordBytes)
	}

	passwordHash, err := users.HashPassword(generatedPassword)
	if err != nil {
		return "", fmt.Errorf("[server createSuperuser] failed to hash password: %w", err)
	}

	admin := &users.User{
		Username:     username,
		Email:        email,
		FirstName:    "Administrator",
		PasswordHash: passwordHash,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
		IsVerified:   true,
		DateJoined:   s.now(),
	}
	if err := s.repos.Users.Create(admin); err != nil {
		return "", fmt.Errorf("[server createSuperuser] failed to create superuser: %w", err)
	}
	return generatedPassword, nil
}
