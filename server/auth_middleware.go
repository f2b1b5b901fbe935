package server

import (
	"context"
	"net/http"

	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/jrsteele09/internship-portal/token"
	"github.com/jrsteele09/internship-portal/users"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the authenticated *users.User
	ContextKeyUser ContextKey = "user"
	// ContextKeyClaims stores the verified access token claims
	ContextKeyClaims ContextKey = "claims"
)

// RequireAuth validates the access cookie and loads the active user it names.
// Every failure is a 401 so clients know to try /auth/refresh/.
func (s *Server) RequireAuth() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw := cookieValue(r, accessCookieName)
			if raw == "" {
				writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}

			claims, err := s.tokens.Validate(raw, token.TypeAccess)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("access token rejected")
				writeDetail(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := s.repos.Users.GetByID(claims.UserID)
			if apperrors.Is(err, apperrors.ErrUserNotFound) {
				writeDetail(w, http.StatusUnauthorized, "User not found")
				return
			}
			if err != nil {
				log.Err(err).Int64("user_id", claims.UserID).Msg("Failed to load user")
				writeDetail(w, http.StatusInternalServerError, "Internal server error.")
				return
			}
			if !user.IsActive {
				writeDetail(w, http.StatusUnauthorized, "User is inactive")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			ctx = context.WithValue(ctx, ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin allows staff and superusers; chain it after RequireAuth
func (s *Server) RequireAdmin() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user := currentUser(r)
			if user == nil || !user.IsAdmin() {
				writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
				return
			}
			next(w, r)
		}
	}
}

func currentUser(r *http.Request) *users.User {
	user, _ := r.Context().Value(ContextKeyUser).(*users.User)
	return user
}
