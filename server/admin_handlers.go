package server

import (
	"net/http"

	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/jrsteele09/internship-portal/users"
	"github.com/rs/zerolog/log"
)

// AdminUsersListHandler lists all accounts, newest first
func (s *Server) AdminUsersListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Users.List()
		if err != nil {
			log.Err(err).Msg("Failed to list users")
			writeDetail(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
		if list == nil {
			list = []*users.User{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) AdminUserGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.userFromPath(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// UserUpdate is the partial update accepted by PATCH /auth/admin/users/{id}/
type UserUpdate struct {
	IsActive *bool `json:"is_active,omitempty"`
	IsStaff  *bool `json:"is_staff,omitempty"`
}

// AdminUserPatchHandler activates/blocks an account or changes its staff flag
func (s *Server) AdminUserPatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.userFromPath(w, r)
		if !ok {
			return
		}

		var update UserUpdate
		if err := decodeJSON(r, &update); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if update.IsActive != nil {
			user.IsActive = *update.IsActive
		}
		if update.IsStaff != nil {
			user.IsStaff = *update.IsStaff
		}

		if err := s.repos.Users.Update(user); err != nil {
			log.Err(err).Int64("user_id", user.ID).Msg("Failed to update user")
			writeDetail(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
		log.Info().
			Int64("user_id", user.ID).
			Bool("is_active", user.IsActive).
			Bool("is_staff", user.IsStaff).
			Str("by", currentUser(r).Username).
			Msg("user updated")
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) userFromPath(w http.ResponseWriter, r *http.Request) (*users.User, bool) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return nil, false
	}
	user, err := s.repos.Users.GetByID(id)
	if apperrors.Is(err, apperrors.ErrUserNotFound) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return nil, false
	}
	if err != nil {
		log.Err(err).Int64("user_id", id).Msg("Failed to load user")
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return nil, false
	}
	return user, true
}
