package server

import (
	"net/http"

	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/jrsteele09/internship-portal/internships"
	"github.com/rs/zerolog/log"
)

func (s *Server) InternshipsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Internships.List()
		if err != nil {
			log.Err(err).Msg("Failed to list internships")
			writeDetail(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
		if list == nil {
			list = []*internships.Internship{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) InternshipGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		internship, ok := s.internshipFromPath(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, internship)
	}
}

// InternshipCreateHandler posts a new internship owned by the caller
func (s *Server) InternshipCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var internship internships.Internship
		if err := decodeJSON(r, &internship); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if internship.Status == "" {
			internship.Status = internships.StatusOpen
		}
		if errs := internship.Validate(); errs != nil {
			writeFieldErrors(w, errs)
			return
		}

		poster := currentUser(r)
		internship.ID = 0
		internship.UserID = poster.ID
		internship.Username = poster.Username
		internship.CreatedAt = s.now()

		if err := s.repos.Internships.Create(&internship); err != nil {
			log.Err(err).Msg("Failed to create internship")
			writeDetail(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
		writeJSON(w, http.StatusCreated, internship)
	}
}

// InternshipUpdateHandler replaces the editable fields of a posting; the poster
// and creation time are kept
func (s *Server) InternshipUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, ok := s.internshipFromPath(w, r)
		if !ok {
			return
		}

		var update internships.Internship
		if err := decodeJSON(r, &update); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if errs := update.Validate(); errs != nil {
			writeFieldErrors(w, errs)
			return
		}

		update.ID = existing.ID
		update.UserID = existing.UserID
		update.Username = existing.Username
		update.CreatedAt = existing.CreatedAt

		if err := s.repos.Internships.Update(&update); err != nil {
			log.Err(err).Int64("internship_id", existing.ID).Msg("Failed to update internship")
			writeDetail(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
		writeJSON(w, http.StatusOK, update)
	}
}

func (s *Server) internshipFromPath(w http.ResponseWriter, r *http.Request) (*internships.Internship, bool) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return nil, false
	}
	internship, err := s.repos.Internships.Get(id)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return nil, false
	}
	if err != nil {
		log.Err(err).Int64("internship_id", id).Msg("Failed to load internship")
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return nil, false
	}
	return internship, true
}
