package server

import (
	"net/http"
	"path"

	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/rs/zerolog/log"
)

// MediaHandler streams an uploaded PDF from the upload store
func (s *Server) MediaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Join(r.PathValue("kind"), r.PathValue("file"))
		f, err := s.uploads.Open(name)
		if apperrors.Is(err, apperrors.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Not found.")
			return
		}
		if err != nil {
			log.Err(err).Str("file", name).Msg("Failed to open upload")
			writeDetail(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			writeDetail(w, http.StatusNotFound, "Not found.")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `inline; filename="`+path.Base(name)+`"`)
		http.ServeContent(w, r, name, info.ModTime(), f)
	}
}
