package server

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/internship-portal/applications"
	"github.com/jrsteele09/internship-portal/files"
	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/jrsteele09/internship-portal/notify"
	"github.com/rs/zerolog/log"
)

// multipartMemory is how much of a multipart body is buffered before spilling to disk
const multipartMemory = 1 << 20

// ApplicationsListHandler lists every application for staff and the caller's own
// applications for students
func (s *Server) ApplicationsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Applications.List()
		if err != nil {
			log.Err(err).Msg("Failed to list applications")
			writeDetail(w, http.StatusInternalServerError, "Internal server error.")
			return
		}

		caller := currentUser(r)
		visible := make([]*applications.Application, 0, len(list))
		for _, a := range list {
			if caller.IsAdmin() || a.UserID == caller.ID {
				visible = append(visible, s.withFileURLs(a))
			}
		}
		writeJSON(w, http.StatusOK, visible)
	}
}

func (s *Server) ApplicationGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := s.applicationFromPath(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, s.withFileURLs(a))
	}
}

var applicationTextFields = []string{
	"first_name", "last_name", "address", "email", "phone_number", "college_name",
	"department", "custom_department", "roll_no", "course", "year_of_study",
	"skills", "addskills",
}

var applicationRequiredFields = []string{"first_name", "email", "phone_number", "i_id"}

// ApplicationCreateHandler accepts a multipart application with optional resume
// and id_card PDFs
func (s *Server) ApplicationCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxUpload := s.config.GetMaxUploadSize()
		r.Body = http.MaxBytesReader(w, r.Body, 2*maxUpload+multipartMemory)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			writeDetail(w, http.StatusBadRequest, "Multipart form data expected")
			return
		}
		defer r.MultipartForm.RemoveAll()

		errs := FieldErrors{}
		for _, field := range applicationRequiredFields {
			if strings.TrimSpace(r.FormValue(field)) == "" {
				errs.Add(field, "This field is required.")
			}
		}

		var internshipID int64
		if raw := r.FormValue("i_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				errs.Add("i_id", "A valid integer is required.")
			} else if internship, err := s.repos.Internships.Get(id); err != nil {
				errs.Add("i_id", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
			} else if !internship.IsOpen() {
				errs.Add("i_id", "This internship is closed.")
			} else {
				internshipID = id
			}
		}
		if len(errs) > 0 {
			writeFieldErrors(w, errs)
			return
		}

		caller := currentUser(r)
		a := &applications.Application{
			UserID:       caller.ID,
			InternshipID: internshipID,
			Status:       applications.StatusApplied,
			SubmittedAt:  s.now(),
		}
		values := make(map[string]string, len(applicationTextFields))
		for _, field := range applicationTextFields {
			values[field] = strings.TrimSpace(r.FormValue(field))
		}
		a.FirstName = values["first_name"]
		a.LastName = values["last_name"]
		a.Address = values["address"]
		a.Email = values["email"]
		a.PhoneNumber = values["phone_number"]
		a.CollegeName = values["college_name"]
		a.Department = values["department"]
		a.CustomDepartment = values["custom_department"]
		a.RollNo = values["roll_no"]
		a.Course = values["course"]
		a.YearOfStudy = values["year_of_study"]
		a.Skills = values["skills"]
		a.AddSkills = values["addskills"]

		var saved []string
		discard := func() {
			for _, name := range saved {
				if err := s.uploads.Remove(name); err != nil {
					log.Warn().Err(err).Str("file", name).Msg("failed to remove upload")
				}
			}
		}

		for _, upload := range []struct {
			field string
			kind  files.Kind
			dest  *string
		}{
			{"resume", files.KindResume, &a.Resume},
			{"id_card", files.KindIDCard, &a.IDCard},
		} {
			file, header, err := r.FormFile(upload.field)
			if err == http.ErrMissingFile {
				continue
			}
			if err != nil {
				discard()
				writeFieldErrors(w, FieldErrors{upload.field: {"The submitted data was not a file."}})
				return
			}
			name, err := s.saveUpload(upload.kind, header, file)
			if err != nil {
				discard()
				writeFieldErrors(w, FieldErrors{upload.field: {uploadErrorMessage(err)}})
				return
			}
			saved = append(saved, name)
			*upload.dest = name
		}

		if err := s.repos.Applications.Create(a); err != nil {
			discard()
			log.Err(err).Msg("Failed to create application")
			writeDetail(w, http.StatusInternalServerError, "Internal server error.")
			return
		}

		notify.SendBestEffort(r.Context(), s.mailer, notify.ApplicationSubmittedMessage(a))
		writeJSON(w, http.StatusCreated, s.withFileURLs(a))
	}
}

// ApplicationStatusHandler sets the review status from a form-encoded "status" field
func (s *Server) ApplicationStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeDetail(w, http.StatusNotFound, "Not found.")
			return
		}

		status := applications.Status(strings.TrimSpace(r.FormValue("status")))
		if status == "" {
			writeFieldErrors(w, FieldErrors{"status": {"This field is required."}})
			return
		}

		a, err := s.repos.Applications.UpdateStatus(id, status)
		switch {
		case apperrors.Is(err, apperrors.ErrInvalidStatus):
			writeFieldErrors(w, FieldErrors{"status": {fmt.Sprintf("%q is not a valid choice.", string(status))}})
			return
		case apperrors.Is(err, apperrors.ErrNotFound):
			writeDetail(w, http.StatusNotFound, "Not found.")
			return
		case err != nil:
			log.Err(err).Int64("application_id", id).Msg("Failed to update application status")
			writeDetail(w, http.StatusInternalServerError, "Internal server error.")
			return
		}

		notify.SendBestEffort(r.Context(), s.mailer, notify.StatusUpdatedMessage(a))
		writeJSON(w, http.StatusOK, s.withFileURLs(a))
	}
}

func (s *Server) saveUpload(kind files.Kind, header *multipart.FileHeader, file multipart.File) (string, error) {
	defer file.Close()
	if header.Size > s.config.GetMaxUploadSize() {
		return "", apperrors.ErrFileTooLarge
	}
	return s.uploads.Save(kind, header.Filename, file)
}

func uploadErrorMessage(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrNotPDF):
		return "Only PDF files are allowed."
	case apperrors.Is(err, apperrors.ErrFileTooLarge):
		return "File too large. Max size is 10MB."
	}
	log.Err(err).Msg("Failed to store upload")
	return "Upload failed."
}

// withFileURLs returns a copy of a with its upload URLs resolved
func (s *Server) withFileURLs(a *applications.Application) *applications.Application {
	out := *a
	out.ResumeURL = files.URL(s.config.GetBaseURL(), a.Resume)
	out.IDCardURL = files.URL(s.config.GetBaseURL(), a.IDCard)
	return &out
}

// applicationFromPath loads the {id} application; students only see their own
func (s *Server) applicationFromPath(w http.ResponseWriter, r *http.Request) (*applications.Application, bool) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return nil, false
	}
	a, err := s.repos.Applications.Get(id)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return nil, false
	}
	if err != nil {
		log.Err(err).Int64("application_id", id).Msg("Failed to load application")
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return nil, false
	}
	caller := currentUser(r)
	if !caller.IsAdmin() && a.UserID != caller.ID {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return nil, false
	}
	return a, true
}
