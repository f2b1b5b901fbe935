package applications

import (
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
)

type Status string

const (
	StatusApplied        Status = "Applied"
	StatusShortlisted    Status = "Shortlisted"
	StatusNotShortlisted Status = "Not Shortlisted"
)

// Statuses lists the review states in workflow order
var Statuses = []Status{StatusApplied, StatusShortlisted, StatusNotShortlisted}

// Application is a student's submission against one internship
type Application struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Address          string    `json:"address"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phone_number"`
	CollegeName      string    `json:"college_name"`
	Department       string    `json:"department"`
	CustomDepartment string    `json:"custom_department"`
	RollNo           string    `json:"roll_no"`
	Course           string    `json:"course"`
	YearOfStudy      string    `json:"year_of_study"`
	Skills           string    `json:"skills"`
	AddSkills        string    `json:"addskills"`
	UserID           int64     `json:"user_id"`
	InternshipID     int64     `json:"i_id"`
	Status           Status    `json:"status"`
	Resume           string    `json:"resume,omitempty"`  // stored file name
	IDCard           string    `json:"id_card,omitempty"` // stored file name
	ResumeURL        *string   `json:"resume_url"`
	IDCardURL        *string   `json:"id_card_url"`
	SubmittedAt      time.Time `json:"-"`
}

// FullName joins first and last name
func (a *Application) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

func ValidateStatus(s Status) error {
	for _, valid := range Statuses {
		if s == valid {
			return nil
		}
	}
	return apperrors.Wrapf(apperrors.ErrInvalidStatus, "%q is not a valid choice", fmt.Sprint(s))
}
