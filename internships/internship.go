package internships

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/jrsteele09/internship-portal/internal/utils"
)

type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)

// Internship is a posting created by a mentor or admin. JSON field names follow
// the capitalised form the portal's web client already consumes.
type Internship struct {
	ID          int64     `json:"id"`
	Title       string    `json:"Title"`
	Mentor      string    `json:"Mentor"`
	Duration    string    `json:"Duration"`
	Stipend     string    `json:"Stipend"`
	Description string    `json:"Description"`
	Status      Status    `json:"Status"`
	Skills      string    `json:"Skills"`   // comma separated
	UserID      int64     `json:"user_id"`  // poster
	Username    string    `json:"username"` // poster
	CreatedAt   time.Time `json:"-"`
}

// SkillList splits Skills on commas, trimming blanks
func (i *Internship) SkillList() []string {
	return utils.SplitList(i.Skills)
}

func (i *Internship) IsOpen() bool {
	return i.Status == StatusOpen
}

// Validate returns field errors keyed by JSON field name; nil when valid
func (i *Internship) Validate() map[string][]string {
	errs := map[string][]string{}
	required := map[string]string{
		"Title":    i.Title,
		"Mentor":   i.Mentor,
		"Duration": i.Duration,
		"Stipend":  i.Stipend,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = append(errs[field], "This field is required.")
		}
	}
	if err := ValidateStatus(i.Status); err != nil {
		errs["Status"] = append(errs["Status"], err.Error())
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateStatus(s Status) error {
	switch s {
	case StatusOpen, StatusClosed:
		return nil
	}
	return apperrors.Wrapf(apperrors.ErrInvalidStatus, "%q is not a valid choice", fmt.Sprint(s))
}
