package portal

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/jrsteele09/internship-portal/applications"
)

// ApplicationForm is the multipart submission for one internship
type ApplicationForm struct {
	InternshipID     int64
	FirstName        string
	LastName         string
	Address          string
	Email            string
	PhoneNumber      string
	CollegeName      string
	Department       string
	CustomDepartment string
	RollNo           string
	Course           string
	YearOfStudy      string
	Skills           string
	AddSkills        string

	ResumeName string
	Resume     io.Reader
	IDCardName string
	IDCard     io.Reader
}

func (f ApplicationForm) fields() map[string]string {
	return map[string]string{
		"i_id":              strconv.FormatInt(f.InternshipID, 10),
		"first_name":        f.FirstName,
		"last_name":         f.LastName,
		"address":           f.Address,
		"email":             f.Email,
		"phone_number":      f.PhoneNumber,
		"college_name":      f.CollegeName,
		"department":        f.Department,
		"custom_department": f.CustomDepartment,
		"roll_no":           f.RollNo,
		"course":            f.Course,
		"year_of_study":     f.YearOfStudy,
		"skills":            f.Skills,
		"addskills":         f.AddSkills,
	}
}

func (c *Client) ListApplications(ctx context.Context) ([]applications.Application, error) {
	list, err := decodeInto[[]applications.Application](c.Get(ctx, PathApplications))
	if err != nil {
		return nil, err
	}
	return *list, nil
}

func (c *Client) GetApplication(ctx context.Context, id int64) (*applications.Application, error) {
	return decodeInto[applications.Application](c.Get(ctx, applicationPath(id)))
}

// SubmitApplication uploads the form and its PDFs as multipart/form-data
func (c *Client) SubmitApplication(ctx context.Context, form ApplicationForm) (*applications.Application, error) {
	body, err := Multipart(form.fields(),
		FilePart{Field: "resume", Name: form.ResumeName, Content: form.Resume},
		FilePart{Field: "id_card", Name: form.IDCardName, Content: form.IDCard},
	)
	if err != nil {
		return nil, err
	}
	return decodeInto[applications.Application](c.Post(ctx, PathApplications, body))
}

// UpdateApplicationStatus sends the new status form-encoded
func (c *Client) UpdateApplicationStatus(ctx context.Context, id int64, status applications.Status) (*applications.Application, error) {
	body := Form(url.Values{"status": {string(status)}})
	return decodeInto[applications.Application](c.Put(ctx, applicationStatusPath(id), body))
}
