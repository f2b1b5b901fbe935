package views

import (
	"regexp"
	"slices"

	"github.com/jrsteele09/internship-portal/internal/utils"
	"github.com/jrsteele09/internship-portal/internships"
	"github.com/jrsteele09/internship-portal/portal"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// FieldErrors maps a form field to its message
type FieldErrors map[string]string

// ValidateApplication checks a form before submission against the posting it
// targets; nil means the form may be sent
func ValidateApplication(form portal.ApplicationForm, internship internships.Internship) FieldErrors {
	errs := FieldErrors{}
	if !emailPattern.MatchString(form.Email) {
		errs["email"] = "Invalid email"
	}
	if !phonePattern.MatchString(form.PhoneNumber) {
		errs["phone_number"] = "Invalid phone number"
	}
	if len(utils.SplitList(form.Skills)) != len(internship.SkillList()) {
		errs["skills"] = "Select all required skills"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ToggleSkill adds or removes skill from a comma separated selection
func ToggleSkill(selected, skill string, checked bool) string {
	skills := utils.SplitList(selected)
	skills = slices.DeleteFunc(skills, func(s string) bool { return s == skill })
	if checked {
		skills = append(skills, skill)
	}
	return utils.JoinList(skills)
}
