package views

import (
	"fmt"
	"sort"

	"github.com/jrsteele09/internship-portal/applications"
	"github.com/jrsteele09/internship-portal/users"
)

// StatusFilter narrows the review list by outcome
type StatusFilter string

const (
	FilterAll            StatusFilter = "all"
	FilterShortlisted    StatusFilter = "shortlisted"
	FilterNotShortlisted StatusFilter = "not_shortlisted"
)

func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterShortlisted, FilterNotShortlisted:
		return f, nil
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

func (f StatusFilter) matches(s applications.Status) bool {
	switch f {
	case FilterShortlisted:
		return s == applications.StatusShortlisted
	case FilterNotShortlisted:
		return s == applications.StatusNotShortlisted
	}
	return true
}

// ApplicationFilter selects applications; zero fields match everything
type ApplicationFilter struct {
	InternshipID int64
	UserID       int64
	Status       StatusFilter
}

// FilterApplications applies f and orders the result by submission id
func FilterApplications(list []applications.Application, f ApplicationFilter) []applications.Application {
	var out []applications.Application
	for _, a := range list {
		if f.InternshipID != 0 && a.InternshipID != f.InternshipID {
			continue
		}
		if f.UserID != 0 && a.UserID != f.UserID {
			continue
		}
		if !f.Status.matches(a.Status) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SortUsers orders staff first, then active accounts
func SortUsers(list []users.User) []users.User {
	sorted := append([]users.User(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsStaff != b.IsStaff {
			return a.IsStaff
		}
		return a.IsActive && !b.IsActive
	})
	return sorted
}
