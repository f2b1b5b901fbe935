package views_test

import (
	"testing"

	"github.com/jrsteele09/internship-portal/applications"
	"github.com/jrsteele09/internship-portal/internships"
	"github.com/jrsteele09/internship-portal/portal"
	"github.com/jrsteele09/internship-portal/users"
	"github.com/jrsteele09/internship-portal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postings() []internships.Internship {
	return []internships.Internship{
		{ID: 1, Title: "Backend", Mentor: "Ravi", Skills: "Go, SQL", Status: internships.StatusClosed, UserID: 2, Username: "ravi"},
		{ID: 2, Title: "Frontend", Mentor: "Meera", Skills: "React", Status: internships.StatusOpen, UserID: 3, Username: "meera"},
		{ID: 3, Title: "Data", Mentor: "Ravi", Skills: "Python", Status: internships.StatusClosed, UserID: 2, Username: "ravi"},
		{ID: 4, Title: "Infra", Mentor: "Kiran", Skills: "Go, Linux", Status: internships.StatusOpen, UserID: 4, Username: "kiran"},
	}
}

func ids(list []internships.Internship) []int64 {
	var out []int64
	for _, i := range list {
		out = append(out, i.ID)
	}
	return out
}

func TestSortOpenFirst(t *testing.T) {
	in := postings()
	require.Equal(t, []int64{2, 4, 1, 3}, ids(views.SortOpenFirst(in)))
	require.Equal(t, []int64{1, 2, 3, 4}, ids(in), "input is not modified")
}

func TestSearch(t *testing.T) {
	tests := []struct {
		query string
		want  []int64
	}{
		{query: "", want: []int64{1, 2, 3, 4}},
		{query: "ravi", want: []int64{1, 3}},
		{query: "  GO ", want: []int64{1, 4}},
		{query: "front", want: []int64{2}},
		{query: "rust", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(views.Search(postings(), tt.query)))
		})
	}
}

func TestPostedBy(t *testing.T) {
	mine := views.PostedBy(postings(), &users.User{ID: 2, Username: "ravi"})
	require.Equal(t, []int64{1, 3}, ids(mine))
	require.Empty(t, views.PostedBy(postings(), &users.User{ID: 2, Username: "someone"}))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	page, total := views.Paginate(items, 1, views.PageSize)
	require.Equal(t, []int{1, 2, 3, 4, 5}, page)
	require.Equal(t, 3, total)

	page, _ = views.Paginate(items, 3, views.PageSize)
	require.Equal(t, []int{11}, page)

	page, _ = views.Paginate(items, 9, views.PageSize)
	require.Equal(t, []int{11}, page, "clamped to last page")

	page, _ = views.Paginate(items, 0, 0)
	require.Equal(t, []int{1, 2, 3, 4, 5}, page, "clamped to first page with default size")

	page, total = views.Paginate([]int{}, 1, views.PageSize)
	require.Empty(t, page)
	require.Zero(t, total)
}

func TestFilterApplications(t *testing.T) {
	list := []applications.Application{
		{ID: 4, InternshipID: 1, UserID: 10, Status: applications.StatusShortlisted},
		{ID: 2, InternshipID: 1, UserID: 11, Status: applications.StatusApplied},
		{ID: 3, InternshipID: 2, UserID: 10, Status: applications.StatusNotShortlisted},
		{ID: 1, InternshipID: 1, UserID: 12, Status: applications.StatusNotShortlisted},
	}
	appIDs := func(list []applications.Application) []int64 {
		var out []int64
		for _, a := range list {
			out = append(out, a.ID)
		}
		return out
	}

	require.Equal(t, []int64{1, 2, 3, 4}, appIDs(views.FilterApplications(list, views.ApplicationFilter{})))
	require.Equal(t, []int64{1, 2, 4}, appIDs(views.FilterApplications(list, views.ApplicationFilter{InternshipID: 1, Status: views.FilterAll})))
	require.Equal(t, []int64{4}, appIDs(views.FilterApplications(list, views.ApplicationFilter{InternshipID: 1, Status: views.FilterShortlisted})))
	require.Equal(t, []int64{1, 3}, appIDs(views.FilterApplications(list, views.ApplicationFilter{Status: views.FilterNotShortlisted})))
	require.Equal(t, []int64{3, 4}, appIDs(views.FilterApplications(list, views.ApplicationFilter{UserID: 10})))
}

func TestParseStatusFilter(t *testing.T) {
	f, err := views.ParseStatusFilter("")
	require.NoError(t, err)
	require.Equal(t, views.FilterAll, f)

	f, err = views.ParseStatusFilter("not_shortlisted")
	require.NoError(t, err)
	require.Equal(t, views.FilterNotShortlisted, f)

	_, err = views.ParseStatusFilter("hired")
	require.Error(t, err)
}

func TestSortUsers(t *testing.T) {
	list := []users.User{
		{Username: "inactive-student"},
		{Username: "active-student", IsActive: true},
		{Username: "inactive-staff", IsStaff: true},
		{Username: "active-staff", IsStaff: true, IsActive: true},
	}
	var names []string
	for _, u := range views.SortUsers(list) {
		names = append(names, u.Username)
	}
	require.Equal(t, []string{"active-staff", "inactive-staff", "active-student", "inactive-student"}, names)
}

func TestValidateApplication(t *testing.T) {
	posting := internships.Internship{Skills: "Go, SQL"}
	valid := portal.ApplicationForm{Email: "asha@example.com", PhoneNumber: "9876543210", Skills: "Go,SQL"}
	require.Nil(t, views.ValidateApplication(valid, posting))

	invalid := portal.ApplicationForm{Email: "asha@example", PhoneNumber: "98765", Skills: "Go"}
	require.Equal(t, views.FieldErrors{
		"email":        "Invalid email",
		"phone_number": "Invalid phone number",
		"skills":       "Select all required skills",
	}, views.ValidateApplication(invalid, posting))
}

func TestToggleSkill(t *testing.T) {
	selected := views.ToggleSkill("", "Go", true)
	selected = views.ToggleSkill(selected, "SQL", true)
	require.Equal(t, "Go,SQL", selected)
	require.Equal(t, "SQL", views.ToggleSkill(selected, "Go", false))
	require.Equal(t, "SQL,Go", views.ToggleSkill(selected, "Go", true), "no duplicates")
}
