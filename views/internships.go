package views

import (
	"sort"
	"strings"

	"github.com/jrsteele09/internship-portal/internships"
	"github.com/jrsteele09/internship-portal/users"
)

// PageSize is the number of postings shown per page
const PageSize = 5

// SortOpenFirst returns a copy with open postings ahead of closed ones, keeping
// the fetched order otherwise
func SortOpenFirst(list []internships.Internship) []internships.Internship {
	sorted := append([]internships.Internship(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].IsOpen() && !sorted[j].IsOpen()
	})
	return sorted
}

// Search keeps postings whose title, mentor or skills contain query, ignoring case
func Search(list []internships.Internship, query string) []internships.Internship {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}
	var matches []internships.Internship
	for _, i := range list {
		haystack := strings.ToLower(i.Title + " " + i.Mentor + " " + i.Skills)
		if strings.Contains(haystack, query) {
			matches = append(matches, i)
		}
	}
	return matches
}

// PostedBy keeps the postings created by u
func PostedBy(list []internships.Internship, u *users.User) []internships.Internship {
	var mine []internships.Internship
	for _, i := range list {
		if i.UserID == u.ID && i.Username == u.Username {
			mine = append(mine, i)
		}
	}
	return mine
}

// Paginate returns the 1-based page of items and the page count. Out of range
// pages are clamped.
func Paginate[T any](items []T, page, size int) ([]T, int) {
	if size <= 0 {
		size = PageSize
	}
	total := (len(items) + size - 1) / size
	if total == 0 {
		return nil, 0
	}
	page = min(max(page, 1), total)
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end], total
}
