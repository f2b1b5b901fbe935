package fakeapplicationrepo_test

import (
	"testing"

	"github.com/jrsteele09/internship-portal/applications"
	fakeapplicationrepo "github.com/jrsteele09/internship-portal/applications/repofake"
	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestFakeApplicationRepo(t *testing.T) {
	repo := fakeapplicationrepo.NewFakeApplicationRepo()

	first := &applications.Application{FirstName: "Asha", InternshipID: 1, Status: applications.StatusApplied}
	second := &applications.Application{FirstName: "Ravi", InternshipID: 2, Status: applications.StatusApplied}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Asha", list[0].FirstName)
	require.Equal(t, "Ravi", list[1].FirstName, "distinct entries, not a shared loop variable")

	updated, err := repo.UpdateStatus(second.ID, applications.StatusShortlisted)
	require.NoError(t, err)
	require.Equal(t, applications.StatusShortlisted, updated.Status)

	_, err = repo.UpdateStatus(second.ID, "Hired")
	require.ErrorIs(t, err, apperrors.ErrInvalidStatus)

	_, err = repo.UpdateStatus(42, applications.StatusApplied)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.Get(42)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
