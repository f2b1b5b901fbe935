package applications_test

import (
	"testing"

	"github.com/jrsteele09/internship-portal/applications"
	"github.com/stretchr/testify/require"
)

func TestFullName(t *testing.T) {
	a := applications.Application{FirstName: "Asha", LastName: "Verma"}
	require.Equal(t, "Asha Verma", a.FullName())

	b := applications.Application{FirstName: "Asha"}
	require.Equal(t, "Asha", b.FullName())
}

func TestValidateStatus(t *testing.T) {
	for _, s := range applications.Statuses {
		require.NoError(t, applications.ValidateStatus(s))
	}
	require.Error(t, applications.ValidateStatus("shortlisted"))
}
