package utils_test

import (
	"testing"

	"github.com/jrsteele09/internship-portal/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"Go", "SQL"}, utils.SplitList(" Go, ,SQL ,"))
	require.Empty(t, utils.SplitList(""))
	require.Equal(t, "Go,SQL", utils.JoinList(utils.SplitList("Go, SQL")))
}

func TestPointerHelpers(t *testing.T) {
	p := utils.Ptr(true)
	require.True(t, *p)
	require.True(t, utils.Value(p))
	require.False(t, utils.Value[bool](nil))
}
