package users_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/internship-portal/users"
	"github.com/stretchr/testify/require"
)

func TestUserStatus(t *testing.T) {
	tests := []struct {
		name string
		user users.User
		want users.RoleStatus
	}{
		{name: "student", user: users.User{}, want: users.StatusUser},
		{name: "mentor", user: users.User{IsStaff: true}, want: users.StatusStaff},
		{name: "superuser", user: users.User{IsSuperuser: true}, want: users.StatusSuperuser},
		{name: "superuser wins over staff", user: users.User{IsStaff: true, IsSuperuser: true}, want: users.StatusSuperuser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.user.Status())
			require.Equal(t, tt.want != users.StatusUser, tt.user.IsAdmin())
		})
	}
}

func TestOTPLifecycle(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	u := &users.User{}

	require.False(t, u.OTPIsValid("123456", now), "no otp issued yet")

	require.NoError(t, u.IssueOTP(now, 10*time.Minute))
	require.Len(t, u.OTP, 6)
	require.True(t, u.OTPIsValid(u.OTP, now.Add(5*time.Minute)))
	require.True(t, u.OTPIsValid(" "+u.OTP+" ", now), "surrounding whitespace is ignored")
	require.False(t, u.OTPIsValid("000000", now))
	require.False(t, u.OTPIsValid(u.OTP, now.Add(11*time.Minute)), "expired")

	u.ClearOTP()
	require.Empty(t, u.OTP)
	require.True(t, u.OTPExpiresAt.IsZero())
}

func TestGenerateOTPRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := users.GenerateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		require.NotEqual(t, byte('0'), otp[0])
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := users.HashPassword("s3cret-Pass")
	require.NoError(t, err)

	u := &users.User{PasswordHash: hash}
	require.True(t, u.CheckPassword("s3cret-Pass"))
	require.False(t, u.CheckPassword("wrong"))
}
