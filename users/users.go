package users

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RoleStatus is the role-specific label returned by login, used by clients to
// pick the landing page
type RoleStatus string

const (
	StatusSuperuser RoleStatus = "superuser" // Manages accounts and postings
	StatusStaff     RoleStatus = "staff"     // Mentor: posts internships and reviews applications
	StatusUser      RoleStatus = "user"      // Student
)

const otpDigits = 6

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	PasswordHash string    `json:"-"` // never serialize
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	IsVerified   bool      `json:"-"`
	DateJoined   time.Time `json:"-"`
	LastLogin    time.Time `json:"-"`

	// Email verification
	OTP          string    `json:"-"`
	OTPExpiresAt time.Time `json:"-"`
}

// Status derives the role label; superuser wins over staff
func (u *User) Status() RoleStatus {
	switch {
	case u.IsSuperuser:
		return StatusSuperuser
	case u.IsStaff:
		return StatusStaff
	default:
		return StatusUser
	}
}

// IsAdmin reports whether the user may manage accounts and postings
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}

// OTPIsValid checks the OTP matches and has not expired
func (u *User) OTPIsValid(otp string, now time.Time) bool {
	if u.OTP == "" || u.OTPExpiresAt.IsZero() {
		return false
	}
	if now.After(u.OTPExpiresAt) {
		return false
	}
	return u.OTP == strings.TrimSpace(otp)
}

// IssueOTP generates a fresh numeric OTP valid for ttl
func (u *User) IssueOTP(now time.Time, ttl time.Duration) error {
	otp, err := GenerateOTP()
	if err != nil {
		return err
	}
	u.OTP = otp
	u.OTPExpiresAt = now.Add(ttl)
	return nil
}

func (u *User) ClearOTP() {
	u.OTP = ""
	u.OTPExpiresAt = time.Time{}
}

// GenerateOTP returns a 6-digit code in the range 100000-999999
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()+100000), nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword checks a password against the user's hash
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}
