package server

import (
	"net/http"
	"net/mail"
	"strings"

	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/jrsteele09/internship-portal/notify"
	"github.com/jrsteele09/internship-portal/users"
	"github.com/rs/zerolog/log"
)

type loginRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	RecaptchaToken string `json:"recaptchaToken"` // accepted, not verified
}

type loginResponse struct {
	UserID   int64            `json:"user_id"`
	Username string           `json:"username"`
	Status   users.RoleStatus `json:"status"`
}

// LoginHandler authenticates a username/password pair and sets the access and
// refresh cookies
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		errs := FieldErrors{}
		if strings.TrimSpace(req.Username) == "" {
			errs.Add("username", "This field is required.")
		}
		if req.Password == "" {
			errs.Add("password", "This field is required.")
		}
		if len(errs) > 0 {
			writeFieldErrors(w, errs)
			return
		}

		user, err := s.repos.Users.GetByUsername(strings.TrimSpace(req.Username))
		if err != nil || !user.CheckPassword(req.Password) {
			// Don't reveal if user exists or not
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if !user.IsActive {
			writeFieldErrors(w, FieldErrors{"non_field_errors": {"Account not verified"}})
			return
		}

		pair, err := s.tokens.CreateTokenPair(user)
		if err != nil {
			log.Err(err).Int64("user_id", user.ID).Msg("Failed to create tokens")
			writeError(w, http.StatusInternalServerError, "Login failed")
			return
		}

		user.LastLogin = s.now()
		if err := s.repos.Users.Update(user); err != nil {
			log.Err(err).Int64("user_id", user.ID).Msg("Failed to record last login")
		}

		s.SetAccessCookie(w, r, pair.Access)
		s.SetRefreshCookie(w, r, pair.Refresh)
		writeJSON(w, http.StatusOK, loginResponse{
			UserID:   user.ID,
			Username: user.Username,
			Status:   user.Status(),
		})
	}
}

type signupRequest struct {
	FirstName      string `json:"first_name"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	RecaptchaToken string `json:"recaptchaToken"` // accepted, not verified
}

func (req *signupRequest) validate() FieldErrors {
	errs := FieldErrors{}
	for field, value := range map[string]string{
		"first_name": req.FirstName,
		"email":      req.Email,
		"username":   req.Username,
		"password":   req.Password,
	} {
		if strings.TrimSpace(value) == "" {
			errs.Add(field, "This field is required.")
		}
	}
	if _, ok := errs["email"]; !ok {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			errs.Add("email", "Enter a valid email address.")
		}
	}
	return errs
}

// SignupHandler creates an inactive account and mails it a one-time password
func (s *Server) SignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if errs := req.validate(); len(errs) > 0 {
			writeFieldErrors(w, errs)
			return
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			log.Err(err).Msg("Failed to hash password")
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		now := s.now()
		user := &users.User{
			Username:     strings.TrimSpace(req.Username),
			Email:        strings.TrimSpace(req.Email),
			FirstName:    strings.TrimSpace(req.FirstName),
			PasswordHash: hash,
			DateJoined:   now,
		}
		if err := user.IssueOTP(now, s.config.GetOTPExpiry()); err != nil {
			log.Err(err).Msg("Failed to generate OTP")
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		switch err := s.repos.Users.Create(user); {
		case apperrors.Is(err, apperrors.ErrDuplicateEmail):
			writeFieldErrors(w, FieldErrors{"email": {"Email already registered."}})
			return
		case apperrors.Is(err, apperrors.ErrDuplicateUsername):
			writeFieldErrors(w, FieldErrors{"username": {"A user with that username already exists."}})
			return
		case err != nil:
			log.Err(err).Msg("Failed to create user")
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		notify.SendBestEffort(r.Context(), s.mailer, notify.OTPMessage(user, s.config.GetOTPExpiry()))
		writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered. OTP sent to email."})
	}
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTPHandler activates the account owning email when otp matches
func (s *Server) VerifyOTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyOTPRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		otp := strings.TrimSpace(req.OTP)
		if req.Email == "" || otp == "" {
			writeError(w, http.StatusBadRequest, "Email and OTP are required")
			return
		}

		user, err := s.repos.Users.GetByEmail(strings.TrimSpace(req.Email))
		if err != nil || user.OTP == "" || user.OTP != otp {
			writeError(w, http.StatusBadRequest, apperrors.ErrInvalidOTP.Error())
			return
		}
		if !user.OTPIsValid(otp, s.now()) {
			writeError(w, http.StatusBadRequest, apperrors.ErrOTPExpired.Error())
			return
		}

		user.IsVerified = true
		user.IsActive = true
		user.ClearOTP()
		if err := s.repos.Users.Update(user); err != nil {
			log.Err(err).Int64("user_id", user.ID).Msg("Failed to activate user")
			writeError(w, http.StatusInternalServerError, "Verification failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "OTP verified successfully"})
	}
}

// MeHandler returns the profile of the cookie's owner
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentUser(r))
	}
}

// RefreshHandler exchanges the refresh cookie for a new access cookie
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := cookieValue(r, refreshCookieName)
		if raw == "" {
			writeDetail(w, http.StatusUnauthorized, "No refresh token")
			return
		}

		access, claims, err := s.tokens.Refresh(raw)
		if err != nil {
			log.Debug().Err(err).Msg("refresh rejected")
			writeDetail(w, http.StatusUnauthorized, "Token is invalid or expired")
			return
		}

		user, err := s.repos.Users.GetByID(claims.UserID)
		if err != nil || !user.IsActive {
			writeDetail(w, http.StatusUnauthorized, "Token is invalid or expired")
			return
		}

		s.SetAccessCookie(w, r, access)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Token refreshed"})
	}
}

// LogoutHandler revokes both credentials and deletes their cookies
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, name := range []string{refreshCookieName, accessCookieName} {
			raw := cookieValue(r, name)
			if raw == "" {
				continue
			}
			if err := s.tokens.Revoke(raw); err != nil && !apperrors.Is(err, apperrors.ErrTokenExpired) {
				log.Err(err).Str("token_type", name).Msg("Failed to revoke token")
			}
		}

		s.ClearTokenCookies(w, r)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
	}
}
