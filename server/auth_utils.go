package server

import (
	"net/http"
	"time"
)

const (
	// accessCookieName carries the short-lived access JWT
	accessCookieName = "access"
	// refreshCookieName carries the refresh JWT used by /auth/refresh/
	refreshCookieName = "refresh"
)

// cookieSecurity picks Secure + SameSite=None for https (the web client is served
// from another origin) and Lax for plain http development
func (s *Server) cookieSecurity(r *http.Request) (bool, http.SameSite) {
	if s.config.GetSecureCookies() || getScheme(r) == "https" {
		return true, http.SameSiteNoneMode
	}
	return false, http.SameSiteLaxMode
}

func (s *Server) setTokenCookie(w http.ResponseWriter, r *http.Request, name, value string, maxAge time.Duration) {
	secure, sameSite := s.cookieSecurity(r)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		MaxAge:   int(maxAge.Seconds()),
	})
}

func (s *Server) SetAccessCookie(w http.ResponseWriter, r *http.Request, accessToken string) {
	s.setTokenCookie(w, r, accessCookieName, accessToken, s.tokens.AccessTokenExpiry())
}

func (s *Server) SetRefreshCookie(w http.ResponseWriter, r *http.Request, refreshToken string) {
	s.setTokenCookie(w, r, refreshCookieName, refreshToken, s.tokens.RefreshTokenExpiry())
}

// ClearTokenCookies expires both credential cookies
func (s *Server) ClearTokenCookies(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{accessCookieName, refreshCookieName} {
		secure, sameSite := s.cookieSecurity(r)
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: sameSite,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
		})
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
