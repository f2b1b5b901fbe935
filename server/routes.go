package server

import (
	"net/http"
)

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("POST "+exact(RouteAuthLogin), ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+exact(RouteAuthSignup), ChainMiddleware(s.SignupHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+exact(RouteAuthRegister), ChainMiddleware(s.SignupHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+exact(RouteAuthVerifyOTP), ChainMiddleware(s.VerifyOTPHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+exact(RouteAuthRefresh), ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+exact(RouteAuthMe), ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+exact(RouteAuthLogout), ChainMiddleware(s.LogoutHandler(), s.APIMiddleware(s.RequireAuth())...))

	// ADMIN
	s.RegisterRouteHandler("GET "+exact(RouteAdminUsers), ChainMiddleware(s.AdminUsersListHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
	s.RegisterRouteHandler("GET "+exact(RouteAdminUser), ChainMiddleware(s.AdminUserGetHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
	s.RegisterRouteHandler("PATCH "+exact(RouteAdminUser), ChainMiddleware(s.AdminUserPatchHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))

	// INTERNSHIPS
	s.RegisterRouteHandler("GET "+exact(RouteInternships), ChainMiddleware(s.InternshipsListHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+exact(RouteInternship), ChainMiddleware(s.InternshipGetHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+exact(RouteInternships), ChainMiddleware(s.InternshipCreateHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
	s.RegisterRouteHandler("PUT "+exact(RouteInternship), ChainMiddleware(s.InternshipUpdateHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))

	// APPLICATIONS
	s.RegisterRouteHandler("GET "+exact(RouteApplications), ChainMiddleware(s.ApplicationsListHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+exact(RouteApplication), ChainMiddleware(s.ApplicationGetHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+exact(RouteApplications), ChainMiddleware(s.ApplicationCreateHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("PUT "+exact(RouteApplicationStatus), ChainMiddleware(s.ApplicationStatusHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))

	s.RegisterRouteHandler("GET "+RouteMedia, ChainMiddleware(s.MediaHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// Browsers preflight every credentialed cross-origin call
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(s.NotFoundHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFoundHandler(), s.APIMiddleware()...))
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// NotFoundHandler handles 404 errors
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not found.")
	}
}

// exact anchors a trailing-slash route so it does not match deeper paths
func exact(route string) string {
	return route + "{$}"
}
