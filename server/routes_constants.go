package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthLogin     = "/auth/login/"
	RouteAuthSignup    = "/auth/signup/"
	RouteAuthRegister  = "/auth/register/"
	RouteAuthVerifyOTP = "/auth/verify-otp/"
	RouteAuthMe        = "/auth/me/"
	RouteAuthRefresh   = "/auth/refresh/"
	RouteAuthLogout    = "/auth/logout/"

	// Admin Routes
	RouteAdminUsers = "/auth/admin/users/"
	RouteAdminUser  = "/auth/admin/users/{id}/"

	// Internship Routes
	RouteInternships = "/internships/"
	RouteInternship  = "/internships/{id}/"

	// Application Routes
	RouteApplications      = "/students/students/"
	RouteApplication       = "/students/students/{id}/"
	RouteApplicationStatus = "/students/students/{id}/update_status/"

	// Uploaded files
	RouteMedia = "/media/{kind}/{file}"

	RouteHealth = "/healthz"
)
