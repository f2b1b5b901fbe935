package portal

import "strconv"

const (
	PathAuthLogin     = "/auth/login/"
	PathAuthSignup    = "/auth/signup/"
	PathAuthVerifyOTP = "/auth/verify-otp/"
	PathAuthMe        = "/auth/me/"
	PathAuthRefresh   = "/auth/refresh/"
	PathAuthLogout    = "/auth/logout/"
	PathAdminUsers    = "/auth/admin/users/"
	PathInternships   = "/internships/"
	PathApplications  = "/students/students/"
)

func adminUserPath(id int64) string {
	return PathAdminUsers + strconv.FormatInt(id, 10) + "/"
}

func internshipPath(id int64) string {
	return PathInternships + strconv.FormatInt(id, 10) + "/"
}

func applicationPath(id int64) string {
	return PathApplications + strconv.FormatInt(id, 10) + "/"
}

func applicationStatusPath(id int64) string {
	return applicationPath(id) + "update_status/"
}
