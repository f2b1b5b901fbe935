package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	fakeapplicationrepo "github.com/jrsteele09/internship-portal/applications/repofake"
	"github.com/jrsteele09/internship-portal/files"
	"github.com/jrsteele09/internship-portal/internal/config"
	fakeinternshiprepo "github.com/jrsteele09/internship-portal/internships/repofake"
	"github.com/jrsteele09/internship-portal/notify"
	"github.com/jrsteele09/internship-portal/server"
	"github.com/jrsteele09/internship-portal/token"
	"github.com/jrsteele09/internship-portal/users"
	fakeuserrepo "github.com/jrsteele09/internship-portal/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	adminUsername   = "admin"
	adminPassword   = "admin-pass"
	studentPassword = "student-pass"
	allowedOrigin   = "http://localhost:3000"
)

// testFixture holds all test dependencies
type testFixture struct {
	repos server.Repos
	clock *clockwork.FakeClock
	ts    *httptest.Server

	mailLock sync.Mutex
	mails    []notify.Message
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	t.Setenv("ENV", "TEST")
	t.Setenv("ADMIN_USERNAME", adminUsername)
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", adminPassword)
	t.Setenv("ALLOWED_ORIGINS", allowedOrigin)

	f := &testFixture{
		repos: server.Repos{
			Users:        fakeuserrepo.NewFakeUserRepo(),
			Internships:  fakeinternshiprepo.NewFakeInternshipRepo(),
			Applications: fakeapplicationrepo.NewFakeApplicationRepo(),
		},
		clock: clockwork.NewFakeClockAt(time.Now()),
	}

	cfg := config.New()
	uploads, err := files.NewStore(t.TempDir(), cfg.GetMaxUploadSize())
	require.NoError(t, err)

	tokens := token.New("test-secret",
		token.WithTokenExpiry(cfg.GetAccessTokenExpiry(), cfg.GetRefreshTokenExpiry()),
		token.WithNowFunc(f.clock.Now),
	)
	mailer := notify.SendFunc(func(_ context.Context, msg notify.Message) error {
		f.mailLock.Lock()
		defer f.mailLock.Unlock()
		f.mails = append(f.mails, msg)
		return nil
	})

	srv, err := server.New(cfg, f.repos, uploads,
		server.WithTokenManager(tokens),
		server.WithMailer(mailer),
		server.WithNowFunc(f.clock.Now),
	)
	require.NoError(t, err)

	f.ts = httptest.NewServer(srv)
	t.Cleanup(f.ts.Close)
	t.Setenv("BASE_URL", f.ts.URL)
	return f
}

func (f *testFixture) sentMails() []notify.Message {
	f.mailLock.Lock()
	defer f.mailLock.Unlock()
	return append([]notify.Message(nil), f.mails...)
}

func (f *testFixture) newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (f *testFixture) createUser(t *testing.T, username string, active, staff bool) *users.User {
	t.Helper()
	hash, err := users.HashPassword(studentPassword)
	require.NoError(t, err)
	u := &users.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    strings.ToUpper(username[:1]) + username[1:],
		PasswordHash: hash,
		IsActive:     active,
		IsVerified:   active,
		IsStaff:      staff,
		DateJoined:   f.clock.Now(),
	}
	require.NoError(t, f.repos.Users.Create(u))
	return u
}

func (f *testFixture) call(t *testing.T, c *http.Client, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, f.ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return f.send(t, c, req)
}

func (f *testFixture) send(t *testing.T, c *http.Client, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func (f *testFixture) login(t *testing.T, c *http.Client, username, password string) map[string]any {
	t.Helper()
	status, body := f.call(t, c, http.MethodPost, "/auth/login/", map[string]string{
		"username": username, "password": password, "recaptchaToken": "ignored",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	return decode[map[string]any](t, body)
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestLoginSetsCookiesAndMe(t *testing.T) {
	f := setupTestFixture(t)
	f.createUser(t, "asha", true, false)
	c := f.newClient(t)

	status, _ := f.call(t, c, http.MethodGet, "/auth/me/", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	body := f.login(t, c, "asha", studentPassword)
	require.Equal(t, "asha", body["username"])
	require.Equal(t, "user", body["status"])
	require.NotZero(t, body["user_id"])

	u, _ := url.Parse(f.ts.URL)
	names := map[string]bool{}
	for _, cookie := range c.Jar.Cookies(u) {
		names[cookie.Name] = true
	}
	require.True(t, names["access"])
	require.True(t, names["refresh"])

	status, raw := f.call(t, c, http.MethodGet, "/auth/me/", nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[map[string]any](t, raw)
	require.Equal(t, "asha", me["username"])
	require.Equal(t, "asha@example.com", me["email"])
	require.Equal(t, false, me["is_staff"])
	require.NotContains(t, me, "PasswordHash")
}

func TestLoginStatusReflectsRole(t *testing.T) {
	f := setupTestFixture(t)
	f.createUser(t, "ravi", true, true)

	require.Equal(t, "staff", f.login(t, f.newClient(t), "ravi", studentPassword)["status"])
	require.Equal(t, "superuser", f.login(t, f.newClient(t), adminUsername, adminPassword)["status"])
}

func TestLoginFailures(t *testing.T) {
	f := setupTestFixture(t)
	f.createUser(t, "asha", true, false)
	f.createUser(t, "newbie", false, false)
	c := f.newClient(t)

	status, body := f.call(t, c, http.MethodPost, "/auth/login/", map[string]string{"username": "asha", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid credentials", decode[map[string]string](t, body)["error"])

	status, _ = f.call(t, c, http.MethodPost, "/auth/login/", map[string]string{"username": "nobody", "password": "x"})
	require.Equal(t, http.StatusUnauthorized, status)

	status, body = f.call(t, c, http.MethodPost, "/auth/login/", map[string]string{"username": "newbie", "password": studentPassword})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, []string{"Account not verified"}, decode[map[string][]string](t, body)["non_field_errors"])

	status, body = f.call(t, c, http.MethodPost, "/auth/login/", map[string]string{})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, decode[map[string][]string](t, body), "username")
}

func TestSignupAndVerifyOTP(t *testing.T) {
	f := setupTestFixture(t)
	c := f.newClient(t)

	signup := map[string]string{
		"first_name": "Asha", "email": "asha@example.com", "username": "asha", "password": "pw12345",
	}
	status, body := f.call(t, c, http.MethodPost, "/auth/signup/", signup)
	require.Equal(t, http.StatusCreated, status, string(body))

	u, err := f.repos.Users.GetByUsername("asha")
	require.NoError(t, err)
	require.False(t, u.IsActive)
	require.Len(t, u.OTP, 6)

	mails := f.sentMails()
	require.Len(t, mails, 1)
	require.Equal(t, "asha@example.com", mails[0].To)
	require.Contains(t, mails[0].Body, u.OTP)

	status, _ = f.call(t, c, http.MethodPost, "/auth/login/", map[string]string{"username": "asha", "password": "pw12345"})
	require.Equal(t, http.StatusBadRequest, status)

	status, body = f.call(t, c, http.MethodPost, "/auth/verify-otp/", map[string]string{"email": "asha@example.com", "otp": "000000"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "invalid OTP", decode[map[string]string](t, body)["error"])

	status, _ = f.call(t, c, http.MethodPost, "/auth/verify-otp/", map[string]string{"email": "asha@example.com", "otp": u.OTP})
	require.Equal(t, http.StatusOK, status)

	f.login(t, c, "asha", "pw12345")

	status, body = f.call(t, c, http.MethodPost, "/auth/register/", signup)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, []string{"Email already registered."}, decode[map[string][]string](t, body)["email"])
}

func TestSignupValidation(t *testing.T) {
	f := setupTestFixture(t)
	status, body := f.call(t, f.newClient(t), http.MethodPost, "/auth/signup/", map[string]string{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, status)
	errs := decode[map[string][]string](t, body)
	require.Contains(t, errs, "first_name")
	require.Contains(t, errs, "username")
	require.Contains(t, errs, "password")
	require.Equal(t, []string{"Enter a valid email address."}, errs["email"])
}

func TestVerifyExpiredOTP(t *testing.T) {
	f := setupTestFixture(t)
	c := f.newClient(t)
	status, _ := f.call(t, c, http.MethodPost, "/auth/signup/", map[string]string{
		"first_name": "Asha", "email": "asha@example.com", "username": "asha", "password": "pw12345",
	})
	require.Equal(t, http.StatusCreated, status)
	u, err := f.repos.Users.GetByUsername("asha")
	require.NoError(t, err)

	f.clock.Advance(11 * time.Minute)
	status, body := f.call(t, c, http.MethodPost, "/auth/verify-otp/", map[string]string{"email": "asha@example.com", "otp": u.OTP})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "OTP expired", decode[map[string]string](t, body)["error"])
}

func TestRefreshRenewsAccessCookie(t *testing.T) {
	f := setupTestFixture(t)
	f.createUser(t, "asha", true, false)
	c := f.newClient(t)
	f.login(t, c, "asha", studentPassword)

	f.clock.Advance(16 * time.Minute)
	status, body := f.call(t, c, http.MethodGet, "/auth/me/", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid token", decode[map[string]string](t, body)["detail"])

	status, body = f.call(t, c, http.MethodPost, "/auth/refresh/", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Token refreshed", decode[map[string]string](t, body)["message"])

	status, _ = f.call(t, c, http.MethodGet, "/auth/me/", nil)
	require.Equal(t, http.StatusOK, status)

	f.clock.Advance(8 * 24 * time.Hour)
	status, _ = f.call(t, c, http.MethodPost, "/auth/refresh/", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestRefreshWithoutCookie(t *testing.T) {
	f := setupTestFixture(t)
	status, body := f.call(t, f.newClient(t), http.MethodPost, "/auth/refresh/", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "No refresh token", decode[map[string]string](t, body)["detail"])
}

func TestLogoutRevokesAndClearsCookies(t *testing.T) {
	f := setupTestFixture(t)
	f.createUser(t, "asha", true, false)
	c := f.newClient(t)
	f.login(t, c, "asha", studentPassword)

	u, _ := url.Parse(f.ts.URL)
	var refresh string
	for _, cookie := range c.Jar.Cookies(u) {
		if cookie.Name == "refresh" {
			refresh = cookie.Value
		}
	}
	require.NotEmpty(t, refresh)

	status, _ := f.call(t, c, http.MethodPost, "/auth/logout/", nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, c.Jar.Cookies(u))

	status, _ = f.call(t, c, http.MethodGet, "/auth/me/", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	req, err := http.NewRequest(http.MethodPost, f.ts.URL+"/auth/refresh/", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "refresh", Value: refresh})
	status, _ = f.send(t, http.DefaultClient, req)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminUserManagement(t *testing.T) {
	f := setupTestFixture(t)
	student := f.createUser(t, "asha", true, false)
	f.clock.Advance(time.Minute)
	f.createUser(t, "ravi", true, false)

	sc := f.newClient(t)
	f.login(t, sc, "asha", studentPassword)
	status, _ := f.call(t, sc, http.MethodGet, "/auth/admin/users/", nil)
	require.Equal(t, http.StatusForbidden, status)
	status, _ = f.call(t, sc, http.MethodPatch, "/auth/admin/users/1/", map[string]bool{"is_staff": true})
	require.Equal(t, http.StatusForbidden, status)

	ac := f.newClient(t)
	f.login(t, ac, adminUsername, adminPassword)

	status, body := f.call(t, ac, http.MethodGet, "/auth/admin/users/", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[[]map[string]any](t, body)
	require.Len(t, list, 3)
	require.Equal(t, "ravi", list[0]["username"])

	path := "/auth/admin/users/" + jsonID(student.ID) + "/"
	status, body = f.call(t, ac, http.MethodPatch, path, map[string]bool{"is_active": false})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, false, decode[map[string]any](t, body)["is_active"])

	// blocked account loses access at once
	status, _ = f.call(t, sc, http.MethodGet, "/auth/me/", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = f.call(t, ac, http.MethodGet, "/auth/admin/users/999/", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestInternshipEndpoints(t *testing.T) {
	f := setupTestFixture(t)
	f.createUser(t, "asha", true, false)

	status, body := f.call(t, f.newClient(t), http.MethodGet, "/internships/", nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, "[]", string(body))

	sc := f.newClient(t)
	f.login(t, sc, "asha", studentPassword)
	posting := map[string]string{"Title": "Go Intern", "Mentor": "Ravi", "Duration": "3 months", "Stipend": "5000", "Skills": "Go, SQL"}
	status, _ = f.call(t, sc, http.MethodPost, "/internships/", posting)
	require.Equal(t, http.StatusForbidden, status)

	ac := f.newClient(t)
	f.login(t, ac, adminUsername, adminPassword)

	status, body = f.call(t, ac, http.MethodPost, "/internships/", map[string]string{"Title": "x"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, decode[map[string][]string](t, body), "Mentor")

	status, body = f.call(t, ac, http.MethodPost, "/internships/", posting)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[map[string]any](t, body)
	require.Equal(t, "Open", created["Status"])
	require.Equal(t, adminUsername, created["username"])

	id := jsonID(int64(created["id"].(float64)))
	posting["Status"] = "Closed"
	status, body = f.call(t, ac, http.MethodPut, "/internships/"+id+"/", posting)
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = f.call(t, sc, http.MethodGet, "/internships/"+id+"/", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Closed", decode[map[string]any](t, body)["Status"])

	status, _ = f.call(t, sc, http.MethodGet, "/internships/77/", nil)
	require.Equal(t, http.StatusNotFound, status)
}

type multipartFile struct {
	field, name string
	content     []byte
}

func (f *testFixture) multipartRequest(t *testing.T, path string, fields map[string]string, uploads ...multipartFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, u := range uploads {
		fw, err := mw.CreateFormFile(u.field, u.name)
		require.NoError(t, err)
		_, err = fw.Write(u.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, f.ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestApplicationLifecycle(t *testing.T) {
	f := setupTestFixture(t)
	f.createUser(t, "asha", true, false)
	f.createUser(t, "ravi", true, false)

	ac := f.newClient(t)
	f.login(t, ac, adminUsername, adminPassword)
	status, body := f.call(t, ac, http.MethodPost, "/internships/", map[string]string{
		"Title": "Go Intern", "Mentor": "Ravi", "Duration": "3 months", "Stipend": "5000",
	})
	require.Equal(t, http.StatusCreated, status)
	internshipID := jsonID(int64(decode[map[string]any](t, body)["id"].(float64)))

	sc := f.newClient(t)
	f.login(t, sc, "asha", studentPassword)

	fields := map[string]string{
		"first_name": "Asha", "last_name": "Verma", "email": "asha@example.com",
		"phone_number": "9876543210", "college_name": "MNIT", "i_id": internshipID,
	}

	status, body = f.send(t, sc, f.multipartRequest(t, "/students/students/", fields,
		multipartFile{"resume", "cv.png", []byte("png")}))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, []string{"Only PDF files are allowed."}, decode[map[string][]string](t, body)["resume"])

	status, body = f.send(t, sc, f.multipartRequest(t, "/students/students/", fields,
		multipartFile{"resume", "cv.pdf", []byte("%PDF-1.4 resume")},
		multipartFile{"id_card", "id.pdf", []byte("%PDF-1.4 id")}))
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[map[string]any](t, body)
	require.Equal(t, "Applied", created["status"])
	resumeURL, ok := created["resume_url"].(string)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(resumeURL, f.ts.URL+"/media/resumes/"))
	require.Len(t, f.sentMails(), 1)

	// the uploaded file is served back to signed-in users
	req, err := http.NewRequest(http.MethodGet, resumeURL, nil)
	require.NoError(t, err)
	status, body = f.send(t, ac, req)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "%PDF-1.4 resume", string(body))

	// students only see their own applications
	rc := f.newClient(t)
	f.login(t, rc, "ravi", studentPassword)
	status, body = f.call(t, rc, http.MethodGet, "/students/students/", nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, "[]", string(body))

	status, body = f.call(t, ac, http.MethodGet, "/students/students/", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, decode[[]map[string]any](t, body), 1)

	appID := jsonID(int64(created["id"].(float64)))
	statusPath := f.ts.URL + "/students/students/" + appID + "/update_status/"

	form := func(status string) *http.Request {
		req, err := http.NewRequest(http.MethodPut, statusPath, strings.NewReader(url.Values{"status": {status}}.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}

	code, _ := f.send(t, sc, form("Shortlisted"))
	require.Equal(t, http.StatusForbidden, code)

	code, body = f.send(t, ac, form("Hired"))
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, decode[map[string][]string](t, body), "status")

	code, body = f.send(t, ac, form("Shortlisted"))
	require.Equal(t, http.StatusOK, code, string(body))
	require.Equal(t, "Shortlisted", decode[map[string]any](t, body)["status"])

	mails := f.sentMails()
	require.Len(t, mails, 2)
	require.Equal(t, "Application Status Updated", mails[1].Subject)
}

func TestApplicationRequiresOpenInternship(t *testing.T) {
	f := setupTestFixture(t)
	f.createUser(t, "asha", true, false)

	ac := f.newClient(t)
	f.login(t, ac, adminUsername, adminPassword)
	status, body := f.call(t, ac, http.MethodPost, "/internships/", map[string]string{
		"Title": "Go Intern", "Mentor": "Ravi", "Duration": "3 months", "Stipend": "5000", "Status": "Closed",
	})
	require.Equal(t, http.StatusCreated, status)
	internshipID := jsonID(int64(decode[map[string]any](t, body)["id"].(float64)))

	sc := f.newClient(t)
	f.login(t, sc, "asha", studentPassword)
	status, body = f.send(t, sc, f.multipartRequest(t, "/students/students/", map[string]string{
		"first_name": "Asha", "email": "asha@example.com", "phone_number": "9876543210", "i_id": internshipID,
	}))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, []string{"This internship is closed."}, decode[map[string][]string](t, body)["i_id"])
}

func TestCorsPreflight(t *testing.T) {
	f := setupTestFixture(t)

	req, err := http.NewRequest(http.MethodOptions, f.ts.URL+"/internships/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", allowedOrigin)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, allowedOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	req, err = http.NewRequest(http.MethodGet, f.ts.URL+"/internships/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.example.com")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestBootstrapIsIdempotent(t *testing.T) {
	f := setupTestFixture(t)
	cfg := config.New()
	uploads, err := files.NewStore(t.TempDir(), cfg.GetMaxUploadSize())
	require.NoError(t, err)

	_, err = server.New(cfg, f.repos, uploads, server.WithMailer(notify.SendFunc(func(context.Context, notify.Message) error { return nil })))
	require.NoError(t, err)

	list, err := f.repos.Users.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].IsSuperuser)
}

func jsonID(id int64) string {
	return strconv.FormatInt(id, 10)
}
