package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"comment_wall/internal/domain"
	"comment_wall/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type testApp struct {
	router    *gin.Engine
	db        *gorm.DB
	uploadDir string
}

// newTestApp wires the full route table against a throwaway SQLite file store
func newTestApp(t *testing.T) *testApp {
	return newTestAppWithLimit(t, 10<<20)
}

func newTestAppWithLimit(t *testing.T, bodyLimit int64) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.User{}, &domain.Comment{}))

	uploadDir := t.TempDir()

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")
	r.Use(middleware.MaxBodySize(bodyLimit))
	r.Use(middleware.SessionMiddleware(testSecret))

	r.GET("/", HomeHandler(gdb, nil))
	r.GET("/info", InfoHandler())
	r.GET("/contact", ContactHandler())
	r.GET("/register", RegisterFormHandler())
	r.POST("/register", RegisterHandler(gdb))
	r.GET("/login", LoginFormHandler())
	r.POST("/login", LoginHandler(gdb, testSecret))
	r.GET("/logout", LogoutHandler())

	authed := r.Group("")
	authed.Use(middleware.RequireLogin())
	authed.GET("/profile", ProfileHandler(gdb))
	authed.GET("/edit_profile", EditProfileFormHandler(gdb))
	authed.POST("/edit_profile", EditProfileHandler(gdb, uploadDir, 10))
	authed.GET("/account-settings", AccountSettingsFormHandler(gdb))
	authed.POST("/account-settings", AccountSettingsHandler(gdb))
	authed.POST("/add_comment", AddCommentHandler(gdb, nil, uploadDir, 10))

	return &testApp{router: r, db: gdb, uploadDir: uploadDir}
}

// get performs a GET request with optional cookies
func (a *testApp) get(t *testing.T, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// postForm performs a urlencoded POST with optional cookies
func (a *testApp) postForm(t *testing.T, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// upload describes a single uploaded file in a multipart POST
type upload struct {
	field       string
	filename    string
	contentType string
	content     string
}

// postMultipart performs a multipart POST with form fields and an optional file
func (a *testApp) postMultipart(t *testing.T, path string, fields map[string]string, file *upload, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.field, file.filename))
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = io.WriteString(part, file.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the HTTP handler
func (a *testApp) register(t *testing.T, username, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return a.postForm(t, "/register", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	}, nil)
}

// login authenticates and returns the cookies carrying the session
func (a *testApp) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()
	rec := a.postForm(t, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"), "login should land on the wall")
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "login should set the session cookie")
	return cookies
}

// sessionCookie extracts the session cookie from a response, if any
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "session" && ck.Value != "" {
			return ck
		}
	}
	return nil
}
