package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vinaykumarh26/careerport-core/internal/users"
)

func setup(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}))

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	r := gin.New()
	New(r, db, log)
	return db, r
}

func createUser(t *testing.T, db *gorm.DB, email, password string, role users.Role) users.User {
	t.Helper()
	hashed, err := users.HashPassword(password)
	require.NoError(t, err)
	u := users.User{Name: "Someone", Email: email, PasswordHash: hashed, Role: role}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := users.User{ID: 7, Email: "seeker@portal.test", Role: users.RoleJobSeeker}
	token, csrf, err := GenerateToken(&u)
	require.NoError(t, err)
	require.NotEmpty(t, csrf)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, users.RoleJobSeeker, claims.Role)
	require.Equal(t, csrf, claims.CSRFToken)
}

func TestTokenTamperRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := users.User{ID: 1, Email: "a@b.test", Role: users.RoleAdmin}
	token, _, err := GenerateToken(&u)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	_, err = ParseToken(token)
	require.Error(t, err)
}

func TestLoginSuccess(t *testing.T) {
	db, r := setup(t)
	createUser(t, db, "seeker@portal.test", "secret123", users.RoleJobSeeker)

	w := postForm(r, "/login", url.Values{
		"email":    {"seeker@portal.test"},
		"password": {"secret123"},
		"role":     {"jobseeker"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token     string             `json:"token"`
		CSRFToken string             `json:"csrf_token"`
		User      users.UserResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.CSRFToken)
	require.Equal(t, users.RoleJobSeeker, resp.User.Role)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, CookieName, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	db, r := setup(t)
	// registration lowercases emails before storing them
	createUser(t, db, "seeker@portal.test", "secret123", users.RoleJobSeeker)

	w := postForm(r, "/login", url.Values{
		"email":    {"Seeker@Portal.Test"},
		"password": {"secret123"},
		"role":     {"jobseeker"},
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	db, r := setup(t)
	createUser(t, db, "seeker@portal.test", "secret123", users.RoleJobSeeker)

	w := postForm(r, "/login", url.Values{
		"email":    {"seeker@portal.test"},
		"password": {"wrong"},
		"role":     {"jobseeker"},
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginWrongRoleTab(t *testing.T) {
	db, r := setup(t)
	createUser(t, db, "seeker@portal.test", "secret123", users.RoleJobSeeker)

	// registered as a job seeker, signing in on the company tab
	w := postForm(r, "/login", url.Values{
		"email":    {"seeker@portal.test"},
		"password": {"secret123"},
		"role":     {"company"},
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutLogsSessionEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}))

	log, hook := logtest.NewNullLogger()
	r := gin.New()
	New(r, db, log)

	u := createUser(t, db, "seeker@portal.test", "secret123", users.RoleJobSeeker)
	token, _, err := GenerateToken(&u)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, hook.Entries, 1)
	require.Equal(t, "seeker@portal.test", hook.LastEntry().Data["email"])

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, CookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
}

func TestLogoutWithoutSession(t *testing.T) {
	_, r := setup(t)

	w := postForm(r, "/logout", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMe(t *testing.T) {
	db, r := setup(t)
	u := createUser(t, db, "seeker@portal.test", "secret123", users.RoleJobSeeker)

	token, _, err := GenerateToken(&u)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp users.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, u.ID, resp.ID)
}

func TestMeUnauthenticated(t *testing.T) {
	_, r := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
