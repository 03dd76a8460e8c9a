package users

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setup(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	r := gin.New()
	New(r, db)
	return db, r
}

func register(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "company", "jobseeker"} {
		role, ok := ParseRole(valid)
		require.True(t, ok)
		require.EqualValues(t, valid, role)
	}
	for _, invalid := range []string{"", "superuser", "Admin", "JOBSEEKER"} {
		_, ok := ParseRole(invalid)
		require.False(t, ok)
	}
}

func TestRegister(t *testing.T) {
	db, r := setup(t)

	w := register(r, url.Values{
		"name":     {"Jane Doe"},
		"email":    {"Jane@Portal.Test"},
		"password": {"secret123"},
		"role":     {"jobseeker"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var u User
	require.NoError(t, db.First(&u, "email = ?", "jane@portal.test").Error)
	require.Equal(t, RoleJobSeeker, u.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
	require.NotContains(t, w.Body.String(), u.PasswordHash, "hash never leaves the server")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db, r := setup(t)

	form := url.Values{
		"name":     {"Jane Doe"},
		"email":    {"jane@portal.test"},
		"password": {"secret123"},
		"role":     {"jobseeker"},
	}
	require.Equal(t, http.StatusCreated, register(r, form).Code)
	require.Equal(t, http.StatusConflict, register(r, form).Code)

	var count int64
	db.Model(&User{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestRegisterShortPassword(t *testing.T) {
	_, r := setup(t)

	w := register(r, url.Values{
		"name":     {"Jane Doe"},
		"email":    {"jane@portal.test"},
		"password": {"short"},
		"role":     {"jobseeker"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterAdminRejected(t *testing.T) {
	db, r := setup(t)

	w := register(r, url.Values{
		"name":     {"Mallory"},
		"email":    {"mallory@portal.test"},
		"password": {"secret123"},
		"role":     {"admin"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&User{}).Count(&count)
	require.Zero(t, count)
}

func TestRegisterUnknownRole(t *testing.T) {
	_, r := setup(t)

	w := register(r, url.Values{
		"name":     {"Jane Doe"},
		"email":    {"jane@portal.test"},
		"password": {"secret123"},
		"role":     {"wizard"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
