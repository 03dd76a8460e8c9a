package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vinaykumarh26/careerport-core/internal/users"
)

type Handler struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func New(r *gin.Engine, db *gorm.DB, log *logrus.Logger) *Handler {
	h := &Handler{DB: db, Log: log}
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/me", RequireAuth(), h.Me)
	return h
}

type loginDTO struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
	Role     string `json:"role" form:"role" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBind(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, ok := users.ParseRole(dto.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	// emails are stored lowercased at registration, so normalize the same way
	// before the lookup
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	// the portal logs users in under the role they picked; an email registered
	// as a company cannot sign in on the job seeker tab
	var u users.User
	if err := h.DB.First(&u, "email = ? AND role = ?", email, role).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		h.Log.WithFields(logrus.Fields{"email": email, "role": role}).Warn("failed login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	tok, csrf, err := GenerateToken(&u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.SetCookie(CookieName, tok, 86400, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token":      tok,
		"csrf_token": csrf,
		"user":       users.ToResponse(&u),
	})
}

// Logout clears the session cookie. It works without authentication; when a
// valid session is present its email is logged.
func (h *Handler) Logout(c *gin.Context) {
	if tok, err := c.Cookie(CookieName); err == nil {
		if claims, err := ParseToken(tok); err == nil {
			h.Log.WithField("email", claims.Email).Info("user logout")
		}
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

func (h *Handler) Me(c *gin.Context) {
	var u users.User
	if err := h.DB.First(&u, CurrentUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, users.ToResponse(&u))
}
