package users

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func New(r *gin.Engine, db *gorm.DB) *Handler {
	h := &Handler{DB: db}
	r.POST("/register", h.Register)
	return h
}

type RegisterDTO struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	Role     string `json:"role" form:"role" binding:"required"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func (h *Handler) Register(c *gin.Context) {
	var body RegisterDTO
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, ok := ParseRole(body.Role)
	if !ok || role == RoleAdmin {
		// admin accounts are seeded, never self-registered
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be company or jobseeker"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var existing User
	if err := h.DB.First(&existing, "email = ?", email).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "we're experiencing technical difficulties, please try again later"})
		return
	}

	hashed, err := HashPassword(body.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := User{
		Name:         body.Name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		// unique index race: two registrations with the same email
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	c.JSON(http.StatusCreated, ToResponse(&user))
}
