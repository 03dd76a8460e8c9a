package seekers

import (
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/vinaykumarh26/careerport-core/internal/aptitude"
	"github.com/vinaykumarh26/careerport-core/internal/auth"
	"github.com/vinaykumarh26/careerport-core/internal/users"
)

type Handler struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func New(r *gin.Engine, db *gorm.DB, log *logrus.Logger) *Handler {
	h := &Handler{DB: db, Log: log}
	grp := r.Group("/seeker", auth.RequireAuth(), auth.RequireRole(users.RoleJobSeeker))
	grp.GET("/quiz", h.Quiz)
	grp.POST("/profile", h.CreateProfile)
	grp.GET("/dashboard", h.Dashboard)
	return h
}

var phoneRe = regexp.MustCompile(`^[0-9]{10,15}$`)

type profileDTO struct {
	CollegeName    string   `json:"college_name" form:"college_name" binding:"required"`
	Degree         string   `json:"degree" form:"degree" binding:"required"`
	GraduationYear int      `json:"graduation_year" form:"graduation_year" binding:"required"`
	Skills         []string `json:"skills" form:"skills"`
	Location       string   `json:"location" form:"location" binding:"required"`
	Phone          string   `json:"phone" form:"phone" binding:"required"`
	ResumeLink     string   `json:"resume_link" form:"resume_link" binding:"required"`
	Q1             string   `json:"q1" form:"q1"`
	Q2             string   `json:"q2" form:"q2"`
	Q3             string   `json:"q3" form:"q3"`
	Q4             string   `json:"q4" form:"q4"`
	Q5             string   `json:"q5" form:"q5"`
}

func (d *profileDTO) answers() map[string]string {
	return map[string]string{"q1": d.Q1, "q2": d.Q2, "q3": d.Q3, "q4": d.Q4, "q5": d.Q5}
}

// Quiz serves the aptitude question bank for the profile completion form.
func (h *Handler) Quiz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": aptitude.Questions()})
}

// CreateProfile completes the seeker's profile exactly once. The aptitude
// score is graded server-side here and is immutable afterwards.
func (h *Handler) CreateProfile(c *gin.Context) {
	userID := auth.CurrentUserID(c)

	var existing Profile
	if err := h.DB.First(&existing, "user_id = ?", userID).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "profile already completed", "redirect": "/seeker/dashboard"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "we're experiencing technical difficulties, please try again later"})
		return
	}

	var dto profileDTO
	if err := c.ShouldBind(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !phoneRe.MatchString(dto.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide a valid phone number (10-15 digits)"})
		return
	}
	if err := validateResumeLink(dto.ResumeLink); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := Profile{
		UserID:         userID,
		CollegeName:    dto.CollegeName,
		Degree:         dto.Degree,
		GraduationYear: dto.GraduationYear,
		Skills:         JoinSkills(dto.Skills),
		Location:       dto.Location,
		Phone:          dto.Phone,
		AptitudeScore:  aptitude.Score(dto.answers()),
		ResumeLink:     dto.ResumeLink,
	}

	if err := h.DB.Create(&profile).Error; err != nil {
		h.Log.WithError(err).WithField("user_id", userID).Error("profile creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving profile, please try again later"})
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// Dashboard returns the seeker's profile together with the recommendation
// list. A broken recommendation query degrades to an empty list and a
// message, never an error page.
func (h *Handler) Dashboard(c *gin.Context) {
	var profile Profile
	err := h.DB.First(&profile, "user_id = ?", auth.CurrentUserID(c)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": "please complete your profile first", "redirect": "/seeker/profile"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "we're experiencing technical difficulties, please try again later"})
		return
	}

	recs, err := Recommend(h.DB, profile.AptitudeScore, profile.SkillList())
	if err != nil {
		h.Log.WithError(err).WithField("user_id", profile.UserID).Error("recommendation query failed")
		c.JSON(http.StatusOK, gin.H{
			"profile":         profile,
			"recommendations": []Recommendation{},
			"message":         "we're currently unable to load job recommendations, please try again later",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":         profile,
		"recommendations": recs,
	})
}

func validateResumeLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("please provide a valid URL for your resume")
	}
	if !strings.Contains(u.Host, "drive.google.com") {
		return errors.New("please provide a Google Drive link for your resume")
	}
	return nil
}
