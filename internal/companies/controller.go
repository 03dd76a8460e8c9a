package companies

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/vinaykumarh26/careerport-core/internal/auth"
	"github.com/vinaykumarh26/careerport-core/internal/jobs"
	"github.com/vinaykumarh26/careerport-core/internal/users"
)

type Handler struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func New(r *gin.Engine, db *gorm.DB, log *logrus.Logger) *Handler {
	h := &Handler{DB: db, Log: log}
	grp := r.Group("/company", auth.RequireAuth(), auth.RequireRole(users.RoleCompany))
	grp.GET("/profile", h.GetProfile)
	grp.POST("/profile", h.SaveProfile)
	grp.GET("/jobs", h.ListJobs)
	grp.POST("/jobs", h.CreateJob)
	grp.POST("/jobs/:id", h.UpdateJob)
	grp.DELETE("/jobs/:id", h.DeleteJob)
	return h
}

type profileDTO struct {
	CompanyName string `json:"company_name" form:"company_name" binding:"required"`
	Industry    string `json:"industry" form:"industry"`
	Description string `json:"description" form:"description"`
	Website     string `json:"website" form:"website"`
}

type jobDTO struct {
	Title            string `json:"title" form:"title" binding:"required"`
	Description      string `json:"description" form:"description"`
	Requirements     string `json:"requirements" form:"requirements"`
	Location         string `json:"location" form:"location"`
	SalaryRange      string `json:"salary_range" form:"salary_range"`
	JobType          string `json:"job_type" form:"job_type"`
	ExpiresAt        string `json:"expires_at" form:"expires_at"`
	MinAptitudeScore int    `json:"min_aptitude_score" form:"min_aptitude_score" binding:"min=0,max=100"`
	Skills           string `json:"skills" form:"skills"`
}

func (h *Handler) GetProfile(c *gin.Context) {
	var company Company
	err := h.DB.First(&company, "user_id = ?", auth.CurrentUserID(c)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "company profile not set up yet"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "we're experiencing technical difficulties, please try again later"})
		return
	}
	c.JSON(http.StatusOK, company)
}

// SaveProfile upserts the caller's company record: the first save inserts,
// later saves update the same row. The approval flag is admin-only and never
// touched here.
func (h *Handler) SaveProfile(c *gin.Context) {
	var dto profileDTO
	if err := c.ShouldBind(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := auth.CurrentUserID(c)

	var company Company
	err := h.DB.First(&company, "user_id = ?", userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		company = Company{
			UserID:      userID,
			CompanyName: dto.CompanyName,
			Industry:    dto.Industry,
			Description: dto.Description,
			Website:     dto.Website,
		}
		if err := h.DB.Create(&company).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save company profile"})
			return
		}
		c.JSON(http.StatusCreated, company)
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "we're experiencing technical difficulties, please try again later"})
	default:
		company.CompanyName = dto.CompanyName
		company.Industry = dto.Industry
		company.Description = dto.Description
		company.Website = dto.Website
		if err := h.DB.Save(&company).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save company profile"})
			return
		}
		c.JSON(http.StatusOK, company)
	}
}

func (h *Handler) ListJobs(c *gin.Context) {
	company, ok := h.ownCompany(c)
	if !ok {
		return
	}

	var postings []jobs.Posting
	if err := h.DB.Preload("Skills").Where("company_id = ?", company.ID).
		Order("created_at DESC").Find(&postings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "we're experiencing technical difficulties, please try again later"})
		return
	}
	c.JSON(http.StatusOK, postings)
}

func (h *Handler) CreateJob(c *gin.Context) {
	company, ok := h.ownCompany(c)
	if !ok {
		return
	}

	var dto jobDTO
	if err := c.ShouldBind(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posting, err := buildPosting(&dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	posting.CompanyID = company.ID

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(posting).Error; err != nil {
			return err
		}
		return insertSkills(tx, posting.ID, dto.Skills)
	})
	if err != nil {
		h.Log.WithError(err).Error("job creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to post job"})
		return
	}

	h.DB.Preload("Skills").First(posting, posting.ID)
	c.JSON(http.StatusCreated, posting)
}

// UpdateJob rewrites the posting and replaces its skill set wholesale in a
// single transaction. Skills are never merged.
func (h *Handler) UpdateJob(c *gin.Context) {
	company, ok := h.ownCompany(c)
	if !ok {
		return
	}

	posting, ok := h.ownPosting(c, company)
	if !ok {
		return
	}

	var dto jobDTO
	if err := c.ShouldBind(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := buildPosting(&dto)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated.ID = posting.ID
	updated.CompanyID = company.ID
	updated.CreatedAt = posting.CreatedAt

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(updated).Error; err != nil {
			return err
		}
		if err := tx.Where("posting_id = ?", posting.ID).Delete(&jobs.Skill{}).Error; err != nil {
			return err
		}
		return insertSkills(tx, posting.ID, dto.Skills)
	})
	if err != nil {
		h.Log.WithError(err).Error("job update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update job"})
		return
	}

	h.DB.Preload("Skills").First(updated, posting.ID)
	c.JSON(http.StatusOK, updated)
}

// DeleteJob removes the skill rows and the posting as one unit so no orphaned
// skills survive.
func (h *Handler) DeleteJob(c *gin.Context) {
	company, ok := h.ownCompany(c)
	if !ok {
		return
	}

	posting, ok := h.ownPosting(c, company)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("posting_id = ?", posting.ID).Delete(&jobs.Skill{}).Error; err != nil {
			return err
		}
		return tx.Delete(&jobs.Posting{}, posting.ID).Error
	})
	if err != nil {
		h.Log.WithError(err).Error("job deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete job"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ownCompany loads the caller's company profile. Posting anything without a
// profile gets guidance, not a bare storage error.
func (h *Handler) ownCompany(c *gin.Context) (*Company, bool) {
	var company Company
	err := h.DB.First(&company, "user_id = ?", auth.CurrentUserID(c)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "please complete your company profile before managing jobs"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "we're experiencing technical difficulties, please try again later"})
		return nil, false
	}
	return &company, true
}

func (h *Handler) ownPosting(c *gin.Context, company *Company) (*jobs.Posting, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}

	var posting jobs.Posting
	if err := h.DB.First(&posting, "id = ? AND company_id = ?", uint(id), company.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return nil, false
	}
	return &posting, true
}

func buildPosting(dto *jobDTO) (*jobs.Posting, error) {
	jobType := dto.JobType
	if jobType == "" {
		jobType = jobs.TypeFullTime
	}
	if !jobs.ValidType(jobType) {
		return nil, errors.New("job type must be Full-time, Part-time, Contract or Internship")
	}

	posting := &jobs.Posting{
		Title:            dto.Title,
		Description:      dto.Description,
		Requirements:     dto.Requirements,
		Location:         dto.Location,
		SalaryRange:      dto.SalaryRange,
		JobType:          jobType,
		MinAptitudeScore: dto.MinAptitudeScore,
	}

	if dto.ExpiresAt != "" {
		expires, err := time.Parse("2006-01-02", dto.ExpiresAt)
		if err != nil {
			return nil, errors.New("invalid expiry date")
		}
		posting.ExpiresAt = &expires
	}
	return posting, nil
}

func insertSkills(tx *gorm.DB, postingID uint, raw string) error {
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if err := tx.Create(&jobs.Skill{PostingID: postingID, Skill: s}).Error; err != nil {
			return err
		}
	}
	return nil
}
