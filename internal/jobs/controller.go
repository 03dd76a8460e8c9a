package jobs

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func New(r *gin.Engine, db *gorm.DB) *Handler {
	h := &Handler{DB: db}
	r.GET("/jobs", h.ListOpen)
	r.GET("/jobs/:id", h.Get)
	return h
}

// ListOpen returns a paginated list of unexpired postings from approved
// companies, newest first. Supports search by title and filters on job type
// and location.
func (h *Handler) ListOpen(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := c.Query("search")
	jobType := c.Query("job_type")
	location := c.Query("location")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := h.DB.Model(&Posting{}).
		Joins("JOIN companies ON companies.id = job_postings.company_id").
		Where("companies.approved = ?", true).
		Where("(job_postings.expires_at IS NULL OR job_postings.expires_at >= ?)", time.Now())

	if search != "" {
		query = query.Where("LOWER(job_postings.title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if jobType != "" && ValidType(jobType) {
		query = query.Where("job_postings.job_type = ?", jobType)
	}
	if location != "" {
		query = query.Where("LOWER(job_postings.location) = LOWER(?)", location)
	}

	var total int64
	query.Count(&total)

	var postings []Posting
	if err := query.Preload("Skills").Offset(offset).Limit(limit).
		Order("job_postings.created_at DESC").Find(&postings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "we're experiencing technical difficulties, please try again later"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": postings,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var posting Posting
	if err := h.DB.Preload("Skills").First(&posting, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "we're experiencing technical difficulties, please try again later"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job":  posting,
		"open": posting.Open(time.Now()),
	})
}
