package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vinaykumarh26/careerport-core/internal/audit"
	"github.com/vinaykumarh26/careerport-core/internal/auth"
	"github.com/vinaykumarh26/careerport-core/internal/companies"
	"github.com/vinaykumarh26/careerport-core/internal/jobs"
	"github.com/vinaykumarh26/careerport-core/internal/users"
)

const pageSize = 10

type Handler struct {
	DB    *gorm.DB
	Audit *audit.Logger
}

func New(r *gin.Engine, db *gorm.DB, auditLog *audit.Logger) *Handler {
	h := &Handler{DB: db, Audit: auditLog}

	grp := r.Group("/admin", auth.RequireAuth(), auth.RequireRole(users.RoleAdmin))
	grp.GET("/stats", h.Stats)
	grp.GET("/users", h.ListUsers)
	grp.GET("/companies", h.ListCompanies)

	mut := grp.Group("", auth.RequireCSRF())
	mut.DELETE("/users/:id", h.DeleteUser)
	mut.POST("/users/:id/role", h.ChangeRole)
	mut.DELETE("/companies/:id", h.DeleteCompany)
	mut.POST("/companies/:id/approve", h.ApproveCompany)
	return h
}

func (h *Handler) Stats(c *gin.Context) {
	var totalUsers, totalCompanies, totalJobs, newUsers, pendingCompanies int64

	counts := []error{
		h.DB.Model(&users.User{}).Count(&totalUsers).Error,
		h.DB.Model(&companies.Company{}).Count(&totalCompanies).Error,
		h.DB.Model(&jobs.Posting{}).Count(&totalJobs).Error,
		h.DB.Model(&users.User{}).Where("created_at >= ?", time.Now().AddDate(0, 0, -7)).Count(&newUsers).Error,
		h.DB.Model(&companies.Company{}).Where("approved = ?", false).Count(&pendingCompanies).Error,
	}
	for _, err := range counts {
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "we're experiencing technical difficulties, please try again later"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":       totalUsers,
		"total_companies":   totalCompanies,
		"total_jobs":        totalJobs,
		"new_users":         newUsers,
		"pending_companies": pendingCompanies,
	})
}

func (h *Handler) ListUsers(c *gin.Context) {
	page := pageParam(c)

	var total int64
	h.DB.Model(&users.User{}).Count(&total)

	var list []users.User
	if err := h.DB.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "we're experiencing technical difficulties, please try again later"})
		return
	}

	out := make([]users.UserResponse, 0, len(list))
	for i := range list {
		out = append(out, users.ToResponse(&list[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      out,
		"page":       page,
		"totalPages": totalPages(total),
	})
}

type companyRow struct {
	companies.Company
	OwnerName string `json:"owner_name"`
	Email     string `json:"email"`
}

// ListCompanies surfaces pending companies first so moderation work is at the
// top of page one.
func (h *Handler) ListCompanies(c *gin.Context) {
	page := pageParam(c)

	var total int64
	h.DB.Model(&companies.Company{}).Count(&total)

	var list []companyRow
	err := h.DB.Model(&companies.Company{}).
		Select("companies.*, users.name AS owner_name, users.email").
		Joins("JOIN users ON users.id = companies.user_id").
		Order("companies.approved ASC, companies.created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "we're experiencing technical difficulties, please try again later"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companies":  list,
		"page":       page,
		"totalPages": totalPages(total),
	})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	actorID := auth.CurrentUserID(c)
	targetID, ok := idParam(c)
	if !ok {
		return
	}

	if targetID == actorID {
		h.Audit.Action("delete_user", actorID, targetID, audit.OutcomeDenied)
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot delete your own account"})
		return
	}

	res := h.DB.Delete(&users.User{}, targetID)
	if res.Error != nil {
		h.Audit.Action("delete_user", actorID, targetID, audit.OutcomeFailed)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred while processing your request"})
		return
	}
	if res.RowsAffected == 0 {
		h.Audit.Action("delete_user", actorID, targetID, audit.OutcomeNoop)
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	h.Audit.Action("delete_user", actorID, targetID, audit.OutcomeApplied)
	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}

// DeleteCompany removes the company together with its postings and their
// skill rows, as one transaction.
func (h *Handler) DeleteCompany(c *gin.Context) {
	actorID := auth.CurrentUserID(c)
	targetID, ok := idParam(c)
	if !ok {
		return
	}

	var company companies.Company
	if err := h.DB.First(&company, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.Audit.Action("delete_company", actorID, targetID, audit.OutcomeNoop)
			c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
			return
		}
		h.Audit.Action("delete_company", actorID, targetID, audit.OutcomeFailed)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred while processing your request"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		postingIDs := tx.Model(&jobs.Posting{}).Select("id").Where("company_id = ?", company.ID)
		if err := tx.Where("posting_id IN (?)", postingIDs).Delete(&jobs.Skill{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", company.ID).Delete(&jobs.Posting{}).Error; err != nil {
			return err
		}
		return tx.Delete(&companies.Company{}, company.ID).Error
	})
	if err != nil {
		h.Audit.Action("delete_company", actorID, targetID, audit.OutcomeFailed)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred while processing your request"})
		return
	}

	h.Audit.Action("delete_company", actorID, targetID, audit.OutcomeApplied)
	c.JSON(http.StatusOK, gin.H{"message": "company deleted successfully"})
}

// ApproveCompany is idempotent: approving an already-approved company changes
// nothing and logs no state change.
func (h *Handler) ApproveCompany(c *gin.Context) {
	actorID := auth.CurrentUserID(c)
	targetID, ok := idParam(c)
	if !ok {
		return
	}

	var company companies.Company
	if err := h.DB.First(&company, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
			return
		}
		h.Audit.Action("approve_company", actorID, targetID, audit.OutcomeFailed)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred while processing your request"})
		return
	}

	res := h.DB.Model(&companies.Company{}).
		Where("id = ? AND approved = ?", company.ID, false).
		Update("approved", true)
	if res.Error != nil {
		h.Audit.Action("approve_company", actorID, targetID, audit.OutcomeFailed)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred while processing your request"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "company already approved"})
		return
	}

	h.Audit.Action("approve_company", actorID, targetID, audit.OutcomeApplied)
	c.JSON(http.StatusOK, gin.H{"message": "company approved successfully"})
}

func (h *Handler) ChangeRole(c *gin.Context) {
	actorID := auth.CurrentUserID(c)
	targetID, ok := idParam(c)
	if !ok {
		return
	}

	newRole, valid := users.ParseRole(c.PostForm("new_role"))
	if !valid {
		// an unknown role is dropped rather than erroring, matching the form UI
		h.Audit.Action("change_role", actorID, targetID, audit.OutcomeDenied)
		c.JSON(http.StatusOK, gin.H{"message": "no changes applied"})
		return
	}

	if targetID == actorID {
		h.Audit.Action("change_role", actorID, targetID, audit.OutcomeDenied)
		c.JSON(http.StatusForbidden, gin.H{"error": "you cannot change your own role"})
		return
	}

	res := h.DB.Model(&users.User{}).Where("id = ?", targetID).Update("role", newRole)
	if res.Error != nil {
		h.Audit.Action("change_role", actorID, targetID, audit.OutcomeFailed)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred while processing your request"})
		return
	}
	if res.RowsAffected == 0 {
		h.Audit.Action("change_role", actorID, targetID, audit.OutcomeNoop)
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	h.Audit.Action("change_role", actorID, targetID, audit.OutcomeApplied)
	c.JSON(http.StatusOK, gin.H{"message": "user role updated successfully"})
}

func pageParam(c *gin.Context) int {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return page
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func totalPages(total int64) int64 {
	return (total + pageSize - 1) / pageSize
}
