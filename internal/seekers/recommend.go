package seekers

import (
	"time"

	"gorm.io/gorm"

	"github.com/vinaykumarh26/careerport-core/internal/jobs"
)

const (
	recommendationLimit = 10
	minSkillOverlap     = 2
)

// Recommendation is one row of the dashboard's ranked job list.
type Recommendation struct {
	ID               uint       `json:"id"`
	CompanyID        uint       `json:"company_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Location         string     `json:"location"`
	SalaryRange      string     `json:"salary_range"`
	JobType          string     `json:"job_type"`
	ExpiresAt        *time.Time `json:"expires_at"`
	MinAptitudeScore int        `json:"min_aptitude_score"`
	MatchedSkills    int        `json:"matched_skills"`
}

// Recommend selects up to 10 open postings the seeker qualifies for, ranked
// by skill overlap and then by how demanding the posting is.
//
// A posting qualifies when its minimum aptitude score is at or below the
// seeker's score. When the seeker has skills, postings additionally need at
// least two overlapping skills (exact string match, bound as a parameterized
// IN set). A seeker with no recorded skills gets the aptitude-only list with
// a zero match count instead of an empty page.
func Recommend(db *gorm.DB, aptitudeScore int, skills []string) ([]Recommendation, error) {
	now := time.Now()

	query := db.Model(&jobs.Posting{}).
		Where("min_aptitude_score <= ?", aptitudeScore).
		Where("(expires_at IS NULL OR expires_at >= ?)", now)

	if len(skills) > 0 {
		overlap := func() *gorm.DB {
			return db.Model(&jobs.Skill{}).
				Select("COUNT(*)").
				Where("job_skills.posting_id = job_postings.id").
				Where("job_skills.skill IN ?", skills)
		}
		query = query.
			Select("job_postings.*, (?) AS matched_skills", overlap()).
			Where("(?) >= ?", overlap(), minSkillOverlap)
	} else {
		query = query.Select("job_postings.*, 0 AS matched_skills")
	}

	var recs []Recommendation
	err := query.
		Order("matched_skills DESC, min_aptitude_score DESC").
		Limit(recommendationLimit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
