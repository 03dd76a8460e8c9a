package jobs

import "time"

const (
	TypeFullTime   = "Full-time"
	TypePartTime   = "Part-time"
	TypeContract   = "Contract"
	TypeInternship = "Internship"
)

func ValidType(t string) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship:
		return true
	}
	return false
}

type Posting struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	CompanyID        uint       `gorm:"not null;index" json:"company_id"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	Requirements     string     `gorm:"type:text" json:"requirements"`
	Location         string     `gorm:"size:255" json:"location"`
	SalaryRange      string     `gorm:"size:100" json:"salary_range"`
	JobType          string     `gorm:"size:20;default:Full-time" json:"job_type"`
	ExpiresAt        *time.Time `json:"expires_at"`
	MinAptitudeScore int        `gorm:"default:0" json:"min_aptitude_score"`
	CreatedAt        time.Time  `json:"posted_at"`
	Skills           []Skill    `gorm:"constraint:OnDelete:CASCADE" json:"skills,omitempty"`
}

func (Posting) TableName() string { return "job_postings" }

type Skill struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	PostingID uint   `gorm:"not null;index" json:"-"`
	Skill     string `gorm:"size:100;not null" json:"skill"`
}

func (Skill) TableName() string { return "job_skills" }

// Open reports whether the posting is still accepting applicants. A posting
// with no expiry never closes.
func (p *Posting) Open(now time.Time) bool {
	return p.ExpiresAt == nil || !p.ExpiresAt.Before(now)
}
