package seekers

import (
	"strings"
	"time"
)

type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"unique;not null" json:"user_id"`
	CollegeName    string    `gorm:"size:255" json:"college_name"`
	Degree         string    `gorm:"size:50" json:"degree"`
	GraduationYear int       `json:"graduation_year"`
	Skills         string    `gorm:"size:500" json:"skills"`
	Location       string    `gorm:"size:255" json:"location"`
	Phone          string    `gorm:"size:20" json:"phone"`
	AptitudeScore  int       `json:"aptitude_score"`
	ResumeLink     string    `gorm:"size:500" json:"resume_link"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Profile) TableName() string { return "job_seeker_profiles" }

// SkillList splits the stored comma-separated skills back into the ordered
// list the seeker entered. Matching against postings is exact and
// case-sensitive.
func (p *Profile) SkillList() []string {
	if p.Skills == "" {
		return nil
	}
	parts := strings.Split(p.Skills, ",")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// JoinSkills is the inverse of SkillList, used when persisting the profile.
func JoinSkills(skills []string) string {
	clean := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	return strings.Join(clean, ", ")
}
