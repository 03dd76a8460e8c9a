package users

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCompany   Role = "company"
	RoleJobSeeker Role = "jobseeker"
)

// ParseRole validates a role string at the boundary. Handlers work with the
// typed value from here on and never re-check the raw string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleCompany, RoleJobSeeker:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:100;unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
