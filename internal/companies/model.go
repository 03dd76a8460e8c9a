package companies

import "time"

type Company struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"unique;not null" json:"user_id"`
	CompanyName string    `gorm:"size:255;not null" json:"company_name"`
	Industry    string    `gorm:"size:100" json:"industry"`
	Description string    `gorm:"type:text" json:"description"`
	Website     string    `gorm:"size:255" json:"website"`
	Approved    bool      `gorm:"default:false" json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}
