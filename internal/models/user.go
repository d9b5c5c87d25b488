package models

import "time"

const (
	RoleStudent   = "student"
	RoleCounselor = "counselor"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	CenterID uint   `json:"center_id"`
	Center   Center `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"center"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'student'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
