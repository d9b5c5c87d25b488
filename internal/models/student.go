package models

import "time"

// Perfil display-only do estudante, vinculado ao usuário autenticado
type Student struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	CenterID uint `json:"center_id"`
	UserID   uint `gorm:"uniqueIndex" json:"user_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`
	Year  string `gorm:"size:20" json:"year"`
	Major string `gorm:"size:100" json:"major"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
