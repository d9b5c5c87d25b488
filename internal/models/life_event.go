package models

import "time"

const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
	ImpactMixed    = "mixed"
	ImpactNeutral  = "neutral"
)

// Evento marcante sobreposto à linha do tempo de humor, sem vínculo com MoodEntry
type LifeEvent struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	EventDate time.Time `gorm:"type:date;not null" json:"event_date"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Category  string    `gorm:"size:50" json:"category"`
	Impact    string    `gorm:"size:20;default:'neutral'" json:"impact"`

	CreatedAt time.Time `json:"created_at"`
}
