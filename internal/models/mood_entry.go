package models

import "time"

// Um registro por usuário por dia (dia local do centro)
type MoodEntry struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	CenterID uint `json:"center_id"`

	UserID    uint      `gorm:"not null;uniqueIndex:uidx_mood_user_day" json:"user_id"`
	EntryDate time.Time `gorm:"type:date;not null;uniqueIndex:uidx_mood_user_day" json:"entry_date"`

	HasEntry bool `gorm:"not null;default:false" json:"has_entry"`

	Mood         int `json:"mood"`          // 1–5
	SleepQuality int `json:"sleep_quality"` // 1–5
	Energy       int `json:"energy"`        // 1–10
	Stress       int `json:"stress"`        // 1–10
	Anxiety      int `json:"anxiety"`       // 1–10

	Weather string   `gorm:"size:30" json:"weather"`
	Tags    []string `gorm:"serializer:json" json:"tags"`

	PhotoKey string `gorm:"size:255" json:"photo_key"`
	ThumbKey string `gorm:"size:255" json:"thumb_key"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
