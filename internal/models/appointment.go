package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CenterID uint   `json:"center_id"`
	Center   Center `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"center"`

	CounselorID uint `json:"counselor_id"`
	Counselor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"counselor"`

	StudentID uint    `json:"student_id"`
	Student   Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"student"`

	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `gorm:"default:50" json:"duration_minutes"`

	SessionType string `gorm:"size:20;default:'individual'" json:"session_type"`
	Medium      string `gorm:"size:20;default:'in_person'" json:"medium"`
	Priority    string `gorm:"size:20;default:'medium'" json:"priority"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Reason      string `gorm:"size:255" json:"reason"`
	Notes       string `gorm:"type:text" json:"notes"`
	Location    string `gorm:"size:100" json:"location"`
	MeetingLink string `gorm:"size:255" json:"meeting_link"`

	IsRecurring      bool   `json:"is_recurring"`
	RecurringPattern string `gorm:"size:20" json:"recurring_pattern"`

	ReminderSent bool       `json:"reminder_sent"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
