package dto

import "time"

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	SessionType string    `json:"session_type"`
	Medium      string    `json:"medium"`
	Priority    string    `json:"priority"`
	Reason      string    `json:"reason"`
	StudentName string    `json:"student_name"`
	CanStart    bool      `json:"can_start"`
}
