package dto

import (
	"github.com/calmharbor/counsel-api/internal/domain/mood"
	"github.com/calmharbor/counsel-api/internal/models"
)

type MoodHistoryDTO struct {
	Window  string             `json:"window"`
	Entries []models.MoodEntry `json:"entries"`
	Stats   mood.Stats         `json:"stats"`
}

type CheckinAnalyticsDTO struct {
	Days  int        `json:"days"`
	Stats mood.Stats `json:"stats"`
}
