package mood

import (
	"context"
	"time"

	"github.com/calmharbor/counsel-api/internal/models"
)

type Repository interface {
	GetEntryForDay(
		ctx context.Context,
		userID uint,
		day time.Time,
	) (*models.MoodEntry, error)

	CreateEntry(
		ctx context.Context,
		entry *models.MoodEntry,
	) error

	ListEntriesSince(
		ctx context.Context,
		userID uint,
		since time.Time,
	) ([]models.MoodEntry, error)

	ListEntries(
		ctx context.Context,
		userID uint,
	) ([]models.MoodEntry, error)
}
