package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/calmharbor/counsel-api/internal/domain/mood"
	"github.com/calmharbor/counsel-api/internal/models"
)

type MoodGormRepository struct {
	db *gorm.DB
}

func NewMoodGormRepository(db *gorm.DB) *MoodGormRepository {
	return &MoodGormRepository{db: db}
}

func (r *MoodGormRepository) GetEntryForDay(
	ctx context.Context,
	userID uint,
	day time.Time,
) (*models.MoodEntry, error) {

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var entry models.MoodEntry
	if err := r.db.WithContext(ctx).
		Where(
			"user_id = ? AND entry_date >= ? AND entry_date < ?",
			userID, dayStart, dayEnd,
		).
		First(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *MoodGormRepository) CreateEntry(
	ctx context.Context,
	entry *models.MoodEntry,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *MoodGormRepository) ListEntriesSince(
	ctx context.Context,
	userID uint,
	since time.Time,
) ([]models.MoodEntry, error) {

	var entries []models.MoodEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ?", userID, since).
		Order("entry_date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *MoodGormRepository) ListEntries(
	ctx context.Context,
	userID uint,
) ([]models.MoodEntry, error) {

	var entries []models.MoodEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

// Compile-time check
var _ domain.Repository = (*MoodGormRepository)(nil)
