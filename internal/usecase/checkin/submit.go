package checkin

import (
	"context"
	"time"

	"github.com/calmharbor/counsel-api/internal/audit"
	"github.com/calmharbor/counsel-api/internal/domain/mood"
	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
	"github.com/calmharbor/counsel-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type SubmitInput struct {
	CenterID uint
	UserID   uint

	Mood         int
	SleepQuality int
	Energy       int
	Stress       int
	Anxiety      int

	Weather string
	Tags    []string

	Photo            []byte
	PhotoContentType string
}

// ======================================================
// USE CASE
// ======================================================

type SubmitCheckin struct {
	repo     mood.Repository
	centers  CenterGetter
	cache    DayCache
	uploader PhotoUploader
	audit    *audit.Dispatcher
}

func NewSubmitCheckin(
	repo mood.Repository,
	centers CenterGetter,
	cache DayCache,
	uploader PhotoUploader,
	audit *audit.Dispatcher,
) *SubmitCheckin {
	return &SubmitCheckin{
		repo:     repo,
		centers:  centers,
		cache:    cache,
		uploader: uploader,
		audit:    audit,
	}
}

func (uc *SubmitCheckin) Execute(
	ctx context.Context,
	in SubmitInput,
) (*models.MoodEntry, error) {

	center, err := uc.centers.GetCenterByID(ctx, in.CenterID)
	if err != nil {
		return nil, err
	}

	if in.Mood < 1 || in.Mood > 5 {
		return nil, httperr.ErrBusiness("invalid_mood")
	}
	if in.SleepQuality < 0 || in.SleepQuality > 5 {
		return nil, httperr.ErrBusiness("invalid_metric")
	}
	if in.Energy < 0 || in.Energy > 10 ||
		in.Stress < 0 || in.Stress > 10 ||
		in.Anxiety < 0 || in.Anxiety > 10 {
		return nil, httperr.ErrBusiness("invalid_metric")
	}

	now := timezone.NowIn(center.Timezone)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// um check-in por dia de calendário
	if hit, found := uc.cache.HasCheckedIn(ctx, in.UserID, now); found && hit {
		return nil, httperr.ErrBusiness("already_checked_in")
	}
	if _, err := uc.repo.GetEntryForDay(ctx, in.UserID, now); err == nil {
		return nil, httperr.ErrBusiness("already_checked_in")
	}

	entry := &models.MoodEntry{
		CenterID:  in.CenterID,
		UserID:    in.UserID,
		EntryDate: day,
		HasEntry:  true,

		Mood:         in.Mood,
		SleepQuality: in.SleepQuality,
		Energy:       in.Energy,
		Stress:       in.Stress,
		Anxiety:      in.Anxiety,

		Weather: in.Weather,
		Tags:    in.Tags,
	}

	if len(in.Photo) > 0 && uc.uploader != nil {
		photoKey, thumbKey, upErr := uc.uploader.UploadCheckinPhoto(
			ctx, in.UserID, day, in.Photo, in.PhotoContentType,
		)
		if upErr != nil {
			return nil, httperr.ErrBusiness("attachment_upload_failed")
		}
		entry.PhotoKey = photoKey
		entry.ThumbKey = thumbKey
	}

	if err := uc.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.cache.MarkCheckedIn(ctx, in.UserID, now)

	uc.audit.Dispatch(audit.Event{
		CenterID: in.CenterID,
		UserID:   &in.UserID,
		Action:   "checkin_submitted",
		Entity:   "mood_entry",
		EntityID: &entry.ID,
	})

	return entry, nil
}
