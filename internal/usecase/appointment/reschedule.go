package appointment

import (
	"context"
	"time"

	"github.com/calmharbor/counsel-api/internal/audit"
	domain "github.com/calmharbor/counsel-api/internal/domain/appointment"
	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
	"github.com/calmharbor/counsel-api/internal/timezone"
)

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	centerID uint,
	counselorID uint,
	appointmentID uint,
	dateStr string,
	timeStr string,
) (*models.Appointment, error) {

	center, err := uc.repo.GetCenterByID(ctx, centerID)
	if err != nil {
		return nil, err
	}

	// data e hora novas são ambas obrigatórias
	if dateStr == "" || timeStr == "" {
		return nil, httperr.ErrBusiness("missing_date_or_time")
	}

	newStart, err := time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(center.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	ap, err := uc.repo.GetAppointmentForCounselor(ctx, appointmentID, counselorID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	newEnd := newStart.Add(time.Duration(ap.DurationMinutes) * time.Minute)
	if err := uc.repo.AssertNoOverlap(ctx, counselorID, newStart, newEnd, ap.ID); err != nil {
		return nil, err
	}

	now := timezone.NowIn(center.Timezone)
	updated, err := domain.Reschedule(*ap, newStart, now)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, &updated); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CenterID: centerID,
		UserID:   &counselorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"new_start": newStart,
		},
	})

	return &updated, nil
}
