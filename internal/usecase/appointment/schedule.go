package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/calmharbor/counsel-api/internal/audit"
	domain "github.com/calmharbor/counsel-api/internal/domain/appointment"
	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
	"github.com/calmharbor/counsel-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ScheduleAppointmentInput struct {
	CenterID      uint
	StudentUserID uint
	CounselorID   uint

	Date string
	Time string

	DurationMinutes int
	SessionType     string
	Medium          string
	Priority        string
	Reason          string
	Location        string

	IsRecurring      bool
	RecurringPattern string
}

// ======================================================
// USE CASE
// ======================================================

type ScheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewScheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ScheduleAppointment {
	return &ScheduleAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ScheduleAppointment) Execute(
	ctx context.Context,
	in ScheduleAppointmentInput,
) (*models.Appointment, error) {

	center, err := uc.repo.GetCenterByID(ctx, in.CenterID)
	if err != nil {
		return nil, err
	}

	if in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("missing_date_or_time")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(center.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(center.Timezone)
	if start.Before(now) {
		return nil, httperr.ErrBusiness("in_the_past")
	}

	if !domain.ValidSessionType(in.SessionType) {
		return nil, httperr.ErrBusiness("invalid_session_type")
	}
	if !domain.ValidMedium(in.Medium) {
		return nil, httperr.ErrBusiness("invalid_medium")
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(in.Priority) {
		return nil, httperr.ErrBusiness("invalid_priority")
	}

	duration := in.DurationMinutes
	if duration <= 0 {
		duration = 50
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	counselor, err := uc.repo.GetCounselor(ctx, in.CenterID, in.CounselorID)
	if err != nil {
		return nil, httperr.ErrBusiness("counselor_not_found")
	}

	student, err := uc.repo.GetStudentByUserID(ctx, in.StudentUserID)
	if err != nil {
		return nil, httperr.ErrBusiness("student_profile_not_found")
	}

	if err := uc.repo.AssertNoOverlap(ctx, counselor.ID, start, end, 0); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		CenterID:    in.CenterID,
		CounselorID: counselor.ID,
		StudentID:   student.ID,

		StartTime:       start,
		EndTime:         end,
		DurationMinutes: duration,

		SessionType: in.SessionType,
		Medium:      in.Medium,
		Priority:    in.Priority,

		Status:   string(domain.InitialStatus()),
		Reason:   in.Reason,
		Location: in.Location,

		IsRecurring:      in.IsRecurring,
		RecurringPattern: in.RecurringPattern,
	}

	// sessões por vídeo já nascem com sala própria
	if in.Medium == domain.MediumVideo {
		ap.MeetingLink = "https://meet.calmharbor.app/" + uuid.NewString()
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CenterID: in.CenterID,
		UserID:   &in.StudentUserID,
		Action:   "appointment_requested",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
