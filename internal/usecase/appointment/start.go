package appointment

import (
	"context"

	"github.com/calmharbor/counsel-api/internal/audit"
	domain "github.com/calmharbor/counsel-api/internal/domain/appointment"
	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
	"github.com/calmharbor/counsel-api/internal/timezone"
)

type StartAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewStartAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *StartAppointment {
	return &StartAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *StartAppointment) Execute(
	ctx context.Context,
	centerID uint,
	counselorID uint,
	appointmentID uint,
) (*models.Appointment, domain.StartSignal, error) {

	center, err := uc.repo.GetCenterByID(ctx, centerID)
	if err != nil {
		return nil, domain.StartSignal{}, err
	}

	ap, err := uc.repo.GetAppointmentForCounselor(ctx, appointmentID, counselorID)
	if err != nil {
		return nil, domain.StartSignal{}, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(center.Timezone)
	updated, signal, err := domain.Start(*ap, now)
	if err != nil {
		return nil, domain.StartSignal{}, err
	}

	if err := uc.repo.UpdateAppointment(ctx, &updated); err != nil {
		return nil, domain.StartSignal{}, err
	}

	uc.audit.Dispatch(audit.Event{
		CenterID: centerID,
		UserID:   &counselorID,
		Action:   "appointment_started",
		Entity:   "appointment",
		EntityID: &updated.ID,
	})

	return &updated, signal, nil
}
