package appointment

import (
	"context"

	"github.com/calmharbor/counsel-api/internal/audit"
	domain "github.com/calmharbor/counsel-api/internal/domain/appointment"
	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
	"github.com/calmharbor/counsel-api/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	centerID uint,
	counselorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	center, err := uc.repo.GetCenterByID(ctx, centerID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForCounselor(ctx, appointmentID, counselorID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(center.Timezone)
	updated, err := domain.Complete(*ap, now)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, &updated); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CenterID: centerID,
		UserID:   &counselorID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &updated.ID,
	})

	return &updated, nil
}
