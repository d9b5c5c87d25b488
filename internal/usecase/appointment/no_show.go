package appointment

import (
	"context"

	"github.com/calmharbor/counsel-api/internal/audit"
	domain "github.com/calmharbor/counsel-api/internal/domain/appointment"
	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
	"github.com/calmharbor/counsel-api/internal/timezone"
)

type MarkNoShow struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewMarkNoShow(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *MarkNoShow {
	return &MarkNoShow{
		repo:  repo,
		audit: audit,
	}
}

func (uc *MarkNoShow) Execute(
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
	updated, err := domain.MarkNoShow(*ap, now)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, &updated); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CenterID: centerID,
		UserID:   &counselorID,
		Action:   "appointment_no_show",
		Entity:   "appointment",
		EntityID: &updated.ID,
	})

	return &updated, nil
}
