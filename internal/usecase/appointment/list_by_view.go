package appointment

import (
	"context"

	domain "github.com/calmharbor/counsel-api/internal/domain/appointment"
	"github.com/calmharbor/counsel-api/internal/dto"
	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
	"github.com/calmharbor/counsel-api/internal/timezone"
)

type ListByViewInput struct {
	CenterID uint

	// exatamente um dos dois preenchido
	CounselorID   uint
	StudentUserID uint

	View  string
	Query string
}

type ListAppointmentsByView struct {
	repo domain.Repository
}

func NewListAppointmentsByView(
	repo domain.Repository,
) *ListAppointmentsByView {
	return &ListAppointmentsByView{
		repo: repo,
	}
}

func (uc *ListAppointmentsByView) Execute(
	ctx context.Context,
	in ListByViewInput,
) ([]dto.AppointmentListDTO, error) {

	center, err := uc.repo.GetCenterByID(ctx, in.CenterID)
	if err != nil {
		return nil, err
	}

	if !domain.ValidView(in.View) {
		return nil, httperr.ErrBusiness("invalid_view")
	}

	var appointments []models.Appointment

	switch {
	case in.CounselorID != 0:
		appointments, err = uc.repo.ListForCounselor(ctx, in.CounselorID)
	case in.StudentUserID != 0:
		student, serr := uc.repo.GetStudentByUserID(ctx, in.StudentUserID)
		if serr != nil {
			return nil, httperr.ErrBusiness("student_profile_not_found")
		}
		appointments, err = uc.repo.ListForStudent(ctx, student.ID)
	default:
		return nil, httperr.ErrBusiness("missing_party")
	}
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(center.Timezone)
	filtered := domain.FilterView(appointments, domain.View(in.View), in.Query, now)

	out := make([]dto.AppointmentListDTO, 0, len(filtered))
	for _, ap := range filtered {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			SessionType: ap.SessionType,
			Medium:      ap.Medium,
			Priority:    ap.Priority,
			Reason:      ap.Reason,
			StudentName: ap.Student.Name,
			CanStart: domain.CanStart(
				domain.Status(ap.Status),
				ap.StartTime,
				ap.DurationMinutes,
				now,
			),
		})
	}

	return out, nil
}
