package appointment

import (
	"context"
	"time"

	domain "github.com/calmharbor/counsel-api/internal/domain/appointment"
	"github.com/calmharbor/counsel-api/internal/dto"
	"github.com/calmharbor/counsel-api/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	counselorID uint,
	centerID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	center, err := uc.repo.GetCenterByID(ctx, centerID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(center.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListForPeriod(
		ctx,
		counselorID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(center.Timezone)

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
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
