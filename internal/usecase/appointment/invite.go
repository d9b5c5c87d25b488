package appointment

import (
	"context"
	"fmt"

	ics "github.com/arran4/golang-ical"

	domain "github.com/calmharbor/counsel-api/internal/domain/appointment"
	"github.com/calmharbor/counsel-api/internal/httperr"
)

// Gera o convite .ics de um atendimento
type BuildInvite struct {
	repo domain.Repository
}

func NewBuildInvite(repo domain.Repository) *BuildInvite {
	return &BuildInvite{repo: repo}
}

func (uc *BuildInvite) Execute(
	ctx context.Context,
	centerID uint,
	counselorID uint,
	appointmentID uint,
) (string, error) {

	center, err := uc.repo.GetCenterByID(ctx, centerID)
	if err != nil {
		return "", err
	}

	ap, err := uc.repo.GetAppointmentForCounselor(ctx, appointmentID, counselorID)
	if err != nil {
		return "", httperr.ErrBusiness("appointment_not_found")
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//CalmHarbor//counsel-api//PT")

	event := cal.AddEvent(fmt.Sprintf("appointment-%d@%s", ap.ID, center.Slug))
	event.SetStartAt(ap.StartTime)
	event.SetEndAt(ap.EndTime)
	event.SetSummary(fmt.Sprintf("Sessão de acolhimento: %s", ap.Student.Name))
	event.SetDescription(ap.Reason)

	if ap.Medium == domain.MediumVideo && ap.MeetingLink != "" {
		event.SetLocation(ap.MeetingLink)
		event.SetURL(ap.MeetingLink)
	} else if ap.Location != "" {
		event.SetLocation(ap.Location)
	} else {
		event.SetLocation(center.Address)
	}

	return cal.Serialize(), nil
}
