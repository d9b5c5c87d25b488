package appointment

import (
	"time"

	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Todas as transições são copy-on-write: recebem o registro por valor e
// devolvem um novo valor; o snapshot anterior nunca é alterado. Em caso de
// erro o registro devolvido é o original, intacto.

func Accept(ap models.Appointment, now time.Time) (models.Appointment, error) {
	if err := CanAccept(Status(ap.Status)); err != nil {
		return ap, err
	}

	ap.Status = string(StatusConfirmed)
	ap.UpdatedAt = now
	return ap, nil
}

func Decline(ap models.Appointment, now time.Time) (models.Appointment, error) {
	if err := CanDecline(Status(ap.Status)); err != nil {
		return ap, err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.UpdatedAt = now
	return ap, nil
}

// StartSignal indica ao chamador o efeito observável de Start: abrir o
// link externo quando a sessão é por vídeo e há link cadastrado.
type StartSignal struct {
	OpenLink    bool   `json:"open_link"`
	MeetingLink string `json:"meeting_link,omitempty"`
}

func Start(ap models.Appointment, now time.Time) (models.Appointment, StartSignal, error) {
	if Status(ap.Status) != StatusConfirmed {
		return ap, StartSignal{}, httperr.ErrBusiness("invalid_state")
	}
	if !CanStart(Status(ap.Status), ap.StartTime, ap.DurationMinutes, now) {
		return ap, StartSignal{}, httperr.ErrBusiness("not_startable")
	}

	ap.Status = string(StatusInProgress)
	ap.UpdatedAt = now

	sig := StartSignal{}
	if ap.Medium == MediumVideo && ap.MeetingLink != "" {
		sig.OpenLink = true
		sig.MeetingLink = ap.MeetingLink
	}

	return ap, sig, nil
}

func Complete(ap models.Appointment, now time.Time) (models.Appointment, error) {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return ap, err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	ap.UpdatedAt = now
	return ap, nil
}

func MarkNoShow(ap models.Appointment, now time.Time) (models.Appointment, error) {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return ap, err
	}
	if now.Before(ap.StartTime.Add(time.Duration(ap.DurationMinutes) * time.Minute)) {
		return ap, httperr.ErrBusiness("session_not_over")
	}

	ap.Status = string(StatusNoShow)
	ap.UpdatedAt = now
	return ap, nil
}

// Reschedule aceita qualquer status de origem; newStart já vem validado e
// parseado no timezone do centro pelo caso de uso.
func Reschedule(ap models.Appointment, newStart time.Time, now time.Time) (models.Appointment, error) {
	if newStart.IsZero() {
		return ap, httperr.ErrBusiness("missing_date_or_time")
	}

	ap.StartTime = newStart
	ap.EndTime = newStart.Add(time.Duration(ap.DurationMinutes) * time.Minute)
	ap.Status = string(StatusRescheduled)
	ap.UpdatedAt = now
	return ap, nil
}

// Annotate substitui as anotações mantendo o status atual
func Annotate(ap models.Appointment, notes string, now time.Time) models.Appointment {
	ap.Notes = notes
	ap.UpdatedAt = now
	return ap
}
