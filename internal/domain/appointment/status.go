package appointment

import (
	"time"

	"github.com/calmharbor/counsel-api/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no_show"
	StatusRescheduled Status = "rescheduled"
)

// ===============================
// Session classification
// ===============================

const (
	TypeIndividual = "individual"
	TypeGroup      = "group"
	TypeCrisis     = "crisis"
	TypeIntake     = "intake"
	TypeFollowUp   = "follow_up"
)

const (
	MediumVideo    = "video"
	MediumInPerson = "in_person"
	MediumPhone    = "phone"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Janela de início: sessão confirmada fica iniciável de 30 minutos antes
// do horário marcado até o fim previsto da sessão.
const startWindowBefore = 30 * time.Minute

// ===============================
// Validations
// ===============================

// CanAccept define se um atendimento pendente pode ser confirmado
func CanAccept(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanDecline define se um atendimento pendente pode ser recusado
func CanDecline(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete define se uma sessão em andamento pode ser concluída
func CanComplete(current Status) error {
	if current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanMarkNoShow define se uma sessão confirmada pode virar falta
func CanMarkNoShow(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanStart é recalculado a cada leitura; nunca armazenado
func CanStart(current Status, startTime time.Time, durationMinutes int, now time.Time) bool {
	if current != StatusConfirmed {
		return false
	}
	opens := startTime.Add(-startWindowBefore)
	closes := startTime.Add(time.Duration(durationMinutes) * time.Minute)
	return !now.Before(opens) && !now.After(closes)
}

func InitialStatus() Status {
	return StatusPending
}

func ValidSessionType(t string) bool {
	switch t {
	case TypeIndividual, TypeGroup, TypeCrisis, TypeIntake, TypeFollowUp:
		return true
	}
	return false
}

func ValidMedium(m string) bool {
	switch m {
	case MediumVideo, MediumInPerson, MediumPhone:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
