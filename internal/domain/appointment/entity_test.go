package appointment

import (
	"testing"
	"time"

	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
)

var base = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func pendingAppointment() models.Appointment {
	return models.Appointment{
		ID:              1,
		Status:          string(StatusPending),
		StartTime:       base,
		EndTime:         base.Add(50 * time.Minute),
		DurationMinutes: 50,
		Medium:          MediumInPerson,
	}
}

func TestAcceptFromPending(t *testing.T) {
	ap := pendingAppointment()
	now := base.Add(-time.Hour)

	got, err := Accept(ap, now)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if got.Status != string(StatusConfirmed) {
		t.Errorf("status = %q, want confirmed", got.Status)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, now)
	}

	// original intacto
	if ap.Status != string(StatusPending) {
		t.Errorf("original mutated: status = %q", ap.Status)
	}
}

func TestAcceptRejectsOtherStatuses(t *testing.T) {
	for _, s := range []Status{
		StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelled, StatusNoShow, StatusRescheduled,
	} {
		ap := pendingAppointment()
		ap.Status = string(s)

		got, err := Accept(ap, base)
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("Accept from %s: err = %v, want invalid_state", s, err)
		}
		if got.Status != string(s) {
			t.Errorf("Accept from %s changed status to %q", s, got.Status)
		}
	}
}

func TestDeclineSetsCancelledAt(t *testing.T) {
	ap := pendingAppointment()
	now := base.Add(-time.Hour)

	got, err := Decline(ap, now)
	if err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if got.Status != string(StatusCancelled) {
		t.Errorf("status = %q, want cancelled", got.Status)
	}
	if got.CancelledAt == nil || !got.CancelledAt.Equal(now) {
		t.Errorf("CancelledAt = %v, want %v", got.CancelledAt, now)
	}
	if ap.CancelledAt != nil {
		t.Error("original mutated: CancelledAt set")
	}
}

func TestStartVideoSignal(t *testing.T) {
	ap := pendingAppointment()
	ap.Status = string(StatusConfirmed)
	ap.Medium = MediumVideo
	ap.MeetingLink = "https://meet.calmharbor.app/abc"

	got, sig, err := Start(ap, base.Add(-10*time.Minute))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got.Status != string(StatusInProgress) {
		t.Errorf("status = %q, want in_progress", got.Status)
	}
	if !sig.OpenLink || sig.MeetingLink != ap.MeetingLink {
		t.Errorf("signal = %+v, want open link %q", sig, ap.MeetingLink)
	}
}

func TestStartInPersonNoSignal(t *testing.T) {
	ap := pendingAppointment()
	ap.Status = string(StatusConfirmed)

	_, sig, err := Start(ap, base)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if sig.OpenLink {
		t.Error("in-person session must not signal link open")
	}
}

func TestStartOutsideWindow(t *testing.T) {
	ap := pendingAppointment()
	ap.Status = string(StatusConfirmed)

	_, _, err := Start(ap, base.Add(-31*time.Minute))
	if !httperr.IsBusiness(err, "not_startable") {
		t.Errorf("too early: err = %v, want not_startable", err)
	}

	_, _, err = Start(ap, base.Add(51*time.Minute))
	if !httperr.IsBusiness(err, "not_startable") {
		t.Errorf("after end: err = %v, want not_startable", err)
	}
}

func TestCompleteOnlyFromInProgress(t *testing.T) {
	ap := pendingAppointment()
	ap.Status = string(StatusInProgress)
	now := base.Add(time.Hour)

	got, err := Complete(ap, now)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got.Status != string(StatusCompleted) {
		t.Errorf("status = %q, want completed", got.Status)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", got.CompletedAt, now)
	}

	ap.Status = string(StatusConfirmed)
	if _, err := Complete(ap, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("Complete from confirmed: err = %v, want invalid_state", err)
	}
}

func TestMarkNoShowRequiresSessionOver(t *testing.T) {
	ap := pendingAppointment()
	ap.Status = string(StatusConfirmed)

	if _, err := MarkNoShow(ap, base.Add(10*time.Minute)); !httperr.IsBusiness(err, "session_not_over") {
		t.Errorf("during session: err = %v, want session_not_over", err)
	}

	got, err := MarkNoShow(ap, base.Add(51*time.Minute))
	if err != nil {
		t.Fatalf("MarkNoShow after end: %v", err)
	}
	if got.Status != string(StatusNoShow) {
		t.Errorf("status = %q, want no_show", got.Status)
	}
}

func TestRescheduleMovesTimes(t *testing.T) {
	ap := pendingAppointment()
	ap.Status = string(StatusConfirmed)

	newStart := base.AddDate(0, 0, 2)
	now := base.Add(time.Minute)

	got, err := Reschedule(ap, newStart, now)
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if !got.StartTime.Equal(newStart) {
		t.Errorf("StartTime = %v, want %v", got.StartTime, newStart)
	}
	if want := newStart.Add(50 * time.Minute); !got.EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want %v", got.EndTime, want)
	}
	if got.Status != string(StatusRescheduled) {
		t.Errorf("status = %q, want rescheduled", got.Status)
	}

	if _, err := Reschedule(ap, time.Time{}, now); !httperr.IsBusiness(err, "missing_date_or_time") {
		t.Errorf("zero start: err = %v, want missing_date_or_time", err)
	}
}

func TestAnnotateIsMonotonicAndStatusNeutral(t *testing.T) {
	ap := pendingAppointment()
	ap.Status = string(StatusCompleted)

	first := Annotate(ap, "sessão inicial", base)
	second := Annotate(first, "ajuste posterior", base.Add(time.Minute))

	if second.Notes != "ajuste posterior" {
		t.Errorf("Notes = %q", second.Notes)
	}
	if second.Status != string(StatusCompleted) {
		t.Errorf("status = %q, annotate must not change status", second.Status)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("UpdatedAt not monotonic: %v then %v", first.UpdatedAt, second.UpdatedAt)
	}
}
