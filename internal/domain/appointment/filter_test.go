package appointment

import (
	"testing"
	"time"

	"github.com/calmharbor/counsel-api/internal/models"
)

func mkAppointment(id uint, start time.Time, status Status, student, reason string) models.Appointment {
	return models.Appointment{
		ID:              id,
		StartTime:       start,
		EndTime:         start.Add(50 * time.Minute),
		DurationMinutes: 50,
		Status:          string(status),
		Reason:          reason,
		Student:         models.Student{Name: student},
	}
}

func TestFilterViewToday(t *testing.T) {
	// 23h: uma janela móvel de 24h pegaria o dia seguinte; dia de
	// calendário não pode.
	now := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)

	aps := []models.Appointment{
		mkAppointment(1, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), StatusCompleted, "Ana", ""),
		mkAppointment(2, time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC), StatusConfirmed, "Bruno", ""),
		mkAppointment(3, time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC), StatusConfirmed, "Carla", ""),
	}

	got := FilterView(aps, ViewToday, "", now)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("ids = %d,%d, want 1,2", got[0].ID, got[1].ID)
	}
}

func TestFilterViewUpcomingHorizon(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	aps := []models.Appointment{
		mkAppointment(1, now.Add(-time.Hour), StatusConfirmed, "", ""),              // passado
		mkAppointment(2, now.Add(2*time.Hour), StatusConfirmed, "", ""),             // hoje ainda
		mkAppointment(3, now.AddDate(0, 0, 6), StatusPending, "", ""),               // dentro
		mkAppointment(4, time.Date(2026, 3, 17, 23, 0, 0, 0, time.UTC), StatusConfirmed, "", ""), // último dia
		mkAppointment(5, now.AddDate(0, 0, 8), StatusConfirmed, "", ""),             // além do horizonte
	}

	got := FilterView(aps, ViewUpcoming, "", now)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []uint{2, 3, 4} {
		if got[i].ID != want {
			t.Errorf("got[%d].ID = %d, want %d", i, got[i].ID, want)
		}
	}
}

func TestFilterViewByStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	aps := []models.Appointment{
		mkAppointment(1, now, StatusPending, "", ""),
		mkAppointment(2, now, StatusCompleted, "", ""),
		mkAppointment(3, now, StatusConfirmed, "", ""),
	}

	if got := FilterView(aps, ViewPending, "", now); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("pending: %v", got)
	}
	if got := FilterView(aps, ViewCompleted, "", now); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("completed: %v", got)
	}
}

func TestFilterViewSearch(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	aps := []models.Appointment{
		mkAppointment(1, now.Add(time.Hour), StatusConfirmed, "Maria Souza", "prova final"),
		mkAppointment(2, now.Add(2*time.Hour), StatusConfirmed, "João Lima", "Anxiety about exams"),
		mkAppointment(3, now.Add(3*time.Hour), StatusConfirmed, "Pedro Alves", "acompanhamento"),
	}

	got := FilterView(aps, ViewToday, "ANXIETY", now)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("search anxiety: %v", got)
	}

	got = FilterView(aps, ViewToday, "maria", now)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("search by student name: %v", got)
	}

	if got = FilterView(aps, ViewToday, "zzz", now); len(got) != 0 {
		t.Fatalf("no match should be empty, got %d", len(got))
	}
}

func TestFilterViewSortsByStartTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	aps := []models.Appointment{
		mkAppointment(3, now.Add(5*time.Hour), StatusConfirmed, "", ""),
		mkAppointment(1, now.Add(time.Hour), StatusConfirmed, "", ""),
		mkAppointment(2, now.Add(3*time.Hour), StatusConfirmed, "", ""),
	}

	got := FilterView(aps, ViewToday, "", now)
	for i, want := range []uint{1, 2, 3} {
		if got[i].ID != want {
			t.Errorf("got[%d].ID = %d, want %d", i, got[i].ID, want)
		}
	}

	// entrada preservada
	if aps[0].ID != 3 {
		t.Error("input slice reordered")
	}
}

func TestFilterViewInvalidViewIsEmpty(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	aps := []models.Appointment{mkAppointment(1, now, StatusConfirmed, "", "")}

	if got := FilterView(aps, View("someday"), "", now); len(got) != 0 {
		t.Errorf("invalid view: len = %d, want 0", len(got))
	}
}
