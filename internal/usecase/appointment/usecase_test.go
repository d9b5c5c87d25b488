package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/calmharbor/counsel-api/internal/audit"
	domain "github.com/calmharbor/counsel-api/internal/domain/appointment"
	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
)

// ======================================================
// MOCK REPOSITORY (em memória)
// ======================================================

type mockRepo struct {
	mu sync.Mutex

	center       models.Center
	counselor    models.User
	student      models.Student
	appointments map[uint]models.Appointment

	overlapErr error
	nextID     uint
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		center:       models.Center{ID: 1, Name: "Campus Central", Slug: "campus-central", Timezone: "UTC"},
		counselor:    models.User{ID: 10, CenterID: 1, Name: "Dra. Helena", Role: models.RoleCounselor},
		student:      models.Student{ID: 20, CenterID: 1, UserID: 30, Name: "Ana Paula"},
		appointments: map[uint]models.Appointment{},
		nextID:       1,
	}
}

func (m *mockRepo) GetCenterByID(_ context.Context, id uint) (*models.Center, error) {
	if id != m.center.ID {
		return nil, httperr.ErrBusiness("center_not_found")
	}
	c := m.center
	return &c, nil
}

func (m *mockRepo) GetCounselor(_ context.Context, centerID, counselorID uint) (*models.User, error) {
	if centerID != m.center.ID || counselorID != m.counselor.ID {
		return nil, httperr.ErrBusiness("counselor_not_found")
	}
	u := m.counselor
	return &u, nil
}

func (m *mockRepo) GetStudentByUserID(_ context.Context, userID uint) (*models.Student, error) {
	if userID != m.student.UserID {
		return nil, httperr.ErrBusiness("student_profile_not_found")
	}
	s := m.student
	return &s, nil
}

func (m *mockRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ap.ID = m.nextID
	m.nextID++
	m.appointments[ap.ID] = *ap
	return nil
}

func (m *mockRepo) AssertNoOverlap(_ context.Context, _ uint, _, _ time.Time, _ uint) error {
	return m.overlapErr
}

func (m *mockRepo) GetAppointmentForCounselor(_ context.Context, id, counselorID uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ap, ok := m.appointments[id]
	if !ok || ap.CounselorID != counselorID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return &ap, nil
}

func (m *mockRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments[ap.ID] = *ap
	return nil
}

func (m *mockRepo) ListForCounselor(_ context.Context, counselorID uint) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.CounselorID == counselorID {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (m *mockRepo) ListForStudent(_ context.Context, studentID uint) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.StudentID == studentID {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (m *mockRepo) ListForPeriod(_ context.Context, counselorID uint, start, end time.Time) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.CounselorID == counselorID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (m *mockRepo) seed(ap models.Appointment) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	ap.ID = m.nextID
	m.nextID++
	m.appointments[ap.ID] = ap
	return ap.ID
}

// sink de auditoria que só acumula
type memorySink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *memorySink) Record(ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(&memorySink{}, zap.NewNop())
}

// ======================================================
// SCHEDULE
// ======================================================

func TestScheduleAppointment(t *testing.T) {
	repo := newMockRepo()
	uc := NewScheduleAppointment(repo, testDispatcher())

	ap, err := uc.Execute(context.Background(), ScheduleAppointmentInput{
		CenterID:      1,
		StudentUserID: 30,
		CounselorID:   10,
		Date:          "2030-06-10",
		Time:          "14:00",
		SessionType:   domain.TypeIndividual,
		Medium:        domain.MediumVideo,
		Reason:        "ansiedade em provas",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.Status != string(domain.StatusPending) {
		t.Errorf("status = %q, want pending", ap.Status)
	}
	if ap.DurationMinutes != 50 {
		t.Errorf("duration = %d, want default 50", ap.DurationMinutes)
	}
	if want := ap.StartTime.Add(50 * time.Minute); !ap.EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want %v", ap.EndTime, want)
	}
	if ap.MeetingLink == "" {
		t.Error("video session must get a meeting link")
	}
	if ap.Priority != domain.PriorityMedium {
		t.Errorf("priority = %q, want default medium", ap.Priority)
	}
}

func TestScheduleRejectsPastAndMissingFields(t *testing.T) {
	repo := newMockRepo()
	uc := NewScheduleAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), ScheduleAppointmentInput{
		CenterID: 1, StudentUserID: 30, CounselorID: 10,
		Date: "2020-01-01", Time: "10:00",
		SessionType: domain.TypeIndividual, Medium: domain.MediumInPerson,
	})
	if !httperr.IsBusiness(err, "in_the_past") {
		t.Errorf("past date: err = %v, want in_the_past", err)
	}

	_, err = uc.Execute(context.Background(), ScheduleAppointmentInput{
		CenterID: 1, StudentUserID: 30, CounselorID: 10,
		Date: "", Time: "10:00",
		SessionType: domain.TypeIndividual, Medium: domain.MediumInPerson,
	})
	if !httperr.IsBusiness(err, "missing_date_or_time") {
		t.Errorf("missing date: err = %v, want missing_date_or_time", err)
	}
}

func TestScheduleRejectsOverlap(t *testing.T) {
	repo := newMockRepo()
	repo.overlapErr = httperr.ErrBusiness("time_conflict")
	uc := NewScheduleAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), ScheduleAppointmentInput{
		CenterID: 1, StudentUserID: 30, CounselorID: 10,
		Date: "2030-06-10", Time: "14:00",
		SessionType: domain.TypeIndividual, Medium: domain.MediumInPerson,
	})
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Errorf("err = %v, want time_conflict", err)
	}
}

// ======================================================
// TRANSITIONS
// ======================================================

func TestAcceptPersistsTransition(t *testing.T) {
	repo := newMockRepo()
	id := repo.seed(models.Appointment{
		CenterID: 1, CounselorID: 10, StudentID: 20,
		Status:    string(domain.StatusPending),
		StartTime: time.Now().UTC().Add(48 * time.Hour),
	})

	uc := NewAcceptAppointment(repo, testDispatcher())

	ap, err := uc.Execute(context.Background(), 1, 10, id)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ap.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %q, want confirmed", ap.Status)
	}

	stored, _ := repo.GetAppointmentForCounselor(context.Background(), id, 10)
	if stored.Status != string(domain.StatusConfirmed) {
		t.Errorf("persisted status = %q, want confirmed", stored.Status)
	}
}

func TestAcceptUnknownAppointment(t *testing.T) {
	repo := newMockRepo()
	uc := NewAcceptAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), 1, 10, 999)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Errorf("err = %v, want appointment_not_found", err)
	}
}

func TestAcceptWrongCounselor(t *testing.T) {
	repo := newMockRepo()
	id := repo.seed(models.Appointment{
		CenterID: 1, CounselorID: 10, StudentID: 20,
		Status: string(domain.StatusPending),
	})

	uc := NewAcceptAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), 1, 77, id)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Errorf("err = %v, want appointment_not_found", err)
	}
}

func TestStartWithinWindow(t *testing.T) {
	repo := newMockRepo()
	id := repo.seed(models.Appointment{
		CenterID: 1, CounselorID: 10, StudentID: 20,
		Status:          string(domain.StatusConfirmed),
		StartTime:       time.Now().UTC().Add(10 * time.Minute),
		DurationMinutes: 50,
		Medium:          domain.MediumVideo,
		MeetingLink:     "https://meet.calmharbor.app/xyz",
	})

	uc := NewStartAppointment(repo, testDispatcher())

	ap, sig, err := uc.Execute(context.Background(), 1, 10, id)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ap.Status != string(domain.StatusInProgress) {
		t.Errorf("status = %q, want in_progress", ap.Status)
	}
	if !sig.OpenLink {
		t.Error("expected open-link signal for video session")
	}
}

func TestStartTooEarly(t *testing.T) {
	repo := newMockRepo()
	id := repo.seed(models.Appointment{
		CenterID: 1, CounselorID: 10, StudentID: 20,
		Status:          string(domain.StatusConfirmed),
		StartTime:       time.Now().UTC().Add(2 * time.Hour),
		DurationMinutes: 50,
	})

	uc := NewStartAppointment(repo, testDispatcher())

	_, _, err := uc.Execute(context.Background(), 1, 10, id)
	if !httperr.IsBusiness(err, "not_startable") {
		t.Errorf("err = %v, want not_startable", err)
	}
}

func TestRescheduleRequiresBothFields(t *testing.T) {
	repo := newMockRepo()
	id := repo.seed(models.Appointment{
		CenterID: 1, CounselorID: 10, StudentID: 20,
		Status:          string(domain.StatusConfirmed),
		StartTime:       time.Now().UTC().Add(24 * time.Hour),
		DurationMinutes: 50,
	})

	uc := NewRescheduleAppointment(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), 1, 10, id, "2030-06-11", "")
	if !httperr.IsBusiness(err, "missing_date_or_time") {
		t.Errorf("err = %v, want missing_date_or_time", err)
	}

	ap, err := uc.Execute(context.Background(), 1, 10, id, "2030-06-11", "09:30")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ap.Status != string(domain.StatusRescheduled) {
		t.Errorf("status = %q, want rescheduled", ap.Status)
	}
	if ap.StartTime.Hour() != 9 || ap.StartTime.Minute() != 30 {
		t.Errorf("StartTime = %v, want 09:30", ap.StartTime)
	}
}

// ======================================================
// LIST BY VIEW
// ======================================================

func TestListByViewComputesCanStart(t *testing.T) {
	repo := newMockRepo()
	repo.seed(models.Appointment{
		CenterID: 1, CounselorID: 10, StudentID: 20,
		Status:          string(domain.StatusConfirmed),
		StartTime:       time.Now().UTC().Add(10 * time.Minute),
		DurationMinutes: 50,
		Student:         models.Student{Name: "Ana Paula"},
	})
	repo.seed(models.Appointment{
		CenterID: 1, CounselorID: 10, StudentID: 20,
		Status:          string(domain.StatusConfirmed),
		StartTime:       time.Now().UTC().Add(5 * time.Hour),
		DurationMinutes: 50,
		Student:         models.Student{Name: "Bruno"},
	})

	uc := NewListAppointmentsByView(repo)

	out, err := uc.Execute(context.Background(), ListByViewInput{
		CenterID:    1,
		CounselorID: 10,
		View:        "upcoming",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if !out[0].CanStart {
		t.Error("session inside start window must have CanStart = true")
	}
	if out[1].CanStart {
		t.Error("session hours away must have CanStart = false")
	}
}

func TestListByViewRejectsUnknownView(t *testing.T) {
	repo := newMockRepo()
	uc := NewListAppointmentsByView(repo)

	_, err := uc.Execute(context.Background(), ListByViewInput{
		CenterID: 1, CounselorID: 10, View: "someday",
	})
	if !httperr.IsBusiness(err, "invalid_view") {
		t.Errorf("err = %v, want invalid_view", err)
	}
}
