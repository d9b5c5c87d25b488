package appointment

import (
	"context"
	"time"

	"github.com/calmharbor/counsel-api/internal/models"
)

type Repository interface {
	// -------- Center --------
	GetCenterByID(
		ctx context.Context,
		id uint,
	) (*models.Center, error)

	// -------- Parties --------
	GetCounselor(
		ctx context.Context,
		centerID uint,
		counselorID uint,
	) (*models.User, error)

	GetStudentByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Student, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoOverlap(
		ctx context.Context,
		counselorID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForCounselor(
		ctx context.Context,
		appointmentID uint,
		counselorID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListForCounselor(
		ctx context.Context,
		counselorID uint,
	) ([]models.Appointment, error)

	ListForStudent(
		ctx context.Context,
		studentID uint,
	) ([]models.Appointment, error)

	ListForPeriod(
		ctx context.Context,
		counselorID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
