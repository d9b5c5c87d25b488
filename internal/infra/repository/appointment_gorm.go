package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/calmharbor/counsel-api/internal/domain/appointment"
	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Center
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCenterByID(
	ctx context.Context,
	id uint,
) (*models.Center, error) {

	var center models.Center
	if err := r.db.WithContext(ctx).First(&center, id).Error; err != nil {
		return nil, err
	}
	return &center, nil
}

// --------------------------------------------------
// Parties
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCounselor(
	ctx context.Context,
	centerID uint,
	counselorID uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND center_id = ? AND role = ?", counselorID, centerID, models.RoleCounselor).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetStudentByUserID(
	ctx context.Context,
	userID uint,
) (*models.Student, error) {

	var student models.Student
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

// Estados terminais não bloqueiam a agenda do conselheiro
func (r *AppointmentGormRepository) AssertNoOverlap(
	ctx context.Context,
	counselorID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"counselor_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			counselorID,
			[]string{
				string(domain.StatusPending),
				string(domain.StatusConfirmed),
				string(domain.StatusInProgress),
				string(domain.StatusRescheduled),
			},
			end,
			start,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForCounselor(
	ctx context.Context,
	appointmentID uint,
	counselorID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("id = ? AND counselor_id = ?", appointmentID, counselorID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForCounselor(
	ctx context.Context,
	counselorID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("counselor_id = ?", counselorID).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForStudent(
	ctx context.Context,
	studentID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("student_id = ?", studentID).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForPeriod(
	ctx context.Context,
	counselorID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Student").
		Where(
			"counselor_id = ? AND start_time >= ? AND start_time < ?",
			counselorID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
