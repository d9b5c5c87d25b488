package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/calmharbor/counsel-api/internal/models"
	"github.com/calmharbor/counsel-api/internal/usecase/account"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// GetCenterBySlug distingue ausência de falha de consulta: slug livre
// devolve (nil, nil), erro real de banco sobe como erro
func (r *AccountGormRepository) GetCenterBySlug(
	ctx context.Context,
	slug string,
) (*models.Center, error) {

	var center models.Center
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&center).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &center, nil
}

// CreateAccount grava centro, usuário e perfil numa transação única;
// qualquer falha desfaz tudo e o slug volta a ficar livre
func (r *AccountGormRepository) CreateAccount(
	ctx context.Context,
	newCenter *models.Center,
	user *models.User,
	student *models.Student,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if newCenter != nil {
			if err := tx.Create(newCenter).Error; err != nil {
				return err
			}
			user.CenterID = newCenter.ID
			if student != nil {
				student.CenterID = newCenter.ID
			}
		}

		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if student != nil {
			student.UserID = user.ID
			if err := tx.Create(student).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Compile-time check
var _ account.Repository = (*AccountGormRepository)(nil)
