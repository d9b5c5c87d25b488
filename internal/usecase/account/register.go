package account

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
	"github.com/calmharbor/counsel-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	// counselor cria o centro; student entra num centro existente pelo slug
	CenterName string
	CenterSlug string
	Timezone   string

	Role     string
	Name     string
	Email    string
	Password string
	Phone    string

	Year  string
	Major string
}

// ======================================================
// DEPS
// ======================================================

type Repository interface {
	// (nil, nil) quando o slug não existe; erro só em falha real de consulta
	GetCenterBySlug(ctx context.Context, slug string) (*models.Center, error)

	// newCenter nil quando o centro já existe; a escrita é atômica:
	// nenhuma linha sobrevive se qualquer parte falhar
	CreateAccount(
		ctx context.Context,
		newCenter *models.Center,
		user *models.User,
		student *models.Student,
	) error
}

type EmailChecker func(email string) bool

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	repo       Repository
	checkEmail EmailChecker
}

func NewRegister(repo Repository, checkEmail EmailChecker) *Register {
	return &Register{
		repo:       repo,
		checkEmail: checkEmail,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*models.User, *models.Center, error) {

	slug := strings.ToLower(strings.TrimSpace(in.CenterSlug))
	email := strings.ToLower(strings.TrimSpace(in.Email))

	// toda validação antes de qualquer escrita
	if !uc.checkEmail(email) {
		return nil, nil, httperr.ErrBusiness("invalid_email_domain")
	}

	center, err := uc.repo.GetCenterBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	var newCenter *models.Center

	switch in.Role {
	case models.RoleCounselor:
		if center != nil {
			return nil, nil, httperr.ErrBusiness("slug_already_exists")
		}

		tz := in.Timezone
		if !timezone.IsValid(tz) {
			tz = timezone.DefaultTimezone
		}

		name := in.CenterName
		if name == "" {
			name = slug
		}

		newCenter = &models.Center{
			Name:     name,
			Slug:     slug,
			Timezone: tz,
		}
		center = newCenter

	case models.RoleStudent:
		if center == nil {
			return nil, nil, httperr.ErrBusiness("center_not_found")
		}

	default:
		return nil, nil, httperr.ErrBusiness("invalid_role")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		CenterID:     center.ID,
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        in.Phone,
		Role:         in.Role,
	}

	var student *models.Student
	if in.Role == models.RoleStudent {
		student = &models.Student{
			CenterID: center.ID,
			Name:     in.Name,
			Email:    email,
			Phone:    in.Phone,
			Year:     in.Year,
			Major:    in.Major,
		}
	}

	if err := uc.repo.CreateAccount(ctx, newCenter, user, student); err != nil {
		return nil, nil, err
	}

	return user, center, nil
}
