package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/calmharbor/counsel-api/internal/config"
	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/models"
	"github.com/calmharbor/counsel-api/internal/usecase/account"
)

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	register *account.Register
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, register *account.Register) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, register: register}
}

// --------- Requests ---------

type RegisterRequest struct {
	// counselor cria o centro; student entra num centro existente pelo slug
	CenterName string `json:"center_name"`
	CenterSlug string `json:"center_slug" binding:"required"`
	Timezone   string `json:"timezone"`

	Role     string `json:"role" binding:"required,oneof=student counselor"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	Year  string `json:"year"`
	Major string `json:"major"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	user, center, err := h.register.Execute(c.Request.Context(), account.RegisterInput{
		CenterName: req.CenterName,
		CenterSlug: req.CenterSlug,
		Timezone:   req.Timezone,

		Role:     req.Role,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,

		Year:  req.Year,
		Major: req.Major,
	})
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			message := "Cadastro rejeitado."
			if code == "invalid_email_domain" {
				message = "O domínio do e-mail informado não parece ser válido."
			}
			httperr.BadRequest(c, code, message)
			return
		}
		httperr.Internal(c, "failed_to_register", "Erro ao concluir o cadastro.")
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"phone":     user.Phone,
			"role":      user.Role,
			"center_id": user.CenterID,
		},
		"center": gin.H{
			"id":       center.ID,
			"name":     center.Name,
			"slug":     center.Slug,
			"timezone": center.Timezone,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Preload("Center").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	// estudante sem perfil é tratado como falha de autenticação
	if user.Role == models.RoleStudent {
		var student models.Student
		if err := h.db.Where("user_id = ?", user.ID).First(&student).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "profile_not_found"})
			return
		}
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"phone":     user.Phone,
			"role":      user.Role,
			"center_id": user.CenterID,
		},
		"center": gin.H{
			"id":       user.Center.ID,
			"name":     user.Center.Name,
			"slug":     user.Center.Slug,
			"timezone": user.Center.Timezone,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"centerId": user.CenterID,
		"role":     user.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
