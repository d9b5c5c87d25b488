package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/calmharbor/counsel-api/internal/middleware"
	"github.com/calmharbor/counsel-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.Preload("Center").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"phone":      user.Phone,
			"role":       user.Role,
			"center_id":  user.CenterID,
			"created_at": user.CreatedAt,
		},
		"center": gin.H{
			"id":       user.Center.ID,
			"name":     user.Center.Name,
			"slug":     user.Center.Slug,
			"timezone": user.Center.Timezone,
		},
	}

	if user.Role == models.RoleStudent {
		var student models.Student
		if err := h.db.Where("user_id = ?", userID).First(&student).Error; err == nil {
			resp["student"] = student
		}
	}

	c.JSON(http.StatusOK, resp)
}

type UpdateMeRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Year  string `json:"year"`
	Major string `json:"major"`
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	h.db.Save(&user)

	if user.Role == models.RoleStudent {
		var student models.Student
		if err := h.db.Where("user_id = ?", userID).First(&student).Error; err == nil {
			if req.Name != "" {
				student.Name = req.Name
			}
			if req.Phone != "" {
				student.Phone = req.Phone
			}
			if req.Year != "" {
				student.Year = req.Year
			}
			if req.Major != "" {
				student.Major = req.Major
			}
			h.db.Save(&student)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
