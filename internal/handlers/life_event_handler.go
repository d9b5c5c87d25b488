package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/middleware"
	"github.com/calmharbor/counsel-api/internal/models"
)

type LifeEventHandler struct {
	db *gorm.DB
}

func NewLifeEventHandler(db *gorm.DB) *LifeEventHandler {
	return &LifeEventHandler{db: db}
}

type CreateLifeEventRequest struct {
	Date     string `json:"date" binding:"required"`
	Title    string `json:"title" binding:"required,max=100"`
	Category string `json:"category" binding:"max=50"`
	Impact   string `json:"impact" binding:"omitempty,oneof=positive negative mixed neutral"`
}

// ======================================================
// CREATE
// ======================================================

func (h *LifeEventHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateLifeEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	eventDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data deve estar no formato YYYY-MM-DD.")
		return
	}

	impact := req.Impact
	if impact == "" {
		impact = models.ImpactNeutral
	}

	event := models.LifeEvent{
		UserID:    userID,
		EventDate: eventDate,
		Title:     req.Title,
		Category:  req.Category,
		Impact:    impact,
	}

	if err := h.db.Create(&event).Error; err != nil {
		httperr.Internal(c, "life_event_create_failed", "Erro ao registrar evento.")
		return
	}

	c.JSON(201, event)
}

// ======================================================
// LIST (ordenado por data, para sobrepor ao gráfico de humor)
// ======================================================

func (h *LifeEventHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	q := h.db.Where("user_id = ?", userID)

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("event_date >= ?", from)
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("event_date <= ?", to)
		}
	}

	var events []models.LifeEvent
	if err := q.
		Order("event_date ASC").
		Find(&events).Error; err != nil {

		httperr.Internal(c, "life_event_list_failed", "Erro ao listar eventos.")
		return
	}

	c.JSON(200, events)
}

// ======================================================
// DELETE
// ======================================================

func (h *LifeEventHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := pathID(c)
	if !ok {
		return
	}

	res := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.LifeEvent{})

	if res.Error != nil {
		httperr.Internal(c, "life_event_delete_failed", "Erro ao remover evento.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "life_event_not_found", "Evento não encontrado.")
		return
	}

	c.JSON(200, gin.H{"deleted": true})
}
