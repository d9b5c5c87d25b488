package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/calmharbor/counsel-api/internal/domain/mood"
	"github.com/calmharbor/counsel-api/internal/dto"
	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/middleware"
	"github.com/calmharbor/counsel-api/internal/models"
	"github.com/calmharbor/counsel-api/internal/timezone"
	ucCheckin "github.com/calmharbor/counsel-api/internal/usecase/checkin"
)

// ======================================================
// HANDLER
// ======================================================

type MoodHandler struct {
	repo    mood.Repository
	centers ucCheckin.CenterGetter
}

func NewMoodHandler(repo mood.Repository, centers ucCheckin.CenterGetter) *MoodHandler {
	return &MoodHandler{
		repo:    repo,
		centers: centers,
	}
}

// ======================================================
// HISTORY (janela week/month/year + estatísticas)
// ======================================================

func (h *MoodHandler) History(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	window := c.DefaultQuery("window", "month")
	if !mood.ValidWindow(window) {
		httperr.BadRequest(c, "invalid_window", "Janela deve ser week, month ou year.")
		return
	}

	center, err := h.centers.GetCenterByID(c.Request.Context(), centerID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	now := timezone.NowIn(center.Timezone)

	// ref default: período corrente
	ref := now
	if ys := c.Query("year"); ys != "" {
		year, yerr := strconv.Atoi(ys)
		month, merr := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
		if yerr != nil || merr != nil || month < 1 || month > 12 {
			httperr.BadRequest(c, "invalid_period", "Período inválido.")
			return
		}
		ref = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	}

	entries, err := h.repo.ListEntries(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro ao buscar histórico.")
		return
	}

	selected := mood.SelectWindow(entries, mood.Window(window), ref, now)
	if selected == nil {
		selected = []models.MoodEntry{}
	}

	c.JSON(200, dto.MoodHistoryDTO{
		Window:  window,
		Entries: selected,
		Stats:   mood.ComputeStats(selected, now),
	})
}
