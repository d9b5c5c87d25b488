package handlers

import (
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/calmharbor/counsel-api/internal/dto"
	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/middleware"
	ucCheckin "github.com/calmharbor/counsel-api/internal/usecase/checkin"
)

// ======================================================
// HANDLER
// ======================================================

// foto limitada a 8MB antes do redimensionamento
const maxCheckinPhotoBytes = 8 << 20

type CheckinHandler struct {
	submitUC  *ucCheckin.SubmitCheckin
	queriesUC *ucCheckin.CheckinQueries
}

func NewCheckinHandler(
	submitUC *ucCheckin.SubmitCheckin,
	queriesUC *ucCheckin.CheckinQueries,
) *CheckinHandler {
	return &CheckinHandler{
		submitUC:  submitUC,
		queriesUC: queriesUC,
	}
}

// ======================================================
// SUBMIT (multipart: campos + foto opcional)
// ======================================================

func (h *CheckinHandler) Submit(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	mood, err := strconv.Atoi(c.PostForm("mood"))
	if err != nil {
		httperr.BadRequest(c, "invalid_mood", "Humor deve ser um número de 1 a 5.")
		return
	}

	in := ucCheckin.SubmitInput{
		CenterID: centerID,
		UserID:   userID,

		Mood:         mood,
		SleepQuality: formInt(c, "sleep_quality"),
		Energy:       formInt(c, "energy"),
		Stress:       formInt(c, "stress"),
		Anxiety:      formInt(c, "anxiety"),

		Weather: c.PostForm("weather"),
		Tags:    formTags(c),
	}

	if file, header, ferr := c.Request.FormFile("photo"); ferr == nil {
		defer file.Close()

		data, rerr := io.ReadAll(io.LimitReader(file, maxCheckinPhotoBytes+1))
		if rerr != nil || len(data) > maxCheckinPhotoBytes {
			httperr.BadRequest(c, "attachment_too_large", "Foto excede o tamanho máximo.")
			return
		}

		in.Photo = data
		in.PhotoContentType = header.Header.Get("Content-Type")
	}

	entry, err := h.submitUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(201, entry)
}

func formInt(c *gin.Context, field string) int {
	v, err := strconv.Atoi(c.PostForm(field))
	if err != nil {
		return 0
	}
	return v
}

func formTags(c *gin.Context) []string {
	raw := c.PostForm("tags")
	if raw == "" {
		return nil
	}

	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ======================================================
// QUERIES
// ======================================================

func (h *CheckinHandler) Today(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	checked, err := h.queriesUC.HasCheckedInToday(c.Request.Context(), centerID, userID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(200, gin.H{"checked_in": checked})
}

func (h *CheckinHandler) Streak(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	streak, err := h.queriesUC.Streak(c.Request.Context(), centerID, userID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(200, gin.H{"streak_days": streak})
}

func (h *CheckinHandler) Analytics(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	stats, effectiveDays, err := h.queriesUC.Analytics(c.Request.Context(), centerID, userID, days)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(200, dto.CheckinAnalyticsDTO{
		Days:  effectiveDays,
		Stats: stats,
	})
}
