package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/calmharbor/counsel-api/internal/httperr"
	"github.com/calmharbor/counsel-api/internal/httpresp"
	"github.com/calmharbor/counsel-api/internal/middleware"
	ucAppointment "github.com/calmharbor/counsel-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	scheduleUC   *ucAppointment.ScheduleAppointment
	acceptUC     *ucAppointment.AcceptAppointment
	declineUC    *ucAppointment.DeclineAppointment
	startUC      *ucAppointment.StartAppointment
	completeUC   *ucAppointment.CompleteAppointment
	noShowUC     *ucAppointment.MarkNoShow
	rescheduleUC *ucAppointment.RescheduleAppointment
	annotateUC   *ucAppointment.AnnotateAppointment
	listViewUC   *ucAppointment.ListAppointmentsByView
	listMonthUC  *ucAppointment.ListAppointmentsByMonth
	exportUC     *ucAppointment.ExportMonth
	inviteUC     *ucAppointment.BuildInvite
}

func NewAppointmentHandler(
	scheduleUC *ucAppointment.ScheduleAppointment,
	acceptUC *ucAppointment.AcceptAppointment,
	declineUC *ucAppointment.DeclineAppointment,
	startUC *ucAppointment.StartAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	noShowUC *ucAppointment.MarkNoShow,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	annotateUC *ucAppointment.AnnotateAppointment,
	listViewUC *ucAppointment.ListAppointmentsByView,
	listMonthUC *ucAppointment.ListAppointmentsByMonth,
	exportUC *ucAppointment.ExportMonth,
	inviteUC *ucAppointment.BuildInvite,
) *AppointmentHandler {
	return &AppointmentHandler{
		scheduleUC:   scheduleUC,
		acceptUC:     acceptUC,
		declineUC:    declineUC,
		startUC:      startUC,
		completeUC:   completeUC,
		noShowUC:     noShowUC,
		rescheduleUC: rescheduleUC,
		annotateUC:   annotateUC,
		listViewUC:   listViewUC,
		listMonthUC:  listMonthUC,
		exportUC:     exportUC,
		inviteUC:     inviteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleAppointmentRequest struct {
	CounselorID     uint   `json:"counselor_id" binding:"required"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
	SessionType     string `json:"session_type" binding:"required"`
	Medium          string `json:"medium" binding:"required"`
	Priority        string `json:"priority"`
	Reason          string `json:"reason"`
	Location        string `json:"location"`

	IsRecurring      bool   `json:"is_recurring"`
	RecurringPattern string `json:"recurring_pattern"`
}

type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type AnnotateRequest struct {
	Notes string `json:"notes"`
}

// ======================================================
// HELPERS
// ======================================================

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func parseYearMonth(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		httperr.BadRequest(c, "invalid_period", "Ano inválido.")
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_period", "Mês inválido.")
		return 0, 0, false
	}
	return year, month, true
}

func writeBusinessError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		switch code {
		case "appointment_not_found":
			httperr.NotFound(c, code, "Atendimento não encontrado.")
		default:
			httperr.BadRequest(c, code, "Operação rejeitada.")
		}
		return
	}
	httperr.Internal(c, "internal_error", "Erro interno.")
}

// ======================================================
// SCHEDULE (estudante solicita)
// ======================================================

func (h *AppointmentHandler) Schedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	var req ScheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.scheduleUC.Execute(c.Request.Context(), ucAppointment.ScheduleAppointmentInput{
		CenterID:      centerID,
		StudentUserID: userID,
		CounselorID:   req.CounselorID,

		Date: req.Date,
		Time: req.Time,

		DurationMinutes: req.DurationMinutes,
		SessionType:     req.SessionType,
		Medium:          req.Medium,
		Priority:        req.Priority,
		Reason:          req.Reason,
		Location:        req.Location,

		IsRecurring:      req.IsRecurring,
		RecurringPattern: req.RecurringPattern,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// LIST (visões: today / upcoming / pending / completed)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	view := c.DefaultQuery("view", "today")
	query := c.Query("q")

	in := ucAppointment.ListByViewInput{
		CenterID: centerID,
		View:     view,
		Query:    query,
	}
	if role == "counselor" {
		in.CounselorID = userID
	} else {
		in.StudentUserID = userID
	}

	out, err := h.listViewUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// LIST BY MONTH
// ======================================================

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	counselorID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	out, err := h.listMonthUC.Execute(c.Request.Context(), counselorID, centerID, year, month)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Accept(c *gin.Context) {
	h.transition(c, func(centerID, counselorID, id uint) (any, error) {
		return h.acceptUC.Execute(c.Request.Context(), centerID, counselorID, id)
	})
}

func (h *AppointmentHandler) Decline(c *gin.Context) {
	h.transition(c, func(centerID, counselorID, id uint) (any, error) {
		return h.declineUC.Execute(c.Request.Context(), centerID, counselorID, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(centerID, counselorID, id uint) (any, error) {
		return h.completeUC.Execute(c.Request.Context(), centerID, counselorID, id)
	})
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.transition(c, func(centerID, counselorID, id uint) (any, error) {
		return h.noShowUC.Execute(c.Request.Context(), centerID, counselorID, id)
	})
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	exec func(centerID, counselorID, id uint) (any, error),
) {
	counselorID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	id, ok := pathID(c)
	if !ok {
		return
	}

	out, err := exec(centerID, counselorID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(200, out)
}

// Start devolve também o sinal de abertura do link externo
func (h *AppointmentHandler) Start(c *gin.Context) {
	counselorID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, signal, err := h.startUC.Execute(c.Request.Context(), centerID, counselorID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"appointment": ap,
		"signal":      signal,
	})
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	counselorID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), centerID, counselorID, id, req.Date, req.Time)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(200, ap)
}

func (h *AppointmentHandler) Annotate(c *gin.Context) {
	counselorID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.annotateUC.Execute(c.Request.Context(), centerID, counselorID, id, req.Notes)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// EXPORT
// ======================================================

func (h *AppointmentHandler) ExportMonth(c *gin.Context) {
	counselorID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	f, err := h.exportUC.Execute(c.Request.Context(), counselorID, centerID, year, month)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	filename := fmt.Sprintf("agenda-%04d-%02d.xlsx", year, month)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		httperr.Internal(c, "export_failed", "Erro ao exportar agenda.")
	}
}

func (h *AppointmentHandler) Invite(c *gin.Context) {
	counselorID := c.MustGet(middleware.ContextUserID).(uint)
	centerID := c.MustGet(middleware.ContextCenterID).(uint)

	id, ok := pathID(c)
	if !ok {
		return
	}

	serialized, err := h.inviteUC.Execute(c.Request.Context(), centerID, counselorID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="appointment-%d.ics"`, id))
	c.Data(200, "text/calendar; charset=utf-8", []byte(serialized))
}
