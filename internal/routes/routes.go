package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/calmharbor/counsel-api/internal/audit"
	"github.com/calmharbor/counsel-api/internal/cache"
	"github.com/calmharbor/counsel-api/internal/config"
	"github.com/calmharbor/counsel-api/internal/handlers"
	infraRepo "github.com/calmharbor/counsel-api/internal/infra/repository"
	"github.com/calmharbor/counsel-api/internal/middleware"
	"github.com/calmharbor/counsel-api/internal/models"
	"github.com/calmharbor/counsel-api/internal/storage"
	ucAccount "github.com/calmharbor/counsel-api/internal/usecase/account"
	ucAppointment "github.com/calmharbor/counsel-api/internal/usecase/appointment"
	ucCheckin "github.com/calmharbor/counsel-api/internal/usecase/checkin"
	"github.com/calmharbor/counsel-api/internal/validators"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	moodRepo := infraRepo.NewMoodGormRepository(db)

	rdb := cache.NewRedis(cfg, log)
	checkinCache := cache.NewCheckinCache(rdb, log)

	uploader := storage.NewUploader(cfg, log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	scheduleUC := ucAppointment.NewScheduleAppointment(appointmentRepo, auditDispatcher)
	acceptUC := ucAppointment.NewAcceptAppointment(appointmentRepo, auditDispatcher)
	declineUC := ucAppointment.NewDeclineAppointment(appointmentRepo, auditDispatcher)
	startUC := ucAppointment.NewStartAppointment(appointmentRepo, auditDispatcher)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher)
	noShowUC := ucAppointment.NewMarkNoShow(appointmentRepo, auditDispatcher)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(appointmentRepo, auditDispatcher)
	annotateUC := ucAppointment.NewAnnotateAppointment(appointmentRepo, auditDispatcher)

	listViewUC := ucAppointment.NewListAppointmentsByView(appointmentRepo)
	listMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	exportUC := ucAppointment.NewExportMonth(appointmentRepo)
	inviteUC := ucAppointment.NewBuildInvite(appointmentRepo)

	// ======================================================
	// USE CASES — CHECK-IN
	// ======================================================
	submitCheckinUC := ucCheckin.NewSubmitCheckin(
		moodRepo,
		appointmentRepo,
		checkinCache,
		uploader,
		auditDispatcher,
	)
	checkinQueriesUC := ucCheckin.NewCheckinQueries(
		moodRepo,
		appointmentRepo,
		checkinCache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	registerUC := ucAccount.NewRegister(
		infraRepo.NewAccountGormRepository(db),
		validators.IsEmailDomainValid,
	)

	authHandler := handlers.NewAuthHandler(db, cfg, registerUC)
	meHandler := handlers.NewMeHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		scheduleUC,
		acceptUC,
		declineUC,
		startUC,
		completeUC,
		noShowUC,
		rescheduleUC,
		annotateUC,
		listViewUC,
		listMonthUC,
		exportUC,
		inviteUC,
	)

	checkinHandler := handlers.NewCheckinHandler(submitCheckinUC, checkinQueriesUC)
	moodHandler := handlers.NewMoodHandler(moodRepo, appointmentRepo)
	lifeEventHandler := handlers.NewLifeEventHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			// ------------------------------
			// APPOINTMENTS (visões compartilhadas)
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.List)

			student := secured.Group("/")
			student.Use(middleware.RequireRole(models.RoleStudent))
			{
				student.POST("/me/appointments", appointmentHandler.Schedule)

				// ------------------------------
				// CHECK-IN DIÁRIO
				// ------------------------------
				student.POST("/me/checkins", checkinHandler.Submit)
				student.GET("/me/checkins/today", checkinHandler.Today)
				student.GET("/me/checkins/streak", checkinHandler.Streak)
				student.GET("/me/checkins/analytics", checkinHandler.Analytics)

				student.GET("/me/mood/history", moodHandler.History)

				student.POST("/me/life-events", lifeEventHandler.Create)
				student.GET("/me/life-events", lifeEventHandler.List)
				student.DELETE("/me/life-events/:id", lifeEventHandler.Delete)
			}

			counselor := secured.Group("/")
			counselor.Use(middleware.RequireRole(models.RoleCounselor))
			{
				counselor.GET("/me/appointments/month", appointmentHandler.ListByMonth)
				counselor.GET("/me/appointments/export", appointmentHandler.ExportMonth)

				counselor.PATCH("/me/appointments/:id/accept", appointmentHandler.Accept)
				counselor.PATCH("/me/appointments/:id/decline", appointmentHandler.Decline)
				counselor.PATCH("/me/appointments/:id/start", appointmentHandler.Start)
				counselor.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
				counselor.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)
				counselor.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
				counselor.PATCH("/me/appointments/:id/notes", appointmentHandler.Annotate)
				counselor.GET("/me/appointments/:id/invite", appointmentHandler.Invite)

				counselor.GET("/me/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
