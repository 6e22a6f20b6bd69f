package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/audit"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/auth"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/cache"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/config"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/handlers"
	infraRepo "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/infra/repository"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/middleware"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/notify"
	ucAppointment "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/usecase/appointment"
	ucPayment "github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/usecase/payment"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Audit    *audit.Dispatcher
	Cache    cache.Availability
	Notifier notify.Notifier
	Tokens   *auth.TokenIssuer
}

func RegisterRoutes(r *gin.Engine, d Deps) error {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	limiter, err := middleware.RateLimit(d.Config.RateLimit)
	if err != nil {
		return err
	}

	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	if d.Notifier == nil {
		d.Notifier = notify.Noop{}
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	paymentRepo := infraRepo.NewPaymentGormRepository(d.DB)

	// ======================================================
	// USE CASES / APPOINTMENTS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, d.Cache, d.Notifier),
		ucAppointment.NewUpdateAppointment(appointmentRepo, d.Audit, d.Cache, d.Notifier),
		ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, d.Cache, d.Notifier),
		ucAppointment.NewMarkNoShow(appointmentRepo, d.Audit, d.Cache),
		ucAppointment.NewGetAppointment(appointmentRepo),
		ucAppointment.NewListAppointments(appointmentRepo),
		ucAppointment.NewGetAvailability(appointmentRepo, d.Cache),
		ucAppointment.NewGetStats(appointmentRepo),
	)

	// ======================================================
	// USE CASES / PAYMENTS
	// ======================================================
	paymentHandler := handlers.NewPaymentHandler(
		ucPayment.NewCreatePayment(paymentRepo, d.Audit),
		ucPayment.NewConfirmPayment(paymentRepo, d.Audit, d.Log),
		ucPayment.NewRefundPayment(paymentRepo, d.Audit),
		ucPayment.NewChangeMethod(paymentRepo, d.Audit),
		ucPayment.NewGetPayment(paymentRepo),
		ucPayment.NewListPayments(paymentRepo),
		ucPayment.NewGetReport(paymentRepo),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Tokens)
	meHandler := handlers.NewMeHandler(d.DB)
	clientHandler := handlers.NewClientHandler(d.DB, d.Audit)
	staffHandler := handlers.NewStaffHandler(d.DB, d.Audit, d.Cache)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB, d.Cache)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	api.Use(limiter)
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens))

		perm := middleware.RequirePermission

		secured.GET("/me", meHandler.GetMe)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		ap := secured.Group("/appointments")
		{
			ap.POST("", perm(auth.PermAppointmentsCreate), appointmentHandler.Create)
			ap.GET("", perm(auth.PermAppointmentsRead), appointmentHandler.List)
			ap.GET("/availability", perm(auth.PermAppointmentsRead), appointmentHandler.Availability)
			ap.GET("/stats", perm(auth.PermReportsRead), appointmentHandler.Stats)
			ap.GET("/:id", perm(auth.PermAppointmentsRead), appointmentHandler.Get)
			ap.PUT("/:id", perm(auth.PermAppointmentsUpdate), appointmentHandler.Update)
			ap.POST("/:id/cancel", perm(auth.PermAppointmentsUpdate), appointmentHandler.Cancel)
			ap.POST("/:id/no-show", perm(auth.PermAppointmentsUpdate), appointmentHandler.NoShow)
		}

		// ------------------------------
		// PAYMENTS
		// ------------------------------
		pay := secured.Group("/payments")
		{
			pay.POST("", perm(auth.PermPaymentsCreate), paymentHandler.Create)
			pay.GET("", perm(auth.PermPaymentsRead), paymentHandler.List)
			pay.GET("/report", perm(auth.PermReportsRead), paymentHandler.Report)
			pay.GET("/:id", perm(auth.PermPaymentsRead), paymentHandler.Get)
			pay.PATCH("/:id/method", perm(auth.PermPaymentsUpdate), paymentHandler.ChangeMethod)
			pay.POST("/:id/confirm", perm(auth.PermPaymentsUpdate), paymentHandler.Confirm)
			pay.POST("/:id/refund", perm(auth.PermPaymentsUpdate), paymentHandler.Refund)
		}

		// ------------------------------
		// CLIENTS
		// ------------------------------
		cl := secured.Group("/clients")
		{
			cl.POST("", perm(auth.PermClientsCreate), clientHandler.Create)
			cl.GET("", perm(auth.PermClientsRead), clientHandler.List)
			cl.GET("/:id", perm(auth.PermClientsRead), clientHandler.Get)
			cl.PATCH("/:id/unblock", perm(auth.PermClientsUpdate), clientHandler.Unblock)
		}

		// ------------------------------
		// STAFF
		// ------------------------------
		st := secured.Group("/staff")
		{
			st.POST("", perm(auth.PermStaffCreate), staffHandler.Create)
			st.GET("/:id", perm(auth.PermStaffRead), staffHandler.Get)
			st.PUT("/:id", perm(auth.PermStaffUpdate), staffHandler.Update)
			st.GET("/:id/working-hours", perm(auth.PermStaffRead), workingHoursHandler.Get)
			st.PUT("/:id/working-hours", perm(auth.PermStaffUpdate), workingHoursHandler.Update)
			st.PUT("/:id/commission-tiers", perm(auth.PermStaffUpdate), staffHandler.UpdateCommissionTiers)
		}

		secured.GET("/audit-logs", perm(auth.PermAuditRead), auditLogsHandler.List)
	}

	return nil
}
