package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/audit"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/cache"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/handlers"
	infraRepo "github.com/TSUGO-CORPORATED/tsugo-server/internal/infra/repository"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/metrics"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/middleware"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/relay"
	ucAppointment "github.com/TSUGO-CORPORATED/tsugo-server/internal/usecase/appointment"
)

// Deps carries the process-level handles routes need; main owns their
// lifecycle.
type Deps struct {
	DB      *gorm.DB
	Cache   cache.Cache
	Hub     *relay.Hub
	Metrics *metrics.Metrics
	Audit   *audit.Dispatcher
	Log     zerolog.Logger
}

func Register(r *gin.Engine, deps Deps) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(deps.DB)
	messageRepo := infraRepo.NewMessageGormRepository(deps.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, deps.Audit)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, deps.Audit)
	findOpenUC := ucAppointment.NewFindOpenAppointments(appointmentRepo, deps.Log)
	overviewUC := ucAppointment.NewAppointmentOverview(appointmentRepo, deps.Log)
	detailUC := ucAppointment.NewAppointmentDetail(appointmentRepo)
	acceptUC := ucAppointment.NewAcceptAppointment(appointmentRepo, deps.Audit)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, deps.Audit)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, deps.Audit)
	reviewUC := ucAppointment.NewAddReview(appointmentRepo, deps.Cache, deps.Audit, deps.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	userHandler := handlers.NewUserHandler(deps.DB, deps.Cache, deps.Audit, deps.Metrics, deps.Log)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		findOpenUC,
		overviewUC,
		detailUC,
		acceptUC,
		cancelUC,
		completeUC,
		reviewUC,
	)

	messageHandler := handlers.NewMessageHandler(messageRepo, deps.Metrics)

	relayHandler := relay.NewHandler(deps.Hub, messageRepo, deps.Metrics, deps.Log)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "tsugo-server is up")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ------------------------------
	// USER
	// ------------------------------
	r.POST("/user", userHandler.Create)
	r.GET("/user/check/:email", userHandler.Check)
	r.GET("/user/detail/:uid", userHandler.GetDetail)
	r.GET("/user/:uid", userHandler.GetSummary)
	r.PUT("/user", userHandler.Update)
	r.DELETE("/user/:uid", userHandler.Delete)

	// ------------------------------
	// APPOINTMENT
	// ------------------------------
	r.POST("/appointment", appointmentHandler.Create)
	r.PUT("/appointment", appointmentHandler.Update)
	r.GET("/appointment/find/:userId", appointmentHandler.Find)
	r.GET("/appointment/overview/:role/:timeframe/:userId", appointmentHandler.Overview)
	r.GET("/appointment/detail/:appointmentId", appointmentHandler.Detail)
	r.PATCH("/appointment/accept/:appointmentId/:interpreterUserId", appointmentHandler.Accept)
	r.PATCH("/appointment/cancel/:appointmentId", appointmentHandler.Cancel)
	r.PATCH("/appointment/complete/:appointmentId", appointmentHandler.Complete)
	r.PATCH("/appointment/review", appointmentHandler.Review)

	// ------------------------------
	// MESSAGE
	// ------------------------------
	r.POST("/message", messageHandler.Create)
	r.GET("/message/:appointmentId", messageHandler.List)

	// ------------------------------
	// REALTIME / OPS
	// ------------------------------
	r.GET("/ws", relayHandler.HandleConnect)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
