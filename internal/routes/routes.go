package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/proofstore"
	"github.com/BruksfildServices01/barber-booking/internal/infra/redisstore"
	"github.com/BruksfildServices01/barber-booking/internal/infra/relay"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/infra/sheetdb"
	"github.com/BruksfildServices01/barber-booking/internal/infra/shopstatus"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/observability/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// RegisterRoutes wires the application and returns a function that flushes
// background work on shutdown.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	reg prometheus.Registerer,
) (func(), error) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	clock := timezone.NewClock(cfg.ShopTimezone)
	bookingMetrics := metrics.NewBookingMetrics(reg)

	forms := redisstore.NewFormStore(rdb, cfg.FormTTL)
	ledger := infraRepo.NewBookingGormRepository(db)

	store, err := sheetdb.New(cfg.ReservationStoreURL, cfg.HTTPTimeout)
	if err != nil {
		return nil, err
	}

	var notifier domain.Relay = relay.Disabled{}
	if cfg.RelayURL != "" {
		c, err := relay.New(cfg.RelayURL, cfg.HTTPTimeout)
		if err != nil {
			return nil, err
		}
		notifier = c
	} else {
		log.Warn().Msg("RELAY_URL not set, booking notifications disabled")
	}

	var archive domain.ProofArchive
	if cfg.ProofBucket != "" {
		a, err := proofstore.NewS3Archive(proofstore.Config{
			Bucket:          cfg.ProofBucket,
			Region:          cfg.ProofRegion,
			Endpoint:        cfg.ProofEndpoint,
			AccessKeyID:     cfg.ProofAccessKeyID,
			SecretAccessKey: cfg.ProofSecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		archive = a
	}

	statusSource := shopstatus.New(cfg.ShopStatusURL, cfg.HTTPTimeout)

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	// ======================================================
	// 🧠 USE CASES — BOOKING
	// ======================================================
	openFormUC := ucBooking.NewOpenForm(forms, clock, auditDispatcher)
	getFormUC := ucBooking.NewGetForm(forms)
	selectSlotsUC := ucBooking.NewSelectSlots(forms, store, clock, bookingMetrics)
	submitBookingUC := ucBooking.NewSubmitBooking(ucBooking.SubmitBookingDeps{
		Forms:           forms,
		Store:           store,
		Relay:           notifier,
		Archive:         archive,
		Ledger:          ledger,
		Audit:           auditDispatcher,
		Metrics:         bookingMetrics,
		Clock:           clock,
		PhoneRegion:     cfg.PhoneRegion,
		FallbackContact: cfg.FallbackContact,
	})
	checkShopStatusUC := ucBooking.NewCheckShopStatus(statusSource, bookingMetrics)
	listBookingsUC := ucBooking.NewListBookingsByDate(ledger)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		openFormUC,
		getFormUC,
		selectSlotsUC,
		submitBookingUC,
		cfg.FallbackContact,
	)
	shopHandler := handlers.NewShopHandler(checkShopStatusUC)
	operatorHandler := handlers.NewOperatorHandler(cfg, listBookingsUC, clock)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/shop/status", shopHandler.Status)
			publicAPI.GET("/services", shopHandler.Services)

			publicAPI.POST("/forms", bookingHandler.Open)
			publicAPI.GET("/forms/:id", bookingHandler.Get)
			publicAPI.PUT("/forms/:id/selection", bookingHandler.Select)
			publicAPI.POST("/forms/:id/submit", bookingHandler.Submit)
		}

		// ------------------------------
		// 🔐 OPERADOR
		// ------------------------------
		operatorAPI := api.Group("/operator")
		operatorAPI.POST("/login", operatorHandler.Login)

		secured := operatorAPI.Group("/")
		secured.Use(middleware.OperatorAuth(cfg))
		{
			secured.GET("/bookings", operatorHandler.ListBookings)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return auditDispatcher.Close, nil
}
