package router

import (
	"time"

	"barveredales/internal/config"
	"barveredales/internal/handler"
	"barveredales/internal/infra"
	"barveredales/internal/middleware"
	"barveredales/internal/model"
	"barveredales/internal/repository"
	"barveredales/internal/service"
	"barveredales/internal/store"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Gateway/Service ← Store ← Slot
func New(cfg *config.Config, st *store.Store, rdb *redis.Client, notifier service.CodeNotifier) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Services ─────────────────────────────────────────────────────────────
	auditSvc := service.NewAuditLog(st)
	sessionSvc := service.NewSessionService(st)
	authSvc := service.NewAuthService(st, st.Codec(), sessionSvc, auditSvc)
	resetSvc := service.NewResetService(st, auditSvc, notifier)

	receipts := infra.NewReceiptRenderer("BAR VEREDALES", cfg.ReceiptStoragePath)
	paymentSvc := service.NewPaymentService(st, receipts)

	// ── Account gateway: remote first, local fallback ────────────────────────
	tokenTTL := time.Duration(cfg.JWTExpirationHours) * time.Hour
	local := repository.NewLocalGateway(authSvc, cfg.JWTSecret, tokenTTL)
	var gateway repository.AccountGateway = local
	if cfg.RemoteAPIURL != "" {
		remote := repository.NewRemoteGateway(cfg.RemoteAPIURL,
			time.Duration(cfg.RemoteAPITimeoutSeconds)*time.Second)
		breaker := infra.NewCircuitBreaker(infra.DefaultCBConfig())
		gateway = repository.NewFailoverGateway(remote, local, breaker)
	}

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(gateway, sessionSvc)
	resetH := handler.NewResetHandler(resetSvc, cfg.Env != "production")
	usersH := handler.NewUsersHandler(authSvc)
	adminH := handler.NewAdminHandler(st, auditSvc)
	paymentsH := handler.NewPaymentsHandler(paymentSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/api/health", handler.Health(st, rdb))

	api := r.Group("/api")
	{
		api.POST("/register", middleware.Maintenance(st), authH.Register)
		api.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		api.POST("/logout", authH.Logout)
		api.GET("/session/:id", authH.Session)

		password := api.Group("/password")
		{
			password.POST("/forgot", resetH.Forgot)
			password.POST("/verify", resetH.Verify)
			password.POST("/resend", resetH.Resend)
		}
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		pagos := v1.Group("/pagos", middleware.RequireRole(model.RoleUser, model.RoleAdmin), middleware.Maintenance(st))
		{
			pagos.POST("", paymentsH.Create)
			pagos.GET("/:id/recibo", paymentsH.Receipt)
		}

		admin := v1.Group("", middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/pagos", paymentsH.List)
			admin.GET("/pagos/:id", paymentsH.Get)

			admin.GET("/usuarios", usersH.List)
			admin.GET("/usuarios/:id", usersH.Get)
			admin.PUT("/usuarios/:id", usersH.Update)
			admin.DELETE("/usuarios/:id", usersH.Delete)

			admin.GET("/logs", adminH.Logs)
			admin.GET("/settings", adminH.GetSettings)
			admin.PUT("/settings", adminH.UpdateSettings)
			admin.GET("/stats", adminH.Stats)
			admin.GET("/export", adminH.Export)
			admin.POST("/import", adminH.Import)
			admin.POST("/clear", adminH.Clear)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
