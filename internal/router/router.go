package router

import (
	"parvarish/internal/config"
	"parvarish/internal/middleware"
	"parvarish/internal/modules/admin"
	"parvarish/internal/modules/auth"
	"parvarish/internal/modules/booking"
	"parvarish/internal/modules/catalog"
	"parvarish/internal/modules/health"
	"parvarish/internal/modules/notification"
	"parvarish/internal/modules/pages"
	jwtsvc "parvarish/internal/pkg/jwt"
	"parvarish/internal/pkg/metrics"
	"parvarish/internal/pkg/session"
	"parvarish/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Pinger  health.Pinger
	Metrics *metrics.Metrics
	Hub     *notification.Hub
	Version string
}

// App is the assembled HTTP surface plus the services the CLI tools and
// tests reach for directly.
type App struct {
	Engine  *gin.Engine
	Tokens  *jwtsvc.Service
	Admin   *admin.Service
	Booking *booking.Service

	// Notifier delivers booking events asynchronously; Wait drains it.
	Notifier *notification.Notifier
}

func New(d Deps) *App {
	cfg := d.Config
	m := d.Metrics
	if m == nil {
		m = metrics.New()
	}
	hub := d.Hub
	if hub == nil {
		hub = notification.NewHub()
	}

	tokens := jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL)
	cookie := session.NewCookie(tokens.TTL(), cfg.CookieSecure)

	parentRepo := repository.NewParentRepository(d.DB)
	daycareRepo := repository.NewDaycareRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)

	authService := auth.NewService(parentRepo, daycareRepo, tokens, m)
	catalogService := catalog.NewService(daycareRepo)
	notifier := notification.NewNotifier(hub)
	bookingService := booking.NewService(bookingRepo, notifier, m)
	adminService := admin.NewService(daycareRepo)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		m.Middleware(),
		middleware.Access(middleware.DefaultPolicy(), tokens, cookie),
	)

	health.NewHandler(d.Pinger, d.Version).RegisterRoutes(r)
	r.GET("/metrics", m.Handler())
	pages.NewHandler().RegisterRoutes(r)

	api := r.Group("/api")
	{
		auth.NewHandler(authService, cookie).RegisterRoutes(api)
		catalog.NewHandler(catalogService).RegisterRoutes(api)
		booking.NewHandler(bookingService).RegisterRoutes(api)
		notification.NewHandler(hub, cfg.CORSAllowedOrigins).RegisterRoutes(api)
	}

	return &App{
		Engine:   r,
		Tokens:   tokens,
		Admin:    adminService,
		Booking:  bookingService,
		Notifier: notifier,
	}
}
