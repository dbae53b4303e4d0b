package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/homease/home-services-backend/internal/auth"
	"github.com/homease/home-services-backend/internal/booking"
	bookingHttp "github.com/homease/home-services-backend/internal/booking/http"
	"github.com/homease/home-services-backend/internal/catalog"
	catalogHttp "github.com/homease/home-services-backend/internal/catalog/http"
	"github.com/homease/home-services-backend/internal/i18n"
	"github.com/homease/home-services-backend/internal/payment"
	paymentHttp "github.com/homease/home-services-backend/internal/payment/http"
	"github.com/homease/home-services-backend/internal/provider"
	providerHttp "github.com/homease/home-services-backend/internal/provider/http"
	"github.com/homease/home-services-backend/internal/user"
	userHttp "github.com/homease/home-services-backend/internal/user/http"
)

// Config holds everything the router needs to assemble the API surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated allowed origins

	UserService     user.Service
	ProviderService provider.Service
	CatalogService  catalog.CatalogService
	BookingService  booking.Service
	PaymentService  payment.Service

	JWTManager *auth.JWTManager
	Translator *i18n.Translator

	StripeWebhookSecret    string
	StripeWebhookTolerance time.Duration

	Logger *zap.Logger
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth, i18n) and
// registering routes for the various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept-Language", "Stripe-Signature"}
	r.Use(cors.New(corsConfig))

	r.Use(i18n.Middleware(cfg.Translator))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	providerHandler := providerHttp.NewHandler(cfg.ProviderService)
	catalogHandler := catalogHttp.NewHandler(cfg.CatalogService, cfg.ProviderService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService)
	webhookHandler := paymentHttp.NewWebhookHandler(cfg.PaymentService, cfg.StripeWebhookSecret, cfg.StripeWebhookTolerance, cfg.Logger)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		providerHttp.RegisterRoutes(v1, providerHandler, authMiddleware)
		catalogHttp.RegisterRoutes(v1, catalogHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		paymentHttp.RegisterRoutes(v1, paymentHandler, webhookHandler, authMiddleware)
	}

	return r
}
