package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/homease/home-services-backend/internal/api"
	"github.com/homease/home-services-backend/internal/auth"
	"github.com/homease/home-services-backend/internal/booking"
	"github.com/homease/home-services-backend/internal/catalog"
	"github.com/homease/home-services-backend/internal/i18n"
	"github.com/homease/home-services-backend/internal/payment"
	"github.com/homease/home-services-backend/internal/provider"
	"github.com/homease/home-services-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	RedisClient  *redis.Client // nil disables the translation cache
	Logger       *zap.Logger

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	DefaultLanguage string
	I18nCacheTTL    time.Duration

	StripeSecretKey        string
	StripeWebhookSecret    string
	StripeWebhookTolerance time.Duration
	PlatformFeePercentage  float64
	PaymentCurrency        string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Localization
	i18nStore := i18n.NewPgxStore(cfg.DBPool)
	translator := i18n.NewTranslator(i18nStore, cfg.RedisClient, cfg.DefaultLanguage, cfg.I18nCacheTTL, cfg.Logger)

	// Provider Module
	providerRepo := provider.NewPgxRepository(cfg.DBPool)
	providerService := provider.NewService(providerRepo)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, providerService)

	// Catalog Module
	catalogRepo := catalog.NewPgxRepository(cfg.DBPool)
	catalogService := catalog.NewService(catalogRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, catalogService, providerService, cfg.Logger)

	// Payment Module
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey)
	paymentRepo := payment.NewPgxRepository(cfg.DBPool)
	paymentService := payment.NewService(paymentRepo, gateway, cfg.PlatformFeePercentage, cfg.PaymentCurrency, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,

		UserService:     userService,
		ProviderService: providerService,
		CatalogService:  catalogService,
		BookingService:  bookingService,
		PaymentService:  paymentService,

		JWTManager: jwtManager,
		Translator: translator,

		StripeWebhookSecret:    cfg.StripeWebhookSecret,
		StripeWebhookTolerance: cfg.StripeWebhookTolerance,

		Logger: cfg.Logger,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
