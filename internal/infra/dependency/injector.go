// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pairfin/backend/config"
	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/application/usecase/auth"
	"github.com/pairfin/backend/internal/application/usecase/matching"
	"github.com/pairfin/backend/internal/application/usecase/notification"
	"github.com/pairfin/backend/internal/application/usecase/obligation"
	"github.com/pairfin/backend/internal/domain/valueobject"
	"github.com/pairfin/backend/internal/infra/server/router"
	"github.com/pairfin/backend/internal/integration/adapters"
	"github.com/pairfin/backend/internal/integration/cache"
	"github.com/pairfin/backend/internal/integration/email"
	"github.com/pairfin/backend/internal/integration/email/templates"
	"github.com/pairfin/backend/internal/integration/entrypoint/controller"
	"github.com/pairfin/backend/internal/integration/entrypoint/middleware"
	"github.com/pairfin/backend/internal/integration/persistence"
)

// webhook throughput is provider-driven, so its limiter is far looser than
// the login limiter.
const (
	webhookRateLimit       = 300
	webhookRateLimitWindow = 1 * time.Minute
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
	Worker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The email sender may be nil, in which case the delivery worker is not built.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, sender adapter.EmailSender) (*Injector, error) {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	obligationRepo := persistence.NewObligationRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	matchRepo := persistence.NewMatchRepository(db)
	matchRunRepo := persistence.NewMatchRunRepository(db)
	notificationRepo := persistence.NewNotificationRepository(db)

	// Adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	eventCache := cache.NewEventCache(redisClient)

	// Matching engine
	matchingConfig := valueobject.DefaultMatchingConfig()
	matchingConfig.MinSuggestionConfidence = cfg.Matching.MinSuggestionConfidence
	matchingConfig.AdvanceGuardDays = cfg.Matching.AdvanceGuardDays

	advancer := matching.NewDueDateAdvancer(obligationRepo, matchingConfig)
	notifier := matching.NewPriceChangeNotifier(notificationRepo, userRepo)
	rematchUseCase := matching.NewRematchObligationUseCase(
		obligationRepo, accountRepo, transactionRepo, matchRepo, matchRunRepo, advancer, matchingConfig,
	)
	incomeUseCase := matching.NewMatchIncomeUseCase(
		transactionRepo, accountRepo, obligationRepo, matchRepo, advancer, matchingConfig,
	)
	processUseCase := matching.NewProcessTransactionUseCase(
		transactionRepo, accountRepo, obligationRepo, matchRepo, advancer, notifier, incomeUseCase, matchingConfig,
	)
	suggestUseCase := matching.NewSuggestMatchesUseCase(
		obligationRepo, accountRepo, transactionRepo, matchingConfig,
	)

	// Auth use cases
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Obligation use cases
	createObligationUseCase := obligation.NewCreateObligationUseCase(obligationRepo, rematchUseCase)
	getObligationUseCase := obligation.NewGetObligationUseCase(obligationRepo)
	listObligationsUseCase := obligation.NewListObligationsUseCase(obligationRepo)
	updateObligationUseCase := obligation.NewUpdateObligationUseCase(obligationRepo, rematchUseCase)
	deactivateObligationUseCase := obligation.NewDeactivateObligationUseCase(obligationRepo)

	// Notification use cases
	listNotificationsUseCase := notification.NewListNotificationsUseCase(notificationRepo)
	actionNotificationUseCase := notification.NewActionNotificationUseCase(notificationRepo)

	// Controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})
	authController := controller.NewAuthController(loginUseCase)
	obligationController := controller.NewObligationController(
		createObligationUseCase,
		getObligationUseCase,
		listObligationsUseCase,
		updateObligationUseCase,
		deactivateObligationUseCase,
		rematchUseCase,
		suggestUseCase,
	)
	notificationController := controller.NewNotificationController(
		listNotificationsUseCase,
		actionNotificationUseCase,
	)
	webhookController := controller.NewWebhookController(
		accountRepo, transactionRepo, eventCache, processUseCase,
	)

	// Middleware
	loginRateLimiter := middleware.NewRateLimiter()
	webhookRateLimiter := middleware.NewRateLimiterWithConfig(webhookRateLimit, webhookRateLimitWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		obligationController,
		notificationController,
		webhookController,
		loginRateLimiter,
		webhookRateLimiter,
		authMiddleware,
	)

	injector := &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}

	if sender != nil {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to build email renderer: %w", err)
		}
		injector.Worker = email.NewWorker(
			notificationRepo,
			userRepo,
			obligationRepo,
			transactionRepo,
			sender,
			renderer,
			email.WorkerConfig{
				PollInterval: cfg.Email.PollInterval,
				BatchSize:    cfg.Email.BatchSize,
			},
		)
	}

	return injector, nil
}
