package router

import (
	"github.com/anonto42/friendfeed/backend/internal/handlers"
	"github.com/anonto42/friendfeed/backend/internal/metrics"
	"github.com/anonto42/friendfeed/backend/internal/middleware"
	"github.com/anonto42/friendfeed/backend/internal/repositories"
	"github.com/anonto42/friendfeed/backend/internal/services"
	"github.com/anonto42/friendfeed/backend/internal/validators"
	"github.com/anonto42/friendfeed/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the process-wide collaborators the routes are built from.
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Auth guards every /api route except register and login.
	Auth echo.MiddlewareFunc
	// Tokens signs tokens returned by register and login.
	Tokens *middleware.TokenIssuer
	// LoginLimiter, when nil, is built from Config.
	LoginLimiter echo.MiddlewareFunc
}

// New returns an echo instance with the global middleware and every route mounted.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(d.Logger)

	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}
	config.SetupMiddleware(e, d.Config, d.Logger)
	SetupRoutes(e, d)
	return e
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, d Deps) {
	cfg := d.Config

	e.GET("/", handlers.Root)
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewGormUserRepository(d.DB)
	friendshipRepo := repositories.NewGormFriendshipRepository(d.DB)
	postRepo := repositories.NewGormPostRepository(d.DB)
	commentRepo := repositories.NewGormCommentRepository(d.DB)
	likeRepo := repositories.NewGormLikeRepository(d.DB)

	// --- Core services ---
	timelineLimits := services.PageLimits{DefaultLimit: cfg.TimelineDefaultLimit, MaxLimit: cfg.TimelineMaxLimit}
	commentLimits := services.PageLimits{DefaultLimit: cfg.CommentsDefaultLimit, MaxLimit: cfg.CommentsMaxLimit}
	aggregator := services.NewAggregator(commentRepo, likeRepo)

	var observer services.TimelineObserver
	if d.Metrics != nil {
		observer = d.Metrics
	}
	timeline := services.NewTimelineService(friendshipRepo, postRepo, aggregator, timelineLimits, observer, d.Logger)

	// --- Unprotected routes for authentication ---
	loginLimiter := d.LoginLimiter
	if loginLimiter == nil {
		loginLimiter = config.LoginRateLimiter(cfg.LoginRateLimitPerMin)
	}
	authHandler := handlers.NewAuthHandler(userRepo, d.Tokens, d.Logger)
	authHandler.RegisterAuthRoutes(e.Group("/api/auth"), loginLimiter)

	// --- Protected routes ---
	api := e.Group("/api", d.Auth)
	// Group middleware claims every unmatched /api path; take the catch-alls back so
	// unknown routes answer 404 before auth runs.
	e.RouteNotFound("/api", echo.NotFoundHandler)
	e.RouteNotFound("/api/*", echo.NotFoundHandler)

	handlers.NewUserHandler(handlers.UserHandlerDeps{
		Users:         userRepo,
		Friendships:   friendshipRepo,
		Posts:         postRepo,
		Comments:      commentRepo,
		Likes:         likeRepo,
		Aggregator:    aggregator,
		PostLimits:    timelineLimits,
		CommentLimits: commentLimits,
	}).RegisterUserRoutes(api)
	handlers.NewPostHandler(postRepo, aggregator).RegisterPostRoutes(api)
	handlers.NewFeedHandler(timeline).RegisterFeedRoutes(api)
	handlers.NewCommentHandler(commentRepo, postRepo, commentLimits).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(likeRepo, postRepo).RegisterLikeRoutes(api)
	handlers.NewFriendshipHandler(friendshipRepo, userRepo).RegisterFriendshipRoutes(api)

	d.Logger.Info("routes configured", zap.Int("count", len(e.Routes())))
}

// JWTAuth builds the default bearer middleware backed by the user store.
func JWTAuth(db *gorm.DB, tokens *middleware.TokenIssuer) echo.MiddlewareFunc {
	return middleware.JWTAuthMiddleware(tokens, repositories.NewGormUserRepository(db))
}
