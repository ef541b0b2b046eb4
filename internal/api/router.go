package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/developia/translation-office/docs"
	"github.com/developia/translation-office/internal/api/handler"
	"github.com/developia/translation-office/internal/api/middleware"
	"github.com/developia/translation-office/internal/core/ports"
)

// RouterDeps bundles everything the HTTP layer needs. The repositories and
// services are constructed in main and injected here.
type RouterDeps struct {
	JWTSecret string

	Mongo *mongo.Database
	Redis *redis.Client

	Users ports.UserRepository

	Auth     ports.AuthService
	UserSvc  ports.UserService
	Projects ports.ProjectService
	Feedback ports.FeedbackService

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echoprometheus.NewMiddleware("translation"))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.UserSvc)
	projectHandler := handler.NewProjectHandler(deps.Projects)
	feedbackHandler := handler.NewFeedbackHandler(deps.Feedback)

	// --- Public routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Authenticated routes ---
	identity := middleware.Identity(deps.JWTSecret, deps.Users)

	v1 := e.Group("/v1", identity)

	v1.GET("/me", userHandler.Profile)
	v1.PUT("/me/languages", userHandler.ReplaceLanguages)

	v1.POST("/projects", projectHandler.Create)
	v1.GET("/projects", projectHandler.List)
	v1.GET("/projects/:id", projectHandler.Get)
	v1.GET("/projects/:id/original", projectHandler.DownloadOriginal)
	v1.GET("/projects/:id/translation", projectHandler.DownloadTranslated)
	v1.POST("/projects/:id/translation", projectHandler.UploadTranslation)
	v1.POST("/projects/:id/approve", projectHandler.Approve)
	v1.POST("/projects/:id/reject", projectHandler.Reject)
	v1.POST("/projects/:id/close", projectHandler.Close, middleware.RBAC("admin", "system"))

	v1.GET("/projects/:id/feedback", feedbackHandler.Get)
	v1.PUT("/projects/:id/feedback", feedbackHandler.Save)
	v1.DELETE("/projects/:id/feedback", feedbackHandler.Delete)

	// --- Internal routes (privileged tokens only; enforced in the service) ---
	internal := e.Group("/internal", identity)
	internal.POST("/feedback/query", feedbackHandler.Bulk)
	// Admin accounts are not self-service: the public /auth/register carries
	// no identity, so role=admin only succeeds through this identity-bound
	// route with an admin or system token.
	internal.POST("/users", authHandler.Register)

	return e
}
