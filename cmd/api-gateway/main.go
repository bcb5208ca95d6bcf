package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/mentorhub-api/internal/handler"
	"github.com/noah-isme/mentorhub-api/internal/middleware"
	"github.com/noah-isme/mentorhub-api/internal/models"
	"github.com/noah-isme/mentorhub-api/internal/repository"
	"github.com/noah-isme/mentorhub-api/internal/service"
	"github.com/noah-isme/mentorhub-api/pkg/cache"
	"github.com/noah-isme/mentorhub-api/pkg/config"
	"github.com/noah-isme/mentorhub-api/pkg/database"
	"github.com/noah-isme/mentorhub-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/mentorhub-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/mentorhub-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	mentorRepo := repository.NewMentorRepository(db)
	expertiseRepo := repository.NewExpertiseRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	var verifier service.CredentialVerifier = service.BcryptVerifier{}
	if cfg.Auth.PlaintextPasswords {
		logr.Warn("plaintext password verification enabled")
		verifier = service.PlaintextVerifier{}
	}

	authSvc := service.NewAuthService(mentorRepo, userRepo, verifier, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
	})
	mentorSvc := service.NewMentorService(mentorRepo, expertiseRepo, cacheRepo, cfg.Mentors.DirectoryCacheTTL, validate, logr)
	sessionSvc := service.NewSessionService(sessionRepo, validate, logr)
	bookingSvc := service.NewBookingService(bookingRepo, mentorRepo, validate, logr)
	profileSvc := service.NewProfileService(mentorRepo, sessionRepo, logr)
	quoteSvc := service.NewQuoteService(cfg.Quotes.BaseURL, cfg.Quotes.Timeout, cacheRepo, cfg.Quotes.CacheTTL, logr)
	metricsSvc := service.NewMetricsService()

	authHandler := handler.NewAuthHandler(authSvc)
	mentorHandler := handler.NewMentorHandler(authSvc, mentorSvc, sessionSvc, bookingSvc, metricsSvc)
	userHandler := handler.NewUserHandler(authSvc, profileSvc, bookingSvc)
	quoteHandler := handler.NewQuoteHandler(quoteSvc, metricsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/mentor/signup", authHandler.MentorSignup)
	auth.POST("/mentor/signin", authHandler.MentorSignin)
	auth.POST("/student/signup", authHandler.StudentSignup)
	auth.POST("/student/signin", authHandler.StudentSignin)

	mentor := api.Group("/mentor")
	mentor.POST("/profile", mentorHandler.Profile)
	mentor.POST("/live-session", mentorHandler.CreateLiveSession)
	mentor.GET("/booking", middleware.JWT(authSvc, models.RoleMentor), mentorHandler.Bookings)
	mentor.POST("/acknowledge", mentorHandler.Acknowledge)
	mentor.GET("/name/:token", mentorHandler.Name)
	mentor.GET("/all", mentorHandler.Directory)
	mentor.GET("/tags", mentorHandler.Tags)
	mentor.GET("/by-tags/:tags", mentorHandler.ByTags)
	mentor.GET("/sessions/:id", mentorHandler.Sessions)
	mentor.GET("/:id", mentorHandler.Get)

	user := api.Group("/user")
	user.GET("/mentor/:id", userHandler.Mentor)
	user.POST("/booking/:id", userHandler.CreateBooking)

	api.GET("/demo-trading/quote", quoteHandler.Quote)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	srv := &http.Server{Addr: addr, Handler: r}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
