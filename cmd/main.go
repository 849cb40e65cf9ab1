package main

import (
	"fmt"
	"log"

	"github.com/LuthandoGubevu/tutorhub/internal/config"
	"github.com/LuthandoGubevu/tutorhub/internal/cron"
	"github.com/LuthandoGubevu/tutorhub/internal/handlers"
	"github.com/LuthandoGubevu/tutorhub/internal/repository"
	"github.com/LuthandoGubevu/tutorhub/internal/services"
	"github.com/LuthandoGubevu/tutorhub/internal/watch"
	"github.com/LuthandoGubevu/tutorhub/pkg/advisor"
	"github.com/LuthandoGubevu/tutorhub/pkg/database"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db.DB)
	submissionRepo := repository.NewSubmissionRepository(db.DB)
	bookingRepo := repository.NewBookingRepository(db.DB)
	lessonFeedbackRepo := repository.NewLessonFeedbackRepository(db.DB)

	// Live submission fan-out
	hub := watch.NewHub()

	// Feedback advisor is optional; without a URL submissions simply carry
	// no suggestion.
	var advisorClient advisor.Advisor
	if cfg.AdvisorURL != "" {
		advisorClient = advisor.NewClient(cfg.AdvisorURL, cfg.AdvisorAPIKey, cfg.AdvisorTimeout)
	} else {
		log.Println("ADVISOR_URL not set, AI feedback suggestions disabled")
	}

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration, cfg.TutorEmails)
	submissionService := services.NewSubmissionService(submissionRepo, advisorClient, hub, cfg.AdvisorTimeout)
	bookingService := services.NewBookingService(bookingRepo, lessonFeedbackRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	tutorHandler := handlers.NewTutorHandler(submissionService)
	watchHandler := handlers.NewWatchHandler(submissionService, hub)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	lessonHandler := handlers.NewLessonHandler()

	handlers.RegisterValidators()

	router := gin.Default()
	router.Use(handlers.CORSMiddleware())

	api := router.Group("/api")

	// Public routes
	public := api.Group("/public")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
		public.GET("/lessons/:subject", lessonHandler.ListBySubject)
		public.GET("/lessons/:subject/:id", lessonHandler.Get)
		public.GET("/availability", bookingHandler.Availability)
	}

	// Navigation decisions work with or without a session
	api.GET("/navigate", handlers.OptionalAuthMiddleware(authService), authHandler.Navigate)

	// Authenticated routes
	protected := api.Group("/")
	protected.Use(handlers.AuthMiddleware(authService))
	{
		protected.GET("/profile", authHandler.Profile)

		protected.POST("/submissions", submissionHandler.SubmitAnswer)
		protected.GET("/submissions", submissionHandler.ListOwn)
		protected.GET("/submissions/watch", watchHandler.StreamOwn)
		protected.GET("/submissions/:id", submissionHandler.GetDetail)
		protected.GET("/submissions/:id/watch", watchHandler.StreamDetail)

		protected.POST("/bookings", bookingHandler.BookSession)
		protected.GET("/bookings", bookingHandler.ListOwn)

		protected.POST("/lesson-feedback", bookingHandler.SubmitLessonFeedback)
	}

	// Tutor-only routes
	tutor := api.Group("/tutor")
	tutor.Use(handlers.AuthMiddleware(authService))
	tutor.Use(handlers.TutorOnlyMiddleware())
	{
		tutor.GET("/submissions", tutorHandler.ListQueue)
		tutor.GET("/submissions/watch", watchHandler.StreamQueue)
		tutor.POST("/submissions/:id/grade", tutorHandler.Grade)
		tutor.GET("/stats", tutorHandler.Stats)
		tutor.GET("/bookings", bookingHandler.ListUpcoming)
		tutor.GET("/lesson-feedback/:lessonId", bookingHandler.GetLessonFeedback)
	}

	if cfg.SuggestionBackfillCron != "" {
		jobs := cron.StartJobs(cfg.SuggestionBackfillCron, submissionService)
		defer jobs.Stop()
	}

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Printf("Starting TutorHub server on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
