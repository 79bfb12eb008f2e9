// @title Quiz Folio API
// @version 1.0
// @description Quiz, leaderboard, HR outreach and contact form API.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quiz-folio/cmd/api/docs"
	"quiz-folio/internal/adapter"
	"quiz-folio/internal/adapter/mail"
	"quiz-folio/internal/adapter/questiongen"
	"quiz-folio/internal/adapter/storage"
	"quiz-folio/internal/cache"
	"quiz-folio/internal/config"
	"quiz-folio/internal/database"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/handler"
	"quiz-folio/internal/logger"
	"quiz-folio/internal/middleware"
	"quiz-folio/internal/repository"
	"quiz-folio/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	questionRepo := repository.NewSQLXQuestionRepository(db)
	submissionRepo := repository.NewSQLXSubmissionRepository(db)
	hrContactRepo := repository.NewSQLXHRContactRepository(db)
	contactQueryRepo := repository.NewSQLXContactQueryRepository(db)

	// The cache is optional; services skip it when nil.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized")
	} else {
		appLogger.Warn("Redis cache is not configured. Running without cache.")
	}

	sender, err := mail.NewEmailSender(cfg.Mail)
	if err != nil {
		appLogger.Fatal("Failed to create email sender", zap.Error(err))
	}
	appLogger.Info("Email sender initialized", zap.String("provider", sender.Name()))

	resumeStore, err := storage.NewResumeStore(context.Background(), cfg.Resume)
	if err != nil {
		appLogger.Fatal("Failed to create resume store", zap.Error(err))
	}

	var generator domain.QuestionGenerator
	if cfg.LLM.Server != "" {
		generator, err = questiongen.NewOllamaQuestionGenerator(cfg.LLM)
		if err != nil {
			appLogger.Fatal("Failed to create question generator", zap.Error(err))
		}
		appLogger.Info("Question generator initialized", zap.String("model", cfg.LLM.Model))
	}

	dispatcher := service.NewMailDispatcher(cfg.Mail)

	leaderboardService := service.NewLeaderboardService(submissionRepo, cacheAdapter, cfg.Quiz)
	quizService := service.NewQuizService(questionRepo, submissionRepo, cacheAdapter, leaderboardService, cfg.Quiz)
	questionService := service.NewQuestionService(questionRepo, cacheAdapter, generator)
	resumeMailer := service.NewResumeMailer(sender, resumeStore, hrContactRepo, cfg.Outreach, cfg.Resume)
	hrContactService := service.NewHRContactService(hrContactRepo, resumeMailer, dispatcher)
	contactService := service.NewContactService(contactQueryRepo, sender, dispatcher, cfg.Admin, cfg.Outreach)

	authService, err := service.NewAuthService(cfg.JWT, cfg.GoogleOAuth, cfg.Admin)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	quizHandler := handler.NewQuizHandler(quizService, leaderboardService)
	questionHandler := handler.NewQuestionHandler(questionService)
	hrContactHandler := handler.NewHRContactHandler(hrContactService)
	contactHandler := handler.NewContactHandler(contactService)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(db, cacheAdapter)
	vm := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Get("/health", healthHandler.Health)

	authGroup := api.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	api.Get("/quiz", quizHandler.GetQuiz)
	api.Post("/quiz/submit", quizHandler.SubmitQuiz)
	api.Post("/quiz/check", quizHandler.CheckAnswer)
	api.Get("/leaderboard", vm.ValidateLeaderboardLimit(), quizHandler.GetLeaderboard)
	api.Post("/contact", contactHandler.SubmitContactQuery)

	admin := api.Group("/admin", middleware.Protected(authService))
	admin.Get("/me", authHandler.Me)

	questions := admin.Group("/questions")
	questions.Get("/", vm.ValidateApprovalLevel(), questionHandler.ListQuestions)
	questions.Post("/", questionHandler.CreateQuestion)
	questions.Post("/generate", questionHandler.GenerateQuestions)
	questions.Get("/:id", vm.ValidateID(), questionHandler.GetQuestion)
	questions.Put("/:id", vm.ValidateID(), questionHandler.UpdateQuestion)
	questions.Delete("/:id", vm.ValidateID(), questionHandler.DiscardQuestion)
	questions.Post("/:id/approval", vm.ValidateID(), questionHandler.ChangeApprovalLevel)

	hrContacts := admin.Group("/hr-contacts")
	hrContacts.Get("/", vm.ValidatePagination(), hrContactHandler.SearchHRContacts)
	hrContacts.Post("/", hrContactHandler.CreateHRContact)
	hrContacts.Post("/send", hrContactHandler.SaveAndSendResume)
	hrContacts.Get("/export", hrContactHandler.ExportHRContacts)
	hrContacts.Get("/:id", vm.ValidateID(), hrContactHandler.GetHRContact)
	hrContacts.Put("/:id", vm.ValidateID(), hrContactHandler.UpdateHRContact)
	hrContacts.Delete("/:id", vm.ValidateID(), hrContactHandler.DeleteHRContact)
	hrContacts.Post("/:id/send", vm.ValidateID(), hrContactHandler.SendResume)

	admin.Get("/leaderboard/export", vm.ValidateLeaderboardLimit(), vm.ValidateExportFormat(), quizHandler.ExportLeaderboard)
	admin.Get("/contact-queries", vm.ValidatePagination(), contactHandler.ListContactQueries)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	// Queued mails still go out before the process exits.
	if err := dispatcher.Shutdown(ctx); err != nil {
		appLogger.Error("Mail dispatcher did not drain in time", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
