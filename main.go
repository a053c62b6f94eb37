package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lexaid/config"
	"lexaid/cron"
	"lexaid/database"
	"lexaid/database/repository"
	"lexaid/handlers"
	"lexaid/middleware"
	"lexaid/routes"
	"lexaid/services/billing"
	"lexaid/services/drafting"
	"lexaid/services/intelligence"
	"lexaid/services/notification"
	"lexaid/services/records"
	"lexaid/services/storage"
	"lexaid/services/tasks"
	"lexaid/services/user"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Backends. Anything that fails to come up leaves its services
	// answering 503 instead of stopping the server.
	var repos repository.Set
	if err := database.InitDB(ctx); err != nil {
		logger.Error("MongoDB unavailable", zap.Error(err))
	} else if set, err := repository.NewMongoSet(ctx, database.DB()); err != nil {
		logger.Error("Failed to prepare collections", zap.Error(err))
	} else {
		repos = *set
	}

	if err := utils.InitCache(); err != nil {
		logger.Error("Workspace cache unavailable", zap.Error(err))
	}
	if err := utils.InitAuthCache(); err != nil {
		logger.Warn("Auth cache unavailable, tokens will be checked against MongoDB", zap.Error(err))
	}

	if err := utils.FirebaseInit(ctx); err != nil {
		logger.Warn("Firebase unavailable, Google sign-in and push notifications disabled", zap.Error(err))
	}
	stripe.Key = config.AppConfig.StripeKey

	var generator intelligence.Generator
	if gemini, err := intelligence.NewGeminiClient(ctx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel); err != nil {
		logger.Error("Gemini unavailable", zap.Error(err))
	} else {
		defer gemini.Close()
		generator = gemini
	}

	var transcriber intelligence.Transcriber
	if speech, err := intelligence.NewSpeechTranscriber(ctx, config.AppConfig.GoogleServiceAccountFile); err != nil {
		logger.Warn("Speech-to-text unavailable", zap.Error(err))
	} else {
		defer speech.Close()
		transcriber = speech
	}

	// Services.
	userService := &user.DefaultUserService{
		Repo:     repos.Profiles,
		Cache:    utils.GetAuthCacheClient(),
		TokenTTL: config.AppConfig.TokenTTL,
	}
	if utils.FirebaseAuth != nil {
		userService.Verifier = &user.FirebaseVerifier{Client: utils.FirebaseAuth}
	}

	reminderClient := asynq.NewClient(cron.RedisOpt())
	defer reminderClient.Close()
	reminders := &tasks.ReminderScheduler{Client: reminderClient}

	draftService := &records.DefaultDraftService{Drafts: repos.Drafts, Cases: repos.Cases}
	clauseService := &records.DefaultClauseService{Clauses: repos.Clauses}
	caseService := &records.DefaultCaseService{Cases: repos.Cases, Drafts: repos.Drafts, Reminders: reminders}

	aiService := intelligence.NewAIService(generator, config.AppConfig.AITimeout)
	workspace := &drafting.DefaultWorkspaceService{
		AI:     aiService,
		Drafts: draftService,
		Cases:  caseService,
	}
	if c := utils.GetCacheClient(); c != nil {
		workspace.Store = drafting.NewRedisWorkspaceStore(c, config.AppConfig.WorkspaceTTL)
	}

	billingService := &billing.DefaultBillingService{
		Gateway:       newGateway(),
		Profiles:      userService,
		Currency:      config.AppConfig.PaymentCurrency,
		WebhookSecret: config.AppConfig.StripeWebhookSecret,
	}

	photos := &storage.PhotoService{Profiles: userService}
	if st, closer := newStorage(ctx); st != nil {
		photos.Storage = st
		if closer != nil {
			defer closer()
		}
	}

	if utils.FCMClient != nil {
		notifier, err := notification.NewDefaultNotificationService(userService, &notification.FCMSender{Client: utils.FCMClient})
		if err != nil {
			logger.Fatal("Failed to build notification service", zap.Error(err))
		}
		worker := cron.InitReminderWorker(ctx, &tasks.HearingReminderHandler{Cases: caseService, Notifier: notifier})
		defer worker.Shutdown()
	} else {
		logger.Warn("Reminder worker not started, FCM is not configured")
	}

	utils.StartHealthMonitor(ctx, []*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	handlerBundle := &handlers.HandlerBundle{
		Auth:             userService,
		AuthHandler:      &handlers.AuthHandler{Auth: userService},
		DocumentsHandler: &handlers.DocumentsHandler{},
		AIHandler:        &handlers.AIHandler{AI: aiService, Transcriber: transcriber},
		DraftingHandler:  &handlers.DraftingHandler{Workspace: workspace},
		DraftHandler:     &handlers.DraftHandler{Drafts: draftService},
		ClauseHandler:    &handlers.ClauseHandler{Clauses: clauseService},
		CaseHandler:      &handlers.CaseHandler{Cases: caseService},
		ProfileHandler:   &handlers.ProfileHandler{Profiles: userService, Photos: photos},
		BillingHandler:   &handlers.BillingHandler{Billing: billingService},
		HealthHandler:    &handlers.HealthHandler{},
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.AllowedOrigins, config.AppConfig.MaxRequestsPerMin)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server is shutting down")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	utils.CloseCaches()
	database.Disconnect(shutdownCtx)
	logger.Info("Server stopped gracefully")
}

// newGateway picks the configured payment gateway.
func newGateway() billing.Gateway {
	switch config.AppConfig.PaymentGateway {
	case billing.GatewayStripe:
		return billing.StripeGateway{}
	case billing.GatewayFlutterwave:
		return billing.NewFlutterwaveGateway(config.AppConfig.FlutterwaveBaseURL,
			config.AppConfig.FlutterwavePublicKey, config.AppConfig.FlutterwaveSecretKey)
	}
	utils.GetLogger().Warn("Unknown payment gateway, billing disabled", zap.String("gateway", config.AppConfig.PaymentGateway))
	return nil
}

// newStorage builds the configured photo backend and its cleanup, if any.
func newStorage(ctx context.Context) (storage.StorageService, func()) {
	logger := utils.GetLogger()
	switch config.AppConfig.StorageBackend {
	case "gcs":
		st, err := storage.NewGCSStorage(ctx, config.AppConfig.GoogleServiceAccountFile, config.AppConfig.GCSBucket)
		if err != nil {
			logger.Warn("GCS unavailable, photo uploads disabled", zap.Error(err))
			return nil, nil
		}
		return st, func() { st.Close() }
	default:
		cld, err := utils.Cloudinary()
		if err != nil {
			logger.Warn("Cloudinary unavailable, photo uploads disabled", zap.Error(err))
			return nil, nil
		}
		return storage.NewCloudinaryStorage(cld), nil
	}
}
