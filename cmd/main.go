package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/franciscosanchezn/gin-mexitoes-api/docs" // Import generated docs
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/auth"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/config"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/controllers"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/database"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/events"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/middleware"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/otp"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// app holds everything built at startup that needs closing on shutdown
type app struct {
	db         *gorm.DB
	publisher  events.Publisher
	progressor *services.StatusProgressor
	router     *controllers.Router
	closers    []func() error
}

// @title Mexitoes API
// @version 1.0
// @description Food ordering API: OTP login, menu, cart, orders and profile
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
// @securityDefinitions.apikey AdminAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and an orders:admin access token from /api/oauth/token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()

	// Initialize database, stores, services and controllers
	a, err := buildApp(context.Background(), configuration)
	checkPanicErr(err)
	defer a.close()

	// Start the order status progressor
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go a.progressor.Run(ctx)

	router := setupRouter(a.router)
	server := &http.Server{
		Addr:              fmt.Sprintf("%v:%d", configuration.Host, configuration.Port),
		Handler:           middleware.CORS(configuration.CORSOrigins, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
		gin.SetMode(gin.DebugMode)
	case "production":
		log.SetLevel(log.ErrorLevel)
		gin.SetMode(gin.ReleaseMode)
	default:
		log.SetLevel(log.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %s", conf)
	return conf
}

// setupDatabase connects, migrates and seeds the menu when it is empty
func setupDatabase(conf *config.Config) (*gorm.DB, error) {
	db, err := database.InitDatabase(conf.Database())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if _, err := database.SeedMenu(db); err != nil {
		return nil, fmt.Errorf("seed menu: %w", err)
	}
	return db, nil
}

// setupOTPStore uses Redis when REDIS_ADDR is set, the database otherwise
func setupOTPStore(ctx context.Context, conf *config.Config, db *gorm.DB) (otp.Store, func() error, error) {
	if conf.RedisAddr == "" {
		log.Info("OTP codes stored in the database")
		return otp.NewGormStore(db), nil, nil
	}
	client, err := otp.NewRedisClient(ctx, conf.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("addr", conf.RedisAddr).Info("OTP codes stored in Redis")
	return otp.NewRedisStore(client), client.Close, nil
}

// setupSender uses Fast2SMS when an API key is set, the demo log sender otherwise
func setupSender(conf *config.Config) otp.Sender {
	if conf.SMSAPIKey == "" {
		log.Warn("SMS_API_KEY not set, OTP codes will be written to the log")
		return otp.LogSender{}
	}
	return otp.NewFast2SMSSender(conf.SMSAPIURL, conf.SMSAPIKey)
}

// setupPublisher uses Kafka when brokers are configured, the log publisher otherwise
func setupPublisher(conf *config.Config) events.Publisher {
	if len(conf.KafkaBrokers) == 0 {
		log.Info("KAFKA_BROKERS not set, order events will be logged")
		return events.LogPublisher{}
	}
	log.WithField("brokers", conf.KafkaBrokers).WithField("topic", conf.KafkaTopic).Info("Publishing order events to Kafka")
	return events.NewKafkaPublisher(conf.KafkaBrokers, conf.KafkaTopic)
}

// buildApp wires stores, services and controllers from configuration
func buildApp(ctx context.Context, conf *config.Config) (*app, error) {
	db, err := setupDatabase(conf)
	if err != nil {
		return nil, err
	}

	a := &app{db: db}

	store, closeStore, err := setupOTPStore(ctx, conf, db)
	if err != nil {
		return nil, err
	}
	if closeStore != nil {
		a.closers = append(a.closers, closeStore)
	}

	a.publisher = setupPublisher(conf)
	a.closers = append(a.closers, a.publisher.Close)

	sessions := auth.NewSessionIssuer(conf.JWTSecret, conf.SessionTTL)
	oauthService := auth.NewOAuthService(db, conf.JWTSecret, conf.AdminTokenTTL)

	authService := services.NewAuthService(db, store, setupSender(conf), sessions, conf.OTPTTL)
	menuService := services.NewMenuService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, a.publisher)
	userService := services.NewUserService(db)
	clientService := services.NewClientService(db)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	a.progressor = services.NewStatusProgressor(db, a.publisher, conf.ProgressPollInterval)
	a.router = &controllers.Router{
		Auth:         controllers.NewAuthController(authService),
		Menu:         controllers.NewMenuController(menuService),
		Cart:         controllers.NewCartController(cartService),
		Orders:       controllers.NewOrderController(orderService),
		Profile:      controllers.NewProfileController(userService),
		Clients:      controllers.NewClientController(clientService),
		Health:       controllers.NewHealthController(sqlDB),
		TokenHandler: oauthService.HandleToken,
		SessionAuth:  middleware.SessionAuth(sessions),
		AdminAuth:    middleware.RequireAdmin(oauthService),
	}
	return a, nil
}

func (a *app) close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			log.WithError(err).Warn("Close failed")
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter(routes *controllers.Router) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log.StandardLogger()))

	routes.RegisterRoutes(router)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}
