package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mockera_backend/internal/config"
	"mockera_backend/internal/controller"
	"mockera_backend/internal/repository"
	"mockera_backend/internal/service"
	"mockera_backend/internal/util"
	"mockera_backend/pkg/configwatcher"
	"mockera_backend/pkg/database"
	"mockera_backend/pkg/events"
	"mockera_backend/pkg/logger"
	"mockera_backend/pkg/monitoring"
	"mockera_backend/pkg/security"
	"mockera_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher *events.Publisher

	services       *services
	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	test      *repository.TestRepository
	attempt   *repository.AttemptRepository
	user      *repository.UserRepository
	analytics *repository.AnalyticsRepository
}

type services struct {
	storage     *service.StorageService
	test        *service.TestService
	leaderboard *service.LeaderboardService
	attempt     *service.AttemptService
	user        *service.UserService
	analytics   *service.AnalyticsService
	backfill    *service.BackfillService
}

type controllers struct {
	health      *controller.HealthController
	attempt     *controller.AttemptController
	leaderboard *controller.LeaderboardController
	user        *controller.UserController
	test        *controller.TestController
	analytics   *controller.AnalyticsController
	admin       *controller.AdminController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		test:      repository.NewTestRepository(db),
		attempt:   repository.NewAttemptRepository(db),
		user:      repository.NewUserRepository(db),
		analytics: repository.NewAnalyticsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.test = service.NewTestService(repos.test)
	s.leaderboard = service.NewLeaderboardService(repos.user, repos.attempt, rdb)
	s.attempt = service.NewAttemptService(repos.test, repos.attempt, repos.user, db, a.Publisher, s.leaderboard)
	s.user = service.NewUserService(repos.user, repos.attempt, repos.test, db, s.leaderboard)
	s.analytics = service.NewAnalyticsService(repos.analytics)
	s.backfill = service.NewBackfillService(repos.test, repos.attempt, repos.user, s.leaderboard)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		health:      controller.NewHealthController(db),
		attempt:     controller.NewAttemptController(s.attempt),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		user:        controller.NewUserController(s.user),
		test:        controller.NewTestController(s.test, s.storage),
		analytics:   controller.NewAnalyticsController(s.analytics),
		admin:       controller.NewAdminController(s.backfill),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.ShouldAutoMigrate())
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 排行榜缓存可降级，Redis 不可用时只记告警继续启动
		logger.Log.Warn("Redis unavailable, leaderboard cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.RabbitMQ.Enabled {
		publisher, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			logger.Log.Warn("RabbitMQ unavailable, event publishing disabled", zap.Error(err))
		} else {
			app.Publisher = publisher
		}
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("mockera-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置热更新：认证中间件经共享指针读取，改密钥无需重启
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		reloaded, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		cfg.ReplaceJWT(reloaded.JWT)
		logger.Log.Info("Config reloaded")
	})

	return app
}

// Backfill 以命令行模式执行积分重算，不启动 HTTP 服务。
func (a *App) Backfill() error {
	_, err := a.services.backfill.Run(service.SpeedBonusUngated)
	return err
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.Publisher != nil {
		a.Publisher.Close()
	}
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	logger.Log.Sync()

	log.Println("Server exiting")
}
