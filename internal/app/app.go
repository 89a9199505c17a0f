package app

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	"wellness_backend/internal/config"
	"wellness_backend/internal/controller"
	"wellness_backend/internal/repository"
	"wellness_backend/internal/service"
	"wellness_backend/pkg/configwatcher"
	"wellness_backend/pkg/database"
	"wellness_backend/pkg/logger"
	"wellness_backend/pkg/monitoring"
	"wellness_backend/pkg/security"
	"wellness_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Mongo           *mongo.Database
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	checkin     *repository.CheckInRepository
	journal     *repository.JournalRepository
	chat        repository.ChatRepository
	community   *repository.CommunityRepository
	breathing   *repository.BreathingRepository
	affirmation *repository.AffirmationRepository
}

type services struct {
	ai          *service.AIService
	user        *service.UserService
	checkin     *service.CheckInService
	journal     *service.JournalService
	chat        *service.ChatService
	community   *service.CommunityService
	breathing   *service.BreathingService
	affirmation *service.AffirmationService
}

type controllers struct {
	checkin     *controller.CheckInController
	journal     *controller.JournalController
	chat        *controller.ChatController
	community   *controller.CommunityController
	breathing   *controller.BreathingController
	affirmation *controller.AffirmationController
	user        *controller.UserController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories() *repositories {
	repos := &repositories{
		user:        repository.NewUserRepository(a.DB),
		checkin:     repository.NewCheckInRepository(a.DB),
		journal:     repository.NewJournalRepository(a.DB),
		community:   repository.NewCommunityRepository(a.DB),
		breathing:   repository.NewBreathingRepository(a.DB),
		affirmation: repository.NewAffirmationRepository(a.DB),
	}

	// 配置了 MongoDB 时对话历史存入 Mongo
	if a.Mongo != nil {
		if err := repository.EnsureChatIndexes(context.Background(), a.Mongo); err != nil {
			logger.Log.Warn("Failed to create chat indexes", zap.Error(err))
		}
		repos.chat = repository.NewMongoChatRepository(a.Mongo)
	} else {
		repos.chat = repository.NewChatRepository(a.DB)
	}
	return repos
}

func (a *App) initServices(repos *repositories) *services {
	cfg := a.Config
	loc := cfg.App.Location()
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.ai.UpdateConfig(newCfg.AI)
	})

	s.user = service.NewUserService(repos.user, service.NewObjectStore(&cfg.Storage), loc)
	s.checkin = service.NewCheckInService(repos.checkin, s.ai, loc, cfg.App.HeatmapDays)
	s.journal = service.NewJournalService(
		repos.journal,
		service.NewRedisLocker(a.Redis),
		s.ai,
		loc,
		time.Duration(cfg.App.WriteLockSecs)*time.Second,
	)
	s.chat = service.NewChatService(repos.chat, s.ai, cfg.App.ChatHistory)
	s.community = service.NewCommunityService(repos.community, a.Redis)
	s.breathing = service.NewBreathingService(repos.breathing)
	s.affirmation = service.NewAffirmationService(repos.affirmation)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		checkin:     controller.NewCheckInController(s.checkin),
		journal:     controller.NewJournalController(s.journal),
		chat:        controller.NewChatController(s.chat),
		community:   controller.NewCommunityController(s.community),
		breathing:   controller.NewBreathingController(s.breathing),
		affirmation: controller.NewAffirmationController(s.affirmation),
		user:        controller.NewUserController(s.user),
		health:      controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine) {
	cfg := a.Config
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// shouldMigrate release 模式下只有显式要求时才迁移
func shouldMigrate(cfg *config.Config) bool {
	return cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode
}

// Migrate 只执行数据库迁移
func Migrate(cfg *config.Config) error {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	return database.Migrate(db)
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	if shouldMigrate(cfg) {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	// Redis 只承担锁和去重，连接失败时降级运行
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, running without locks and view de-duplication", zap.Error(err))
		rdb = nil
	}

	mdb, err := database.InitMongo(&cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("init mongo: %w", err)
	}

	app := &App{
		Config:    cfg,
		ConfigDir: "configs",
		DB:        db,
		Redis:     rdb,
		Mongo:     mdb,
	}

	repos := app.initRepositories()
	app.services = app.initServices(repos)
	controllers := app.initControllers(app.services)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		app.tracer = tp
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode != gin.ReleaseMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router)
	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == config.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		err := configwatcher.WatchConfig(ctx, a.ConfigDir, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher disabled", zap.Error(err))
		}
	}()

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close(shutdownCtx)

	logger.Log.Info("Server exiting")
}

// Close 释放外部连接
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.Mongo != nil {
		a.Mongo.Client().Disconnect(ctx)
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Log.Sync()
}
