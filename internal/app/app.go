package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"skillpath_backend/internal/config"
	"skillpath_backend/internal/controller"
	"skillpath_backend/internal/market"
	"skillpath_backend/internal/middleware"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/resume"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/simulate"
	"skillpath_backend/pkg/configwatcher"
	"skillpath_backend/pkg/database"
	"skillpath_backend/pkg/logger"
	"skillpath_backend/pkg/monitoring"
	"skillpath_backend/pkg/security"
	"skillpath_backend/pkg/tracing"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)

	ctx    context.Context
	cancel context.CancelFunc
	tracer interface{ Shutdown(context.Context) error }
}

type repositories struct {
	user       *repository.UserRepository
	analysis   *repository.AnalysisRepository
	targetJob  *repository.TargetJobRepository
	resumeScan *repository.ResumeScanRepository
}

type services struct {
	simulator   *simulate.Simulator
	denylist    *service.TokenDenylist
	auth        *service.AuthService
	history     *service.HistoryService
	wizards     *service.WizardStore
	assessment  *service.AssessmentService
	marketCache *market.CachedProvider
	market      *service.MarketService
	storage     *service.StorageService
	resume      *service.ResumeService
	dashboard   *service.DashboardService
	home        *service.HomeService
	ai          *service.AIService
}

type controllers struct {
	auth       *controller.AuthController
	assessment *controller.AssessmentController
	job        *controller.JobController
	resume     *controller.ResumeController
	dashboard  *controller.DashboardController
	catalog    *controller.CatalogController
	health     *controller.HealthController
	ai         *controller.AIController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		analysis:   repository.NewAnalysisRepository(db),
		targetJob:  repository.NewTargetJobRepository(db),
		resumeScan: repository.NewResumeScanRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.simulator = simulate.New(cfg.Simulation)
	s.denylist = service.NewTokenDenylist(rdb)
	s.auth = service.NewAuthService(repos.user, s.denylist, cfg)
	s.history = service.NewHistoryService(repos.analysis, repos.targetJob)

	s.wizards = service.NewWizardStore(rdb, cfg.Wizard.TTL())
	s.assessment = service.NewAssessmentService(s.wizards, s.simulator, s.history)

	s.marketCache = market.NewCachedProvider(market.NewMockProvider(nil), rdb, cfg.Market.CacheTTL())
	s.market = service.NewMarketService(s.marketCache, s.simulator, s.history)

	s.storage = service.NewStorageService(cfg)
	s.resume = service.NewResumeService(s.storage.Provider, repos.resumeScan, resume.NewAnalyzer(nil), s.simulator, cfg.Upload.MaxBytes())

	s.dashboard = service.NewDashboardService(repos.user, repos.analysis, repos.targetJob, repos.resumeScan)
	s.home = service.NewHomeService(repos.analysis, repos.resumeScan)
	s.ai = service.NewAIService(cfg.AI)

	a.RegisterConfigCallback(func(c *config.Config) {
		s.simulator.SetDelays(c.Simulation)
		s.marketCache.SetTTL(c.Market.CacheTTL())
		s.wizards.SetTTL(c.Wizard.TTL())
		s.resume.SetMaxBytes(c.Upload.MaxBytes())
		logger.Log.Info("Runtime settings updated",
			zap.Duration("job_search_delay", c.Simulation.JobSearch),
			zap.Duration("market_cache_ttl", c.Market.CacheTTL()),
			zap.Int64("upload_max_bytes", c.Upload.MaxBytes()),
		)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.history),
		assessment: controller.NewAssessmentController(s.assessment),
		job:        controller.NewJobController(s.market),
		resume:     controller.NewResumeController(s.resume),
		dashboard:  controller.NewDashboardController(s.dashboard, s.home),
		catalog:    controller.NewCatalogController(),
		health:     controller.NewHealthController(db, rdb),
		ai:         controller.NewAIController(s.ai),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config, s *services) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.NewLimiter(a.ctx, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()).Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())

	// Every request carries a session; routes that need a login add
	// AuthMiddleware on top.
	router.Use(middleware.SessionMiddleware(s.auth))
}

// NewApp connects the backing stores and assembles the HTTP application.
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully", zap.String("mode", cfg.Server.Mode))

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	return newApp(cfg, db, rdb)
}

func newApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		ctx:    ctx,
		cancel: cancel,
	}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg, app.services)
	app.registerRoutes(router, controllers)

	// Local uploads are served by the app itself, also when a remote
	// provider fell back to disk.
	if _, ok := app.services.storage.Provider.(*service.LocalStorageProvider); ok && strings.HasPrefix(cfg.Storage.BaseURL, "/") {
		router.Static(cfg.Storage.BaseURL, cfg.Storage.LocalPath)
	}

	return app, nil
}

// watchConfig reloads the config file while the app runs. Without a file
// there is nothing to watch.
func (a *App) watchConfig() {
	if a.Config.File == "" {
		return
	}
	w := configwatcher.New(a.Config.File, a.applyConfig)
	if err := w.Start(a.ctx); err != nil {
		logger.Log.Warn("Config hot reload disabled", zap.Error(err))
	}
}

func (a *App) Run() error {
	defer a.close()

	a.watchConfig()

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}

func (a *App) close() {
	a.cancel()

	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if err := a.Redis.Close(); err != nil {
		logger.Log.Warn("Failed to close redis", zap.Error(err))
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = logger.Log.Sync()
}
