package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/advisorsite/internal/cache"
	"github.com/advisorsite/internal/captcha"
	"github.com/advisorsite/internal/config"
	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/defaults"
	"github.com/advisorsite/internal/handler"
	"github.com/advisorsite/internal/logging"
	"github.com/advisorsite/internal/notify"
	"github.com/advisorsite/internal/router"
	"github.com/advisorsite/internal/service"
	"github.com/advisorsite/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.AppConfig, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	gdb, err := db.Open(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		URL:    cfg.DatabaseURL,
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	created, err := db.EnsureUser(gdb, cfg.SuperRootUserName, cfg.SuperRootPassword)
	if err != nil {
		return err
	}
	if created {
		logger.Info("created admin user", zap.String("username", cfg.SuperRootUserName))
	}

	content, err := defaults.NewProvider(cfg.DefaultContentPath)
	if err != nil {
		return err
	}

	hub := notify.NewHub(64)
	defer hub.Close()

	site := service.NewSite(gdb, content, hub, logger)
	if err := site.LoadAll(ctx); err != nil {
		// 加载失败的栏目继续使用默认内容，后台显示错误提示
		logger.Warn("initial content load incomplete", zap.Error(err))
	}

	backend, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	images := storage.NewImages(backend, 0)

	if cfg.Captcha.Enabled && cfg.Captcha.UsingTestKeys {
		logger.Warn("captcha is using the public reCAPTCHA test keys; set CAPTCHA_SITE_KEY and CAPTCHA_SECRET_KEY")
	}
	verifier := captcha.New(cfg.Captcha.Enabled, cfg.Captcha.SiteKey, cfg.Captcha.SecretKey)

	var store cache.Store = cache.NewMemory()
	if cfg.RedisURL != "" {
		redisStore, err := cache.NewRedis(ctx, cfg.RedisURL, "advisorsite:")
		if err != nil {
			return err
		}
		defer redisStore.Close()
		store = redisStore
	}
	snapshot := cache.NewSnapshot(store, "public-content", cfg.SnapshotTTL, handler.PublicContentBuilder(site))

	api := handler.NewAPI(handler.Options{
		DB:       gdb,
		Site:     site,
		Images:   images,
		Captcha:  verifier,
		Snapshot: snapshot,
		Hub:      hub,
		Logger:   logger,
	})

	routerCfg := router.Config{
		SessionSecret:  cfg.SessionSecret,
		TemplateGlob:   "web/template/*.html",
		MetricsEnabled: cfg.MetricsEnabled,
		LoginLimiter:   handler.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginBurst, logger),
		Logger:         logger,
	}
	if cfg.Storage.Backend == "local" {
		routerCfg.UploadDir = cfg.Storage.UploadDir
		routerCfg.UploadURLPath = cfg.Storage.UploadURLPath
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.SetupRouter(api, routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return content.Watch(gctx, logger)
	})
	g.Go(func() error {
		return cache.InvalidateOn(gctx, hub, snapshot, logger)
	})
	g.Go(func() error {
		return service.NewRefresher(cfg.ContentRefreshInterval, hub, logger, site.Polled()...).Run(gctx)
	})
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", cfg.ListenAddr), zap.String("storage", backend.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		// 关闭 hub 以结束仍在推送的 SSE 连接
		hub.Close()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
