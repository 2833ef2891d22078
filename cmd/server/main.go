package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"edu-space/backend/config"
	"edu-space/backend/internal/api/handler"
	"edu-space/backend/internal/api/middleware"
	"edu-space/backend/internal/api/router"
	"edu-space/backend/internal/repository"
	"edu-space/backend/internal/service"
	"edu-space/backend/pkg/database"
	"edu-space/backend/pkg/jwt"
	applogger "edu-space/backend/pkg/logger"
	"edu-space/backend/pkg/mailer"
	"edu-space/backend/pkg/redis"
	"edu-space/backend/pkg/storage"
	"edu-space/backend/pkg/validate"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("EDU_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库并建表
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if cfg.Database.Driver == "postgres" {
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
	} else if err := repository.AutoMigrate(db); err != nil {
		logger.Fatal("SQLite 建表失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)

	// 4. 连接 Redis（可选：失败时黑名单落库，限流退化为进程内）
	var (
		rdb        *redis.Client
		blacklist  service.TokenBlacklist
		limitStore middleware.RateLimitStore
	)
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单改用数据库", zap.Error(err))
		rdb = nil
		blacklist = service.NewDBBlacklist(repo.TokenBlacklist)
	} else {
		blacklist = rdb
		limitStore = rdb
	}

	// 5. 基础组件
	jwtMgr := jwt.NewManager(&cfg.Auth)
	mail := mailer.New(&cfg.Mail, logger)
	store, err := storage.NewLocalStorage(&cfg.Storage, logger)
	if err != nil {
		logger.Fatal("初始化文件存储失败", zap.Error(err))
	}
	validate.Register()

	// 6. 依赖注入: Repository → Service → Handler
	svc := service.NewService(cfg, repo, jwtMgr, blacklist, mail, store, logger)
	h := handler.NewHandler(svc)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.User.EnsureAdmin(bootCtx, &cfg.Bootstrap); err != nil {
		logger.Fatal("初始化管理员失败", zap.Error(err))
	}
	bootCancel()

	// 7. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, limitStore, store.Root(), logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	// 视频上传耗时较长，读写超时放宽
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Minute,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if err := sqlDB.Close(); err != nil {
		logger.Warn("关闭数据库连接失败", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
