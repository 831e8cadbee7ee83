package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"shorturl-api/internal/config"
	"shorturl-api/internal/handler"
	"shorturl-api/internal/middleware"
	"shorturl-api/internal/service"
	"shorturl-api/internal/store"
	"shorturl-api/pkg/database"
	"shorturl-api/pkg/logger"
	rediscli "shorturl-api/pkg/redis"

	_ "shorturl-api/docs"

	"github.com/gin-gonic/gin"
	redisClient "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title ShortURL API
// @version 1.0
// @description 短链接服务：生成短码、跳转计数、过期管理
// @BasePath /

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Println("配置加载失败:", err)
		return
	}

	logger.InitLogger(cfg.App.Mode)
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zap.S()

	db, err := initDatabase(cfg)
	if err != nil {
		sugaredLogger.Fatalf("数据库初始化失败: %v", err)
	}
	sugaredLogger.Info("✅ 数据库连接成功")

	var rdb *redisClient.Client
	if cfg.Cache.Host != "" {
		rdb, err = rediscli.NewRedisClient(&rediscli.Options{
			Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
		})
		if err != nil {
			sugaredLogger.Warnf("缓存连接失败: %v", err)
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
				}
			}()
			sugaredLogger.Info("✅ 缓存连接成功")
		}
	}

	shortURLService := service.NewShortURLService(store.NewGormStore(db), rdb, sugaredLogger)
	shortURLHandler := handler.NewShortURLHandler(shortURLService, cfg.App.BaseURL, sugaredLogger)

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(router, shortURLHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
	sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugaredLogger.Fatalf("服务启动失败: %v", err)
	}
}

// initDatabase 测试模式用 SQLite，否则连接 MySQL
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.App.TestMode {
		return database.InitSQLite("file::memory:?cache=shared")
	}
	return database.InitMySQL(&cfg.Database)
}

func registerRoutes(router *gin.Engine, h *handler.ShortURLHandler) {
	router.GET("/health", h.HealthCheck)

	v1 := router.Group("/v1")
	{
		v1.GET("/:id", h.RedirectShortURL)

		shorturl := v1.Group("/shorturl")
		{
			shorturl.POST("/build", h.BuildShortURL)
			shorturl.GET("/all", h.GetAllShortURL)
			shorturl.GET("/:id", h.GetShortURLDetails)
			shorturl.PUT("/:id", h.UpdateShortURL)
			shorturl.PATCH("/:id", h.UpdateExpireDate)
			shorturl.DELETE("/:id", h.DeleteShortURL)
		}
	}
}
