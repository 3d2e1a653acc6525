package main

import (
	"context"
	"database/sql"
	"fmt"
	"microblog-backend/config"
	"microblog-backend/internal/api/feed"
	"microblog-backend/internal/api/post"
	"microblog-backend/internal/api/profile"
	"microblog-backend/internal/api/user"
	"microblog-backend/internal/cache"
	"microblog-backend/internal/middleware"
	"microblog-backend/internal/pagination"
	"microblog-backend/internal/repository/mysql"
	"microblog-backend/internal/service"
	"microblog-backend/internal/storage"
	"microblog-backend/internal/util"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接
	if err = db.Ping(); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("slug", util.ValidateSlug)
	}

	// 确保上传文件夹存在
	ensureUploadsFolder()

	// 按配置选择存储后端
	fileStorage, err := storage.New()
	if err != nil {
		util.Logger.Fatal("初始化文件存储失败", zap.Error(err))
	}

	// 分页大小在启动期校验，之后全程不变
	paginator, err := pagination.New(config.AppConfig.PageSize)
	if err != nil {
		util.Logger.Fatal("初始化分页器失败", zap.Error(err))
	}

	// 信息流缓存是可选组件，未配置 Redis 时直接回源数据库
	var feedCache *cache.FeedCache
	if config.AppConfig.RedisAddr != "" {
		feedCache, err = cache.NewFeedCache(
			config.AppConfig.RedisAddr,
			config.AppConfig.RedisPassword,
			time.Duration(config.AppConfig.FeedCacheTTL)*time.Second)
		if err != nil {
			util.Logger.Warn("连接 Redis 失败，信息流缓存被禁用", zap.Error(err))
			feedCache = nil
		}
	}

	// SMTP 未配置时跳过通知邮件
	var emailService *service.EmailService
	if config.AppConfig.SMTPUsername != "" {
		emailService = service.NewEmailService()
	}

	// 初始化存储库、服务和处理器
	userRepo := mysql.NewUserRepository(db)
	groupRepo := mysql.NewGroupRepository(db)
	postRepo := mysql.NewPostRepository(db)
	followRepo := mysql.NewFollowRepository(db)

	userService := service.NewUserService(userRepo, emailService, feedCache)
	postService := service.NewPostService(postRepo, groupRepo, feedCache)
	followService := service.NewFollowService(followRepo, userRepo, emailService)
	feedService := service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, paginator, feedCache)

	authHandler := user.NewAuthHandler(userService)
	feedHandler := feed.NewFeedHandler(feedService)
	postHandler := post.NewPostHandler(postService, userService, fileStorage)
	profileHandler := profile.NewProfileHandler(feedService, followService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.Default()

	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	r.Use(cors.New(corsConfig))

	// 静态文件的 CORS 单独处理
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			c.Header("Access-Control-Allow-Origin", config.AppConfig.FrontendURL)
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type")

			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(200)
				return
			}
		}
		c.Next()
	})

	// 本地存储后端的静态文件服务
	r.Static("/uploads", config.AppConfig.LocalStoragePath)

	// 认证相关路由
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.DELETE("/account", middleware.AuthMiddleware(), authHandler.DeleteAccount)

	// 信息流路由
	r.GET("/", middleware.OptionalAuthMiddleware(), feedHandler.Index)
	r.GET("/group/:slug", feedHandler.GroupPosts)
	r.GET("/follow", middleware.AuthMiddleware(), feedHandler.FollowIndex)

	// 帖子路由
	r.GET("/posts/:id", postHandler.Detail)
	r.POST("/create", middleware.AuthMiddleware(), postHandler.Create)
	r.POST("/posts/:id/edit", middleware.AuthMiddleware(), postHandler.Edit)
	r.POST("/posts/:id/comment", middleware.AuthMiddleware(), postHandler.AddComment)
	r.POST("/posts/:id/delete", middleware.AuthMiddleware(), postHandler.Delete)

	// 作者主页与关注关系路由
	r.GET("/profile/:username", middleware.OptionalAuthMiddleware(), profileHandler.Show)
	r.POST("/profile/:username/follow", middleware.AuthMiddleware(), profileHandler.Follow)
	r.POST("/profile/:username/unfollow", middleware.AuthMiddleware(), profileHandler.Unfollow)

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动，监听端口 :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// 确保上传文件夹存在
func ensureUploadsFolder() {
	uploadsPath := config.AppConfig.LocalStoragePath
	if err := os.MkdirAll(uploadsPath, 0755); err != nil {
		util.Logger.Fatal("创建上传文件夹失败", zap.Error(err), zap.String("path", uploadsPath))
	}
}
