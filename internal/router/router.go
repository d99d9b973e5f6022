package router

import (
	"whome/internal/config"
	"whome/internal/handler"
	"whome/internal/middleware"
	"whome/internal/pkg"
	"whome/internal/repository/mysql"
	"whome/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	var smtp *pkg.SMTPConfig
	if cfg.SMTPHost != "" {
		smtp = &pkg.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}
	}

	userSvc := service.NewUserService(mysql.DB, smtp)
	postSvc := service.NewPostService(mysql.DB)
	likeSvc := service.NewLikeService(mysql.DB)
	chatSvc := service.NewChatService(mysql.DB)
	channelSvc := service.NewChannelService(mysql.DB)

	user := handler.NewUserHandler(userSvc, cfg.UploadDir)
	post := handler.NewPostHandler(postSvc, likeSvc, cfg.UploadDir)
	chat := handler.NewChatHandler(chatSvc)
	channel := handler.NewChannelHandler(channelSvc, cfg.UploadDir)
	admin := handler.NewAdminHandler(userSvc)

	auth := middleware.AuthMiddleware(userSvc)

	// 游客可看的读接口
	r.GET("/api/feed", post.Feed)
	r.GET("/api/user/:username", user.Profile)
	r.GET("/api/chat/gifts", chat.Gifts)

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
	}

	// token 相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(auth)
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/profile", user.UpdateProfile)
	}

	// 帖子相关接口
	postGroup := r.Group("/api/post")
	postGroup.Use(auth)
	{
		postGroup.POST("/create", post.CreatePost)
		postGroup.DELETE("/:id", post.DeletePost)
		postGroup.POST("/:id/comment", post.AddComment)
		postGroup.POST("/:id/like", post.ToggleLike)
		postGroup.GET("/:id/likes", post.LikeCount)
	}

	// 私聊相关接口
	chatsGroup := r.Group("/api/chats")
	chatsGroup.Use(auth)
	{
		chatsGroup.GET("", chat.Dialogs)
		chatsGroup.POST("/new", chat.StartChat)
	}
	chatGroup := r.Group("/api/chat")
	chatGroup.Use(auth)
	{
		chatGroup.GET("/:username", chat.History)
		chatGroup.POST("/:username/send", chat.Send)
		chatGroup.POST("/:username/gift", chat.Gift)
	}

	// 频道相关接口
	channelGroup := r.Group("/api/channel")
	channelGroup.Use(auth)
	{
		channelGroup.POST("/create", channel.Create)
		channelGroup.GET("/list", channel.List)
		channelGroup.GET("/:id/messages", channel.Messages)
		channelGroup.POST("/:id/message", channel.PostMessage)
	}

	// 管理后台
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(auth)
	{
		adminGroup.GET("/users", admin.Users)
		adminGroup.POST("/users/:id/verify", admin.Verify)
	}

	return r
}
