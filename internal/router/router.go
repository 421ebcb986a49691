package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/config"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/handler"
)

func Setup(
	cfg *config.Config,
	docHandler *handler.DocumentHandler,
	chatHandler *handler.ChatHandler,
	followupHandler *handler.FollowupHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	// 渲染后的 HTML 正文可以很大，响应走压缩
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	api := r.Group("/api")
	{
		docs := api.Group("/documents")
		{
			docs.POST("", docHandler.Create)
			docs.GET("", docHandler.List)
			docs.GET("/:uid", docHandler.Get)
			docs.DELETE("/:uid", docHandler.Delete)
			docs.GET("/:uid/children", docHandler.Children)
			docs.POST("/:uid/open", docHandler.Open)
			docs.POST("/:uid/export/pdf", docHandler.ExportPDF)
			docs.GET("/:uid/exports", docHandler.Exports)
		}

		viewer := api.Group("/viewer")
		{
			viewer.POST("/close", docHandler.CloseViewer)
			viewer.POST("/active-section", docHandler.ActiveSection)
		}

		chat := api.Group("/chat")
		{
			chat.POST("/ask", chatHandler.Ask)
			chat.GET("/session", chatHandler.Session)
			chat.POST("/stream/close", chatHandler.CloseStream)
			chat.POST("/transcript", chatHandler.ExportTranscript)
		}

		api.POST("/followup", followupHandler.Submit)

		// 研究框架的静态配置表
		cfgGroup := api.Group("/config")
		{
			cfgGroup.GET("/frameworks", followupHandler.Frameworks)
			cfgGroup.GET("/hints", followupHandler.Hints)
			cfgGroup.GET("/defaults", followupHandler.Defaults)
		}
	}

	return r
}
