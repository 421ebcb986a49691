package main

import (
	"context"
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/config"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/eventbus"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/exporter"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/followup"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/handler"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/pkg/database"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/pkg/rasterize"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/pkg/research"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/repository"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/router"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/service"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/session"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化 Repository
	docRepo := repository.NewDocumentRepository(db)
	exportRepo := repository.NewExportRecordRepository(db)

	// 查看器事件总线，挂一个日志订阅方便排障
	bus := eventbus.NewViewerEventBus()
	subscribeLogging(bus)

	// 研究后端客户端：提问提交、流式回答、追加研究都走这一个客户端
	researchClient := research.NewClient(cfg)

	// 初始化 Service
	docService := service.NewDocumentService(docRepo)
	controller := session.NewController(researchClient, researchClient, bus)
	composer := followup.NewComposer(researchClient)

	exp, err := exporter.New(cfg, rasterize.NewChromeRasterizer(), exportRepo, bus)
	if err != nil {
		log.Fatalf("Failed to initialize exporter: %v", err)
	}
	defer exp.Close()

	// 初始化 Handler
	docHandler := handler.NewDocumentHandler(docService, controller, exp, exportRepo)
	chatHandler := handler.NewChatHandler(controller, docService, exp)
	followupHandler := handler.NewFollowupHandler(composer)

	// 设置路由
	r := router.Setup(cfg, docHandler, chatHandler, followupHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// subscribeLogging 把查看器事件落到日志
func subscribeLogging(bus *eventbus.ViewerEventBus) {
	for _, eventType := range []eventbus.ViewerEventType{
		eventbus.ViewerEventDocOpened,
		eventbus.ViewerEventDocClosed,
		eventbus.ViewerEventAnswerReceived,
		eventbus.ViewerEventExportFinished,
	} {
		bus.Subscribe(eventType, func(ctx context.Context, event eventbus.ViewerEvent) error {
			klog.V(6).Infof("查看器事件: type=%s, doc=%s, detail=%s, ok=%v",
				event.Type, event.DocUID, event.Detail, event.Succeeded)
			return nil
		})
	}
}
