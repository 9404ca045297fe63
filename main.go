// @title Mockera 后端 API
// @version 1.0
// @description PDF 题库转 CBT 模考平台的评分与积分服务。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"mockera_backend/internal/app"
	"mockera_backend/internal/config"
	"mockera_backend/pkg/logger"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	backfill := flag.Bool("backfill", false, "重算全部历史答卷的积分后退出")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly
	cfg.BackfillOnly = *backfill

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if cfg.MigrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	// 重算模式：不启停 HTTP 服务
	if cfg.BackfillOnly {
		if err := application.Backfill(); err != nil {
			log.Fatalf("Backfill failed: %v", err)
		}
		log.Println("Backfill completed, exiting")
		return
	}

	application.Run()
}
