package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"ge-flipper/internal/api"
	"ge-flipper/internal/config"
	"ge-flipper/internal/db"
	"ge-flipper/internal/logger"
	"ge-flipper/internal/osrs"
	"ge-flipper/internal/syncjob"
)

var version = "dev"

func main() {
	cfg := config.Load()

	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	syncEvery := flag.Duration("sync-interval", 0, "run a price sync on this interval (0 disables)")
	flag.Parse()
	cfg.Port = *port
	cfg.DBPath = *dbPath

	logger.Banner(version)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()
	logger.Success("DB", fmt.Sprintf("Opened %s (%d items cached)", cfg.DBPath, database.ItemCount()))

	client := osrs.NewClient(cfg.OSRSBaseURL, cfg.UserAgent)
	if client.HealthCheck(context.Background()) {
		logger.Success("OSRS", "Price API reachable")
	} else {
		logger.Warn("OSRS", "Price API unreachable, sync will fail until it recovers")
	}

	job := syncjob.New(client, database, cfg.RetentionDays)

	if *syncEvery > 0 {
		go func() {
			ticker := time.NewTicker(*syncEvery)
			defer ticker.Stop()
			for {
				if _, err := job.Run(context.Background()); err != nil {
					logger.Error("Sync", fmt.Sprintf("Scheduled run failed: %v", err))
				}
				<-ticker.C
			}
		}()
		logger.Info("Sync", fmt.Sprintf("Scheduled every %s", *syncEvery))
	}

	srv := api.NewServer(cfg, database, client, job, version)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	logger.Server(addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.Error("Server", fmt.Sprintf("Failed: %v", err))
		os.Exit(1)
	}
}
