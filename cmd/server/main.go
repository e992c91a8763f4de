package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restoran-backoffice/internal/audit"
	"restoran-backoffice/internal/auth"
	"restoran-backoffice/internal/config"
	"restoran-backoffice/internal/database"
	"restoran-backoffice/internal/poller"
	"restoran-backoffice/internal/remote"
	"restoran-backoffice/internal/router"
	"restoran-backoffice/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	db := database.Init(cfg)

	var pub audit.Publisher
	if cfg.KafkaBroker != "" {
		pub = audit.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaAuditTopic)
		log.Println("[INFO] audit kayıtları Kafka'ya da yazılıyor:", cfg.KafkaAuditTopic)
	}
	auditSvc := audit.NewService(db, pub)

	var revs auth.Revocations = auth.NewMemoryRevocations()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("[FATAL] Redis bağlantısı kurulamadı: %v", err)
		}
		cancel()
		revs = auth.NewRedisRevocations(rdb)
	}

	badges, err := poller.NewManager(cfg.PollInterval)
	if err != nil {
		log.Fatalf("[FATAL] poller başlatılamadı: %v", err)
	}

	deps := &web.Deps{
		Cfg:    cfg,
		Remote: remote.New(&http.Client{Timeout: cfg.UpstreamTimeout}, cfg.MenuAPIURL, cfg.SiteAPIURL),
		Audit:  auditSvc,
		Poller: badges,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: router.ErrorHandler,
		BodyLimit:    20 * 1024 * 1024,
	})
	router.Middleware(app, deps)
	router.SetupRoutes(app, deps, revs)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Println("[INFO] kapatılıyor...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("[WARN] sunucu kapatılamadı: %v", err)
		}
	}()

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}

	if err := badges.Shutdown(); err != nil {
		log.Printf("[WARN] poller durdurulamadı: %v", err)
	}
	if err := auditSvc.Close(); err != nil {
		log.Printf("[WARN] audit yayıncısı kapatılamadı: %v", err)
	}
}
