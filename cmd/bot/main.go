package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"outage-bot/internal/bot"
	"outage-bot/internal/cache"
	"outage-bot/internal/config"
	"outage-bot/internal/dtek"
	"outage-bot/internal/handlers"
	"outage-bot/internal/outage"
	"outage-bot/internal/svitlobot"
	"outage-bot/internal/tableimage"
)

func main() {
	// Load .env if present.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// --- Image cache (Redis optional) ---
	images, err := cache.NewImages(cfg.RedisURL, time.Duration(cfg.ImageCacheTTLSec)*time.Second)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	defer images.Close()
	if cfg.RedisURL != "" {
		log.Println("redis image cache connected")
	}

	// --- Upstream clients and renderer ---
	dtekClient := dtek.NewClient(cfg.DtekURL, dtek.Credentials{
		CSRFToken: cfg.DtekCSRFToken,
		Cookie:    cfg.DtekCookie,
		City:      cfg.DtekCity,
		Street:    cfg.DtekStreet,
	})
	svitlobotClient := svitlobot.NewClient(cfg.SvitlobotURL)
	renderer := tableimage.NewRenderer(cfg.FontURL, cfg.FallbackImageURL, images)

	svc := outage.NewService(dtekClient, svitlobotClient, renderer,
		cfg.DtekHouse, cfg.DtekStreet, cfg.PowerCityList(), cfg.PowerRegion)

	// --- Telegram Bot ---
	tgBot, err := bot.New(cfg.BotToken, svc)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}
	log.Println("telegram bot ready")

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))

	h := &handlers.Handlers{Bot: tgBot, Secret: cfg.WebhookSecret}
	h.RegisterRoutes(app)

	// --- Graceful shutdown ---
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down...")
		_ = app.Shutdown()
	}()

	log.Printf("webhook server starting on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
