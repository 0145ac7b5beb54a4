package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"

	"productapi/internal/config"
	"productapi/internal/server"
	"productapi/internal/services"
	"productapi/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	v := config.NewViper()
	if err := config.ReadConfigFile(v); err != nil {
		log.Warnf("%v; continuing with environment and defaults", err)
	}
	store := config.Load(v)
	serverCfg := config.LoadServer(v)

	// --- Product events (optional) ---
	var publisher services.EventPublisher
	if serverCfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: serverCfg.RabbitMQURL})
		if err != nil {
			log.Warnf("Product events disabled: %v", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
			if err := mqClient.ConsumeProductEvents(rabbitmq.LogProductEvent); err != nil {
				log.Warnf("Failed to start product event consumer: %v", err)
			}
		}
	}

	// --- Catalog ---
	products, err := services.NewCatalog(serverCfg.Catalog, store.Application(), publisher)
	if err != nil {
		log.Fatalf("Failed to select product catalog: %v", err)
	}
	log.Infof("Serving the %s catalog for %s", serverCfg.Catalog, store.ApplicationInfo())

	app := server.New(store, products)

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("Starting server on port %s", serverCfg.Port)
		if err := app.Listen(serverCfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during Fiber shutdown: %v", err)
	}
	log.Info("Server gracefully stopped")
}
