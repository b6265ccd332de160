package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/configs"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/pkg/mq"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/repository"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/routes"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/services"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/ws"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		log.Fatalf("connect db failed: %v", err)
	}
	db := configs.DB()

	if err := configs.SetupDatabase(); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if err := configs.SeedAdmin(cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	// Order event sinks: websocket hub always, AMQP only when configured
	hub := ws.NewOrderHub(repository.NewOrderRepository(db))
	go hub.Run()

	events := []services.OrderEvents{hub}
	if cfg.AMQPURL != "" {
		pub, err := mq.NewPublisher(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("amqp connect failed: %v", err)
		}
		defer pub.Close()
		events = append(events, pub)
	}

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, events, hub)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
