// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"foodexpress/controllers"
	"foodexpress/events"
	"foodexpress/middleware"
	"foodexpress/repository"
	"foodexpress/routes"
	"foodexpress/services"
	"foodexpress/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found. Proceeding with environment variables.")
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Connect to MongoDB
	client := utils.ConnectDB(logger)
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.WithError(err).Error("Failed to disconnect from MongoDB")
		}
	}()

	userRepo := repository.NewMongoUserRepository(client)
	catalogRepo := repository.NewMongoCatalogRepository(client, logger)
	orderRepo := repository.NewMongoOrderRepository(client)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		logger.WithError(err).Fatal("Failed to create user indexes")
	}
	cancel()

	// Optional collaborators: catalog cache, order events, notification mail
	var cache services.CatalogCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: addr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithError(err).Warn("Redis unavailable; catalog cache disabled")
		} else {
			cache = repository.NewCatalogCache(redisClient, 5*time.Minute)
			logger.Info("Catalog cache enabled")
		}
	}

	var publisher services.OrderEventPublisher
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		writer := events.NewKafkaWriter(broker)
		defer writer.Close()
		publisher = events.NewKafkaPublisher(writer, logger)
		logger.Info("Order event publishing enabled")
	}

	var mailer services.OrderMailer
	if emailService := utils.NewEmailService(logger); emailService != nil {
		mailer = emailService
	}

	// Initialize services
	identity := services.NewIdentityService(userRepo, logger)
	catalog := services.NewCatalogService(catalogRepo, cache, logger)
	ledger := services.NewOrderService(orderRepo, userRepo, publisher, mailer, logger)
	queries := services.NewQueryService(orderRepo, userRepo, catalogRepo)
	seeder := services.NewSeedService(catalogRepo, cache, logger)

	// Initialize controllers
	userController := controllers.NewUserController(identity, logger)
	restaurantController := controllers.NewRestaurantController(catalog, seeder, logger)
	orderController := controllers.NewOrderController(ledger, queries, logger)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, restaurantController, orderController)
	router.Use(middleware.RequestLogger(logger))

	handler := cors.Default().Handler(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	logger.WithField("port", port).Info("FoodExpress API listening")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}
