package main

import (
	"log"
	"rugbyrank/api/modules"
	"rugbyrank/api/routes"
	"rugbyrank/pkg/config"
	"rugbyrank/pkg/database"
	"rugbyrank/pkg/redis"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the fetcher grpc.
	grpcClient, err := grpc.NewClient(cfg.Fetcher.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Error to connect to the gRPC server: %v", err)
	}
	defer grpcClient.Close()

	// The history is read from the snapshots, the fetcher runs the migrations.
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close(db)

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Printf("Running without redis: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Create a module with all necessary handlers.
	module, err := modules.NewModule(db, redisClient, grpcClient)
	if err != nil {
		log.Fatalf("Error creating the module: %v", err)
	}
	defer module.MemCache.Close()

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.RankingsHandler,
		module.HistoryHandler,
	)

	// Start the server.
	if err := router.Run(cfg.API.ListenAddress); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
