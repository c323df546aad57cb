package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"rugbyrank/fetcher/data/worldrugby"
	"rugbyrank/fetcher/repositories"
	"rugbyrank/fetcher/requests"
	feedservice "rugbyrank/fetcher/services/feed"
	snapshotservice "rugbyrank/fetcher/services/snapshot"
	"rugbyrank/pkg/config"
	"rugbyrank/pkg/database"
	"rugbyrank/pkg/redis"
	"rugbyrank/pkg/rpc"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Starting grpcServer...")

	// Get the database and run the migrations.
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}
	if err := database.RunMigrations(cfg.Database, sqlDB); err != nil {
		log.Fatal(err)
	}

	// Create the repositories.
	snapshotRepository, err := repositories.NewSnapshotRepository(db)
	if err != nil {
		log.Fatal(err)
	}
	cacheRepository, err := repositories.NewCacheRepository(db)
	if err != nil {
		log.Fatal(err)
	}

	// The limiter is shared by every request to the feed.
	limiter := requests.NewRateLimiter(cfg.Limits)
	fetcher := worldrugby.NewFetcher(limiter, &http.Client{Timeout: cfg.Feed.Timeout}, cfg.Feed.BaseURL)

	deps := &feedservice.Deps{
		Fetcher:       fetcher,
		Backup:        cacheRepository,
		TTL:           cfg.Feed.CacheTTL,
		DetectNeutral: cfg.Feed.DetectNeutralVenue,
	}

	// Redis is optional, the feed is still served through the database backup.
	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Printf("Running without redis: %v", err)
	} else {
		defer redisClient.Close()
		deps.Redis = redisClient
	}

	srv := &server{
		feed:     feedservice.NewFeedService(deps),
		snapshot: snapshotservice.NewSnapshotService(fetcher, snapshotRepository),
	}

	// Start the gRPC server.
	grpcServer, healthServer := startGRPCServer(cfg.Fetcher.ListenAddress, srv)

	// Shutdown everything.
	handleShutdown(grpcServer, healthServer)
}

// Start the grpc server for handling the feed on demand.
func startGRPCServer(address string, srv rpc.FetcherServer) (*grpc.Server, *health.Server) {
	// Start a TCP listener.
	list, err := net.Listen("tcp", address)
	if err != nil {
		log.Fatalf("Couldn't start the tcp server: %v", err)
	}

	// Create the server, register it and serve.
	grpcServer := grpc.NewServer(rpc.ServerOptions()...)
	rpc.RegisterFetcherServer(grpcServer, srv)

	// Register the health check.
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	// Set the serving status as serving.
	healthServer.SetServingStatus(rpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	// Run a go routine for the grpc server.
	go func() {
		log.Printf("Running gRPC server on %s.", address)
		if err := grpcServer.Serve(list); err != nil {
			log.Fatalf("Failed to serve grpc: %v", err)
		}
	}()

	// Return the grpc and health server.
	return grpcServer, healthServer
}

// Handle the shutdown of the whole server.
func handleShutdown(grpcServer *grpc.Server, healthServer *health.Server) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("Shutting down the gRPC server...")

	// Set it to not serving.
	healthServer.SetServingStatus(rpc.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	grpcServer.GracefulStop()
	log.Println("gRPC server stopped.")
}
