package modules

import (
	"fmt"
	"rugbyrank/api/cache"
	grpcclient "rugbyrank/api/grpc"
	"rugbyrank/api/handlers"
	"rugbyrank/api/repositories"
	historyservice "rugbyrank/api/services/history"
	rankingsservice "rugbyrank/api/services/rankings"
	"rugbyrank/pkg/redis"
	"rugbyrank/pkg/rpc"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"gorm.io/gorm"
)

// Dependencies shared by the handlers.
// Redis is optional.
type ModuleDependencies struct {
	DB         *gorm.DB
	Redis      *redis.RedisClient
	GrpcClient *grpc.ClientConn
	MemCache   *cache.MemCache
}

// Module containing the necessary handlers.
type Module struct {
	Router          *gin.Engine
	MemCache        *cache.MemCache
	RankingsHandler *handlers.RankingsHandler
	HistoryHandler  *handlers.HistoryHandler
}

// Create a new module with all the necessary handlers initialized.
func NewModule(db *gorm.DB, redisClient *redis.RedisClient, grpcClient *grpc.ClientConn) (*Module, error) {
	router := gin.Default()

	deps := &ModuleDependencies{
		DB:         db,
		Redis:      redisClient,
		GrpcClient: grpcClient,
		MemCache:   cache.NewMemCache(5 * time.Minute),
	}

	historyHandler, err := initializeHistoryHandler(deps)
	if err != nil {
		return nil, fmt.Errorf("couldn't start the history handler: %w", err)
	}

	// Return the module with all handlers.
	return &Module{
		Router:          router,
		MemCache:        deps.MemCache,
		RankingsHandler: initializeRankingsHandler(deps),
		HistoryHandler:  historyHandler,
	}, nil
}

func initializeRankingsHandler(deps *ModuleDependencies) *handlers.RankingsHandler {
	grpcClient := grpcclient.NewFetcherGRPCClient(rpc.NewFetcherClient(deps.GrpcClient))

	// Initialize the rankings service and handler.
	rankingsDeps := &rankingsservice.RankingsServiceDeps{
		GrpcClient: grpcClient,
		MemCache:   deps.MemCache,
	}

	rankingsHandlerDeps := &handlers.RankingsHandlerDependencies{
		RankingsService: rankingsservice.NewRankingsService(rankingsDeps),
	}

	return handlers.NewRankingsHandler(rankingsHandlerDeps)
}

func initializeHistoryHandler(deps *ModuleDependencies) (*handlers.HistoryHandler, error) {
	repository, err := repositories.NewHistoryRepository(deps.DB)
	if err != nil {
		return nil, err
	}

	// Initialize the history service and handler.
	historyDeps := &historyservice.HistoryServiceDeps{
		MemCache:   deps.MemCache,
		Repository: repository,
	}

	// Avoid a typed nil on the interface.
	if deps.Redis != nil {
		historyDeps.Redis = deps.Redis
	}

	historyHandlerDeps := &handlers.HistoryHandlerDependencies{
		HistoryService: historyservice.NewHistoryService(historyDeps),
	}

	return handlers.NewHistoryHandler(historyHandlerDeps), nil
}
