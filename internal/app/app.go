package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"sectorchat/config"
	"sectorchat/internal/agent"
	"sectorchat/internal/api"
	"sectorchat/internal/chat"
	"sectorchat/internal/sectors"
	"sectorchat/internal/service"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the Sectors endpoint client.
//   - Initializes the volume service (aggregation + trading-day resolution).
//   - Builds the agent toolset, the assistant, and the chat service.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	chatSvc, volumeSvc, client := buildServices(cfg)

	handler := api.NewHandler(chatSvc, volumeSvc, client)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return client.Ping(ctx)
	})
	healthHandler.Register(router)

	// Conversations are process-scoped; nothing to release on shutdown yet.
	cleanup := func() {}

	return router, cleanup, nil
}

// InitializeChat wires the dependency graph for the terminal chat mode.
func InitializeChat() chat.Service {
	chatSvc, _, _ := buildServices(config.AppConfig)
	return chatSvc
}

func buildServices(cfg config.Config) (chat.Service, service.VolumeService, *sectors.Client) {
	client := sectors.NewClient(cfg.Sectors.BaseURL, cfg.Sectors.APIKey, cfg.Sectors.Timeout)
	volumeSvc := service.NewVolumeService(client, cfg.Agent.MaxLookaheadDays)

	toolset := agent.NewToolset(client, volumeSvc)
	assistant := agent.New(cfg, toolset)

	store := chat.NewStore()
	chatSvc := chat.NewService(store, assistant)

	return chatSvc, volumeSvc, client
}
