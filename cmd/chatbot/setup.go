package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/jzq1291/chatbot/internal/config"
	"github.com/jzq1291/chatbot/internal/providers/llm"
	"github.com/jzq1291/chatbot/internal/service/chat"
	"github.com/jzq1291/chatbot/internal/service/knowledge"
	"github.com/jzq1291/chatbot/internal/storage/sqlite"
	"github.com/jzq1291/chatbot/internal/transport/httpapi"
	"github.com/jzq1291/chatbot/pkg/log"
	"github.com/jzq1291/chatbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	appCfg := config.NewAppConfig(ctx)
	modelsCfg := config.NewModelsConfig(ctx)
	serverCfg := config.NewServerConfig(ctx)

	// Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	messagesRepo := sqlite.NewMessagesRepo(db)
	knowledgeRepo := sqlite.NewKnowledgeRepo(db)

	// Completion providers
	registry, err := llm.NewRegistry(ctx, modelsCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build model registry")
	}

	// Services
	chatSvc := chat.NewService(appCfg, messagesRepo, knowledgeRepo, registry, modelsCfg.DefaultModel)
	knowSvc := knowledge.NewService(knowledgeRepo)

	// Transport
	services = append(services, httpapi.NewServer(ctx, serverCfg, chatSvc, knowSvc))

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
