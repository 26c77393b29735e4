package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/openbloom/bloom/logger"
	"github.com/openbloom/bloom/routes"
)

func main() {
	inject := NewInject(context.Background())

	router := routes.SetupRouter(inject.Auth, inject.Handlers)

	logger.Info("Starting server", zap.String("port", inject.Config.Port))
	if err := router.Run(":" + inject.Config.Port); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}
