package main

import (
	"context"
	"fmt"
	"os"

	"shopelite/internal/config"
	"shopelite/internal/logger"
	"shopelite/internal/storefront"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	ctx := logger.WithSessionID(context.Background(), uuid.NewString())

	app, err := storefront.Open(ctx, cfg)
	if err != nil {
		logger.L().Fatal("failed to start storefront", zap.Error(err))
	}
	defer app.Close()

	if err := run(ctx, app, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		app.Close()
		logger.Sync()
		os.Exit(1)
	}
}
