package main

import (
	"context"

	"go.uber.org/zap"

	"shutterdesk-be/internal/config"
	"shutterdesk-be/internal/db"
	"shutterdesk-be/internal/expense"
	"shutterdesk-be/internal/handlers"
	"shutterdesk-be/internal/logger"
	"shutterdesk-be/internal/order"
	"shutterdesk-be/internal/stream"
	"shutterdesk-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	var notifier stream.Notifier
	var bridge *stream.Bridge
	if cfg.RedisURL != "" {
		var err error
		bridge, err = stream.NewBridge(cfg.RedisURL, "shutterdesk:changes")
		if err != nil {
			logger.L().Fatal("redis bridge init failed", zap.Error(err))
		}
		defer bridge.Close()
		notifier = bridge
	}

	orderRepo := order.NewRepository(database, notifier)
	orderSvc := order.NewService(orderRepo)

	expenseRepo := expense.NewRepository(database, notifier)
	expenseSvc := expense.NewService(expenseRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	if bridge != nil {
		bridge.Listen(context.Background(), func(collection string) {
			ctx := context.Background()
			switch collection {
			case "orders":
				orderRepo.Refresh(ctx)
			case "expenses":
				expenseRepo.Refresh(ctx)
			}
		})
	}

	h := handlers.NewHandler(orderSvc, expenseSvc, userSvc)
	ws := handlers.NewWSHandler(orderSvc, expenseSvc)
	router := handlers.NewRouter(h, ws)

	logger.L().Info("server running", zap.String("port", cfg.AppPort))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
