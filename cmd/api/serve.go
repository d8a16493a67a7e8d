package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"ecostore-api/internal/client"
	"ecostore-api/internal/config"
	"ecostore-api/internal/logger"
	"ecostore-api/internal/repository"
	"ecostore-api/internal/server"
	"ecostore-api/internal/service"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// app holds what every command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

func bootstrap(c *cli.Context) (*app, error) {
	cfg, err := config.Load(c.StringSlice("env-file")...)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: log, db: db}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}

func serve(c *cli.Context) error {
	a, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer a.close()

	if err := client.Migrate(a.db); err != nil {
		return err
	}

	braintreeClient, err := client.NewBraintreeClient(&a.cfg.BrainTree)
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(a.db)
	orderRepo := repository.NewOrderRepository(a.db)

	userService := service.NewUserService(userRepo, a.logger)
	orderService := service.NewOrderService(a.db, userRepo, orderRepo, a.logger)
	paymentService := service.NewPaymentService(
		braintreeClient,
		orderRepo,
		a.cfg.Store.PaypalDescription,
		a.logger,
	)

	srv := server.NewServer(userService, orderService, paymentService, a.logger)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(a.cfg.HTTP.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
