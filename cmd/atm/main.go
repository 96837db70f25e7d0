package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/core"
	"github.com/amirhossein-jamali/atm-simulator/internal/domain/usecase/atm"
	"github.com/amirhossein-jamali/atm-simulator/internal/infrastructure/adapter/console"
	"github.com/amirhossein-jamali/atm-simulator/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/atm-simulator/internal/infrastructure/adapter/hasher"
	"github.com/amirhossein-jamali/atm-simulator/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/atm-simulator/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/atm-simulator/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/atm-simulator/internal/infrastructure/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("atm: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.NewZapLogger(logger.Options{
		Level:       cfg.Logger.Level,
		Format:      cfg.Logger.Format,
		OutputPaths: []string{cfg.Logger.Output},
	})
	if err != nil {
		return err
	}
	defer appLogger.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp := timeProvider.NewRealTimeProvider()

	pinHasher, err := hasher.New(hasher.Options{
		Algorithm:  cfg.Security.PINHashAlgorithm,
		Pepper:     cfg.Security.PINPepper,
		Iterations: cfg.Security.PBKDF2Iterations,
	})
	if err != nil {
		return err
	}

	dbManager := database.NewManager(&database.Config{
		Driver:        cfg.Database.Driver,
		Path:          cfg.Database.Path,
		Host:          cfg.Database.Host,
		Port:          cfg.Database.Port,
		Username:      cfg.Database.Username,
		Password:      cfg.Database.Password,
		Name:          cfg.Database.Name,
		SSLMode:       cfg.Database.SSLMode,
		MaxOpenConns:  cfg.Database.MaxOpenConns,
		LogLevel:      cfg.Database.LogLevel,
		RetryAttempts: cfg.Database.RetryAttempts,
		RetryDelay:    cfg.Database.RetryDelayDuration(),
	}, appLogger, tp)

	db, err := dbManager.Connect(ctx)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		return err
	}
	defer dbManager.Close()

	service := atm.NewService(
		repository.NewAccountRepository(db, tp, appLogger),
		dbManager.MigrationManager(),
		pinHasher,
		tp,
		appLogger,
		cfg.ATM.SeedDefaultAccounts,
	)
	if err := service.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	appLogger.Info("ATM started", map[string]any{
		"environment": cfg.Environment,
		"driver":      cfg.Database.Driver,
		"accounts":    service.AccountCount(),
		"hash":        pinHasher.Algorithm(),
	})

	// The console blocks on stdin; a signal must not wait on it indefinitely
	done := make(chan error, 1)
	go func() {
		done <- console.NewATM(service, os.Stdin, os.Stdout, cfg.ATM.CurrencySymbol, appLogger).Run(ctx)
	}()

	return awaitConsole(ctx, done, shutdownGrace, appLogger)
}

// shutdownGrace bounds how long a signal waits for an in-flight store write
const shutdownGrace = 3 * time.Second

// awaitConsole returns the console result. Once ctx ends it waits at most grace
// for the console to finish its current operation before the store is closed.
func awaitConsole(ctx context.Context, done <-chan error, grace time.Duration, appLogger core.Logger) error {
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	fmt.Fprintln(os.Stdout)
	appLogger.Info("Shutdown signal received", nil)

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	case <-time.After(grace):
		appLogger.Warn("Console did not stop within grace period", map[string]any{
			"grace": grace.String(),
		})
	}
	return nil
}
