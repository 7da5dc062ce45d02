package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abrezinsky/evote/internal/app"
	"github.com/abrezinsky/evote/internal/config"
	"github.com/abrezinsky/evote/internal/logger"
)

var (
	version = "dev"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	if cfg.ShowVersion {
		fmt.Printf("evote %s\n", version)
		os.Exit(0)
	}

	appLog := logger.NewWithOptions(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
		HTTP:   true,
	})

	if cfg.GeneratedSecret {
		appLog.Warn("No JWT secret configured, sessions will not survive a restart")
	}

	if err := run(cfg, appLog); err != nil {
		appLog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, appLog logger.Logger) error {
	a, err := app.New(cfg, appLog)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	created, err := a.EnsureAdmin(ctx)
	if err != nil {
		return err
	}
	if created {
		if cfg.GeneratedPassword {
			appLog.Info("Admin account created", "email", cfg.AdminEmail, "password", cfg.AdminPassword)
		} else {
			appLog.Info("Admin account created", "email", cfg.AdminEmail)
		}
	}

	return a.Run(ctx)
}
