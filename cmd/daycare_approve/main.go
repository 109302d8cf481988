package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"parvarish/internal/config"
	"parvarish/internal/database"
	"parvarish/internal/modules/admin"
	"parvarish/internal/pkg/logger"
	"parvarish/internal/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var errUsage = errors.New("one of -list or -id is required")

func main() {
	id := flag.String("id", "", "daycare id to approve")
	revoke := flag.Bool("revoke", false, "withdraw approval instead of granting it")
	list := flag.Bool("list", false, "list daycares waiting for approval")
	flag.Parse()

	_ = godotenv.Load()
	if err := run(context.Background(), *id, *revoke, *list); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		log.Error().Err(err).Msg("daycare approval failed")
		os.Exit(1)
	}
}

// run keeps every exit path behind the deferred provider close.
func run(ctx context.Context, id string, revoke, list bool) error {
	if !list && id == "" {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.LogLevel, true)

	provider := database.NewProvider(cfg.DatabaseURL)
	defer func() {
		if err := provider.Close(); err != nil {
			log.Error().Err(err).Msg("database close failed")
		}
	}()

	db, err := provider.DB(ctx)
	if err != nil {
		return err
	}
	if err := repository.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	svc := admin.NewService(repository.NewDaycareRepository(db))

	if list {
		pending, err := svc.ListPending(ctx)
		if err != nil {
			return fmt.Errorf("list pending: %w", err)
		}
		for _, d := range pending {
			fmt.Printf("%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Email, d.City)
		}
		log.Info().Int("count", len(pending)).Msg("pending daycares")
		return nil
	}

	d, err := svc.SetApproval(ctx, id, !revoke)
	if err != nil {
		return fmt.Errorf("daycare %s: %w", id, err)
	}
	fmt.Printf("%s\t%s\tapproved=%t\n", d.ID, d.Name, d.IsApproved)
	return nil
}
