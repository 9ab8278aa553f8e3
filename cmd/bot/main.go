package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/teamtext2/bot/internal/config"
	"github.com/teamtext2/bot/internal/datalayer"
	"github.com/teamtext2/bot/internal/handler"
	"github.com/teamtext2/bot/internal/presenters"
	"github.com/teamtext2/bot/internal/reminder"
	"github.com/teamtext2/bot/internal/repository"
	"github.com/teamtext2/bot/internal/schedule"
)

func newStoreFromEnv(ctx context.Context, cfg *config.StorageConfig) (repository.ReminderStore, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pgConfig, err := config.NewPostgresConfigFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load postgres config: %w", err)
		}
		pool, err := datalayer.NewPostgresPool(ctx, pgConfig.DSN())
		if err != nil {
			return nil, err
		}
		if err := datalayer.MigratePostgres(pool); err != nil {
			return nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
		return repository.NewPostgresReminderRepository(pool), nil
	default:
		return repository.NewFileStore(cfg.File), nil
	}
}

func runBotForever() error {
	if err := config.LoadEnv(); err != nil {
		if os.IsNotExist(err) {
			slog.Warn("No .env file found, continuing without it")
		} else {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	discordConfig, err := config.NewDiscordConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load discord config: %w", err)
	}

	storageConfig, err := config.NewStorageConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load storage config: %w", err)
	}

	ctx := context.Background()
	store, err := newStoreFromEnv(ctx, storageConfig)
	if err != nil {
		return err
	}

	session, err := handler.NewSession(discordConfig.Token, handler.Handlers{
		Ready: handler.ReadyLog,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	notifier := handler.NewDiscordNotifier(session)
	scheduler := schedule.NewScheduler(store, notifier)
	service := reminder.NewService(store, scheduler, nil)
	session.AddHandler(handler.MakeInteractionCreateHandler(service, presenters.BuildListRemindersResponse))

	// Every persisted reminder must have a wait-task before the bot
	// starts taking commands.
	spawned, err := service.Recover(ctx)
	if err != nil {
		return fmt.Errorf("failed to recover reminders: %w", err)
	}
	slog.Info("recovered pending reminders", "spawned", spawned)

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			slog.Warn("failed to close session", "error", err)
		}
	}()

	if err := handler.EstablishCommands(session, discordConfig.GuildID); err != nil {
		return fmt.Errorf("failed to establish commands: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	return nil
}

func main() {
	if err := runBotForever(); err != nil {
		log.Fatalf("failed to run bot: %v", err)
	}
}
