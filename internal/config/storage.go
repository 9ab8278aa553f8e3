package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND, default=file"`
	File    string `env:"REMINDER_FILE, default=reminders.json"`
}

func NewStorageConfigFromEnv() (*StorageConfig, error) {
	var cfg StorageConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, err
	}
	if cfg.Backend != BackendFile && cfg.Backend != BackendPostgres {
		return nil, fmt.Errorf("unknown storage backend %q, want %q or %q", cfg.Backend, BackendFile, BackendPostgres)
	}

	return &cfg, nil
}
