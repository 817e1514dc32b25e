package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/poe2-chicken-bot/internal/adapters/display"
	"github.com/bnema/poe2-chicken-bot/internal/adapters/procmem"
	resourcesrender "github.com/bnema/poe2-chicken-bot/internal/adapters/render/resources"
	tomlrepo "github.com/bnema/poe2-chicken-bot/internal/adapters/repo/toml"
	"github.com/bnema/poe2-chicken-bot/internal/adapters/settings"
	"github.com/bnema/poe2-chicken-bot/internal/adapters/win32"
	"github.com/bnema/poe2-chicken-bot/internal/domain"
	"github.com/bnema/poe2-chicken-bot/internal/ports"
	"github.com/spf13/viper"
)

const (
	configDir    = ".poe2-chicken-bot"
	settingsFile = "poe2-chicken-bot.config"
)

type app struct {
	resources       ports.ResourceRepository
	thresholds      ports.ThresholdStore
	opener          ports.ProcessOpener
	windows         ports.WindowController
	keys            ports.KeyBlocker
	clock           ports.Clock
	log             *slog.Logger
	renderResources func([]domain.ResourceSpec, map[domain.ResourceKey]int64) (string, error)
	newConsoleSink  func(selected domain.ResourceKey, thresholdText string) ports.DisplaySink
	now             func() time.Time

	processName string
	windowTitle string
}

func wireApp() (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire resource repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	return &app{
		resources:       repo,
		thresholds:      settings.NewStore(filepath.Join(homeDir, configDir, settingsFile)),
		opener:          procmem.NewOpener(),
		windows:         win32.NewWindowController(),
		keys:            win32.NewKeyBlocker(),
		clock:           ports.SystemClock{},
		log:             newLogger(),
		renderResources: resourcesrender.Render,
		newConsoleSink: func(selected domain.ResourceKey, thresholdText string) ports.DisplaySink {
			return display.NewConsoleSink(os.Stdout, selected, thresholdText, ports.SystemClock{})
		},
		now:         time.Now,
		processName: envOrDefault("CHICKEN_PROCESS", "PathOfExileSteam.exe"),
		windowTitle: envOrDefault("CHICKEN_WINDOW", "Path of Exile 2"),
	}, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("CHICKEN_DEBUG") != "" {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
