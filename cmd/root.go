package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/inovacc/stargazer/internal/application"
	"github.com/inovacc/stargazer/internal/config"
	"github.com/inovacc/stargazer/internal/core"
	"github.com/inovacc/stargazer/internal/github"
	"github.com/inovacc/stargazer/internal/store/sqlite"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Organize your starred GitHub repositories",
	Long: `Stargazer keeps a local cache of your starred GitHub repositories and
lets you sort them into virtual folders. Folders can carry auto-tags that
match repos by topic or primary language, so new stars land in the right
place automatically.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// app holds the wired services every command runs on. Commands build it
// in RunE and close it on the way out.
type app struct {
	cfg     *config.Config
	store   *sqlite.Store
	client  *github.Client
	folders *core.FolderService
	loader  *core.DataLoader
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	setupLogging(cfg.LogLevel)

	st, err := sqlite.New(cfg.Cache.Path, cfg.Cache.TTL())
	if err != nil {
		return nil, fmt.Errorf("opening cache at %s: %w", cfg.Cache.Path, err)
	}

	client := github.NewClient(ctx, cfg.GitHub.Token)
	folders := core.NewFolderService(st)

	defaults := make([]core.FolderConfig, 0, len(cfg.Folders.Defaults))
	for _, f := range cfg.Folders.Defaults {
		defaults = append(defaults, core.FolderConfig{
			Name:        f.Name,
			AutoTags:    f.AutoTags,
			Description: f.Description,
		})
	}

	loader := core.NewDataLoader(client, st, folders, defaults, cfg.Behavior.AutoCategorize)

	return &app{cfg: cfg, store: st, client: client, folders: folders, loader: loader}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// setupLogging points slog at stderr so log lines never interleave with
// command output or the TUI.
func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
