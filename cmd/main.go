package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-cz/devslog"
	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/config"
	"github.com/siahsang/conduit/internal/core"
	"github.com/spf13/cobra"
)

type application struct {
	config   *config.Config
	logger   *slog.Logger
	core     *core.Core
	accounts *auth.Accounts
}

func main() {
	logger := configLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(logger).ExecuteContext(ctx); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand(logger *slog.Logger) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "conduit",
		Short:         "Conduit blogging demo backed by in-memory data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	newApp := func(cmd *cobra.Command) (*application, error) {
		cfg, err := config.LoadConfig(logger, envFile)
		if err != nil {
			return nil, err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
			cfg.PageLimit = limit
		}
		return newApplication(cfg, logger, auth.DefaultPasswordCost)
	}

	root.AddCommand(newServeCommand(newApp), newBrowseCommand(newApp))
	return root
}

func newApplication(cfg *config.Config, logger *slog.Logger, passwordCost int) (*application, error) {
	accounts, err := auth.NewAccounts(logger, auth.Options{
		Secret:       []byte(cfg.JWTSecret),
		TokenTTL:     cfg.TokenTTL,
		PasswordCost: passwordCost,
	})
	if err != nil {
		return nil, err
	}

	return &application{
		config:   cfg,
		logger:   logger,
		core:     core.NewCore(logger, core.NewArticleStore(core.SeedArticles()...), core.SeedProfiles()),
		accounts: accounts,
	}, nil
}

func configLogger() *slog.Logger {
	handler := devslog.NewHandler(
		os.Stderr, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     slog.LevelDebug,
			},
			NewLineAfterLog: false,
		})

	logger := slog.New(handler)
	return logger
}
