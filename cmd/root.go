package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/multikids/portage/internal/clinic"
	"github.com/multikids/portage/internal/config"
	"github.com/multikids/portage/internal/llm"
	"github.com/multikids/portage/internal/logging"
	"github.com/multikids/portage/internal/narrative"
	"github.com/multikids/portage/internal/store"
)

// newRootCmd builds the command tree. A fresh tree per call keeps flag
// state from leaking between runs.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "portage",
		Short: "Avaliação de desenvolvimento infantil PORTAGE",
		Long: "portage: inventário Portage operacionalizado no terminal. Registre crianças, " +
			"aplique os questionários por área e faixa etária e gere relatórios.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("db", "", "SQLite database file (overrides PORTAGE_DB)")
	flags.String("db-driver", "", "Database driver: sqlite, postgres or mysql")
	flags.String("config", "", "Config file (default $XDG_CONFIG_HOME/portage/config.yaml)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newChildCmd(),
		newEvaluateCmd(),
		newReportCmd(),
		newHistoryCmd(),
		newQuestionsCmd(),
		newTherapistCmd(),
		newStatsCmd(),
		newBackupCmd(),
		newUpdateCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

// env is what a command needs to reach the data.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	clinic *clinic.Service
}

func (e *env) Close() {
	e.store.Close()
	_ = e.logger.Sync()
}

// loadConfig resolves configuration from defaults, the config file, the
// environment and the command flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)

	dbPath, _ := cmd.Flags().GetString("db")
	driver, _ := cmd.Flags().GetString("db-driver")
	level, _ := cmd.Flags().GetString("log-level")
	cfg.MergeWithFlags(dbPath, driver, level)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openEnv loads the configuration, builds the logger and opens the store.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	dsn, err := cfg.DSN(store.DefaultDBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	if cfg.Database.Driver == store.DriverSQLite {
		if err := store.EnsureDir(dsn); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	st, err := store.Open(store.Options{Driver: cfg.Database.Driver, DSN: dsn, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &env{
		cfg:    cfg,
		logger: logger,
		store:  st,
		clinic: clinic.NewService(st.Children(), st.Therapist(), logger),
	}, nil
}

// newNarrative builds the recommendation service. Without enabled, or when
// no provider is configured, it only produces the static text.
func newNarrative(ctx context.Context, enabled bool, logger *zap.Logger, stderr io.Writer) *narrative.Service {
	if !enabled {
		return narrative.NewService(nil, narrative.DefaultConfig(), logger)
	}
	cfg, ok := llm.ResolveConfig(os.Getenv)
	if !ok {
		fmt.Fprintln(stderr, "Nenhum provedor de IA configurado; usando recomendações padrão.")
		return narrative.NewService(nil, narrative.DefaultConfig(), logger)
	}
	provider, err := llm.NewProvider(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(stderr, "Provedor de IA indisponível:", err)
		return narrative.NewService(nil, narrative.DefaultConfig(), logger)
	}
	return narrative.NewService(provider, narrative.DefaultConfig(), logger)
}
