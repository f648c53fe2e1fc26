package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/app"
	"github.com/geoquiz-service/internal/config"
	"github.com/geoquiz-service/internal/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "geoquizctl",
	Short:         "GeoQuiz administration tool",
	Long:          "geoquizctl applies migrations, builds exercises and inspects build jobs and progress.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(enqueueCmd)
	rootCmd.AddCommand(jobCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(progressCmd)
}

// env - конфигурация, логгер и контекст, отменяемый по SIGINT/SIGTERM
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Log.Level
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		level = l
	}
	log, err := logger.New(level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	return &env{cfg: cfg, log: log, ctx: ctx, cancel: cancel}, nil
}

func (e *env) close() {
	e.cancel()
	_ = e.log.Sync()
}

// withUseCases подключается ко всем хранилищам и вызывает fn
func withUseCases(cmd *cobra.Command, fn func(e *env, uc *app.UseCases) error) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	infra, err := app.Connect(e.cfg, e.log)
	if err != nil {
		return err
	}
	defer infra.Close(e.log)

	uc, err := app.NewUseCases(e.cfg, infra, e.log)
	if err != nil {
		return err
	}
	return fn(e, uc)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
