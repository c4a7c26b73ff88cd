package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/serin-reader/serin/internal/infrastructure/config"
	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"github.com/serin-reader/serin/internal/server"
	"go.uber.org/zap"

	// built-in app modules register themselves at init time
	_ "github.com/serin-reader/serin/appmodules/defaults"
	_ "github.com/serin-reader/serin/appmodules/notepad"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the extension registry host",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg *config.Config
		var err error
		if cfgFile != "" {
			cfg, err = config.LoadFile(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger, err := logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
			OutputPaths: []string{"stdout"},
		})
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer logger.Sync()

		srv, err := server.New(cfg, logger)
		if err != nil {
			// a host without a default module must not run
			logger.Error("startup failed", zap.Error(err))
			return err
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		errChan := make(chan error, 1)
		go func() {
			if err := srv.Run(); err != nil {
				errChan <- err
			}
		}()

		select {
		case <-sigChan:
			logger.Info("shutting down")
			return srv.Close()
		case err := <-errChan:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
