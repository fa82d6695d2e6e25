package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"shelter-dashboard/internal/platform/config"
	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/router"
)

// @title Shelter Dashboard API
// @version 1.0
// @description Dashboard de candidatos de rescate del Austin Animal Center.
// @BasePath /

var flags struct {
	configFile string
	port       string
	store      string
	file       string
	url        string
}

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Dashboard de candidatos de rescate (AAC)",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el servidor HTTP (default)",
	RunE:  runServe,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Carga el CSV de outcomes AAC en el store configurado",
	RunE:  runImport,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", os.Getenv("CONFIG_FILE"), "archivo YAML de config (opcional)")
	rootCmd.PersistentFlags().StringVar(&flags.store, "store", "", "memory|mongo|postgres (override de STORE)")
	rootCmd.PersistentFlags().StringVar(&flags.port, "port", "", "puerto HTTP (override de PORT)")

	importCmd.Flags().StringVar(&flags.file, "file", "", "path local del CSV")
	importCmd.Flags().StringVar(&flags.url, "url", "", "URL http(s) del CSV")
	importCmd.MarkFlagsMutuallyExclusive("file", "url")
	importCmd.MarkFlagsOneRequired("file", "url")

	rootCmd.AddCommand(serveCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig: defaults -> YAML -> env -> flags.
func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, nil, err
	}
	if flags.store != "" {
		cfg.Store = config.StoreKind(flags.store)
	}
	if flags.port != "" {
		cfg.HTTP.Port = flags.port
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: logger.ParseFormat(cfg.Logging.Format),
		App:    cfg.Logging.App,
	})
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sin store no hay dashboard: fallar al arrancar, no en el primer request.
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer st.close()

	h, err := router.NewRouter(router.Options{
		Repo:       st.writer,
		Log:        log,
		SessionTTL: cfg.Sessions.TTL,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "store": string(cfg.Store)})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Store == config.StoreMemory {
		return errors.New("import requires a persistent store (--store mongo|postgres)")
	}

	ctx := cmd.Context()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer st.close()

	source := flags.file
	if source == "" {
		source = flags.url
	}
	n, err := newImporter(st, log).Run(ctx, source)
	if err != nil {
		return fmt.Errorf("import (%d written): %w", n, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d records into %s\n", n, cfg.Store)
	return nil
}
