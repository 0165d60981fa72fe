package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/devfolio/internal/analytics"
	"github.com/Zachkp/devfolio/internal/config"
	"github.com/Zachkp/devfolio/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	Long: `Starts the HTTP server. Configuration comes from the environment and an
optional .env file. Setting ANALYTICS_DB_PATH enables visitor metrics and the
admin dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Parse()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		gin.SetMode(cfg.Server.GinMode)

		path := contentPath
		if path == "" {
			path = cfg.Content.Path
		}
		p, err := loadPortfolio(path)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		webCfg := web.Config{
			Portfolio: p,
			Retention: cfg.Analytics.Retention,
			StaticDir: cfg.Content.StaticDir,
			Service:   "devfolio",
			Version:   cfg.App.Version,
			Admin: web.AdminCredentials{
				Username: cfg.Analytics.AdminUsername,
				Password: cfg.Analytics.AdminPassword,
			},
		}

		if cfg.Analytics.Enabled() {
			store, err := analytics.Open(ctx, cfg.Analytics.DBPath)
			if err != nil {
				return fmt.Errorf("opening analytics store: %w", err)
			}
			defer store.Close()
			webCfg.Visitors = store

			go func() {
				if err := store.RunCleanup(ctx, cfg.Analytics.Retention, cfg.Analytics.CleanupSchedule); err != nil {
					log.Printf("Visitor cleanup stopped: %v", err)
				}
			}()
			log.Printf("Visitor analytics enabled (db=%s, retention=%s)", cfg.Analytics.DBPath, cfg.Analytics.Retention)
		}

		srv, err := web.NewServer(webCfg)
		if err != nil {
			return err
		}

		log.Printf("devfolio %s starting on %s (env=%s)", cfg.App.Version, cfg.Addr(), cfg.App.Environment)
		return srv.ListenAndServe(ctx, cfg.Addr(), cfg.Server.ShutdownTimeout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

var _ web.VisitorStore = (*analytics.Store)(nil)
