package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"soonish/internal/config"
	"soonish/internal/realtime"
	"soonish/internal/remind"
	"soonish/internal/store"
	"soonish/internal/web"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reminder daemon and HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		if serveListen != "" {
			cfg.Listen = serveListen
		}

		interp, tbl, err := newInterpreter(cfg)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		st, err := store.NewSQLiteStore(filepath.Join(cfg.DataDir, "soonish.db"))
		if err != nil {
			return err
		}
		defer st.Close()

		broker := realtime.NewBroker()
		daemon, err := remind.NewDaemon(st, broker, cfg.Notify)
		if err != nil {
			return err
		}
		if err := daemon.Start(cmd.Context()); err != nil {
			return err
		}
		defer daemon.Stop()

		server := web.NewServer(cfg.Listen, web.Deps{
			Store:        st,
			Events:       broker,
			Interp:       interp,
			Table:        tbl,
			GetConfig:    func() *config.Config { return cfg },
			Schedule:     daemon.Schedule,
			Cancel:       daemon.Cancel,
			NextFireTime: daemon.NextFireTime,
		})

		errCh := make(chan error, 1)
		go func() { errCh <- server.Start() }()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case s := <-sig:
			log.Printf("received %s, shutting down", s)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (overrides config)")
}
