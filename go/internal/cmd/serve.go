package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mkobayashi/planning-poker/go/internal/gateway"
	"github.com/mkobayashi/planning-poker/go/internal/relay"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the relay endpoint and the broadcast gateway",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "path to YAML config file")
}

func runServe(cmd *cobra.Command, args []string) error {
	relayCfg := relay.NewConfigFromEnv()
	port := getEnv("PORT", "8080")

	if serveConfigPath != "" {
		fileCfg, err := loadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		if fileCfg.Server.Port != "" {
			port = fileCfg.Server.Port
		}
		if fileCfg.Broker.URL != "" {
			relayCfg.NATSURL = fileCfg.Broker.URL
		}
		if fileCfg.Broker.Channel != "" {
			relayCfg.Channel = fileCfg.Broker.Channel
		}
	}

	gatewayCfg := gateway.DefaultConfig()
	gatewayCfg.ConsumerConfig.URL = relayCfg.NATSURL
	gatewayCfg.ConsumerConfig.Channel = relayCfg.Channel
	gatewayCfg.ConsumerConfig.User = relayCfg.Key
	gatewayCfg.ConsumerConfig.Password = relayCfg.Secret

	service, err := gateway.NewService(gatewayCfg)
	if err != nil {
		return err
	}

	relayHandler := relay.NewHandler(service.Conn(), relayCfg.Channel)

	mux := http.NewServeMux()
	relayHandler.RegisterRoutes(mux)
	service.RegisterRoutes(mux)

	server := setupServer(mux, port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := service.Start(ctx); err != nil {
			log.Error().Err(err).Msg("gateway service failed")
		}
	}()

	go func() {
		log.Info().Str("port", port).Str("channel", relayCfg.Channel).Msg("relay listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	log.Info().Msg("server stopped")
	return nil
}
