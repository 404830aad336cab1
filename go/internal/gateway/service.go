package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Service composes the websocket hub, its HTTP handler and the
// broadcast-channel consumer.
type Service struct {
	hub      *Hub
	handler  *Handler
	consumer *Consumer
}

// Config holds configuration for the gateway service.
type Config struct {
	ConnectionConfig ConnectionConfig
	ConsumerConfig   ConsumerConfig
}

// DefaultConfig returns default configuration for the gateway.
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		ConsumerConfig:   DefaultConsumerConfig(),
	}
}

// NewService creates a gateway service.
func NewService(config Config) (*Service, error) {
	hub := NewHub(config.ConnectionConfig, clockwork.NewRealClock())
	handler := NewHandler(hub)

	consumer, err := NewConsumer(hub, config.ConsumerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	return &Service{
		hub:      hub,
		handler:  handler,
		consumer: consumer,
	}, nil
}

// Start runs the gateway until the context is cancelled.
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting gateway service")

	go s.hub.Start(ctx)

	go func() {
		if err := s.consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("broadcast consumer failed")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("gateway service shutting down")
	return s.Stop()
}

// Stop gracefully shuts down the gateway.
func (s *Service) Stop() error {
	if err := s.consumer.Stop(); err != nil {
		log.Error().Err(err).Msg("failed to stop consumer")
	}
	log.Info().Msg("gateway service stopped")
	return nil
}

// RegisterRoutes registers the websocket HTTP routes.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.handler.RegisterRoutes(mux)
	log.Info().Msg("gateway routes registered")
}

// Conn exposes the broker connection for in-process publishing.
func (s *Service) Conn() *nats.Conn {
	return s.consumer.Conn()
}
