package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/mkobayashi/planning-poker/go/internal/models"
)

// ConsumerConfig holds configuration for the broadcast-channel
// subscriber.
type ConsumerConfig struct {
	URL           string
	Channel       string
	User          string
	Password      string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultConsumerConfig returns default subscriber configuration.
func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		URL:           nats.DefaultURL,
		Channel:       models.ChannelName,
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

// Consumer subscribes to the broadcast channel and forwards every
// message to the websocket hub unchanged. Plain pub/sub: no ordering
// guarantee across senders, no replay, no payload validation.
type Consumer struct {
	hub    *Hub
	nc     *nats.Conn
	sub    *nats.Subscription
	config ConsumerConfig
}

// NewConsumer connects to the broker and creates a consumer.
func NewConsumer(hub *Hub, config ConsumerConfig) (*Consumer, error) {
	opts := []nats.Option{
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}
	if config.User != "" {
		opts = append(opts, nats.UserInfo(config.User, config.Password))
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &Consumer{
		hub:    hub,
		nc:     nc,
		config: config,
	}, nil
}

// Conn exposes the underlying connection so the relay endpoint in the
// same process can publish on it.
func (c *Consumer) Conn() *nats.Conn {
	return c.nc
}

// Start subscribes to the channel and blocks until the context ends.
func (c *Consumer) Start(ctx context.Context) error {
	log.Info().Str("channel", c.config.Channel).Msg("starting broadcast consumer")

	sub, err := c.nc.Subscribe(c.config.Channel, func(msg *nats.Msg) {
		c.hub.Broadcast(msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe to channel: %w", err)
	}
	c.sub = sub

	<-ctx.Done()

	log.Info().Msg("broadcast consumer shutting down")
	if err := sub.Unsubscribe(); err != nil {
		log.Error().Err(err).Msg("failed to unsubscribe")
	}
	return nil
}

// Stop closes the broker connection.
func (c *Consumer) Stop() error {
	log.Info().Msg("stopping broadcast consumer")
	if c.nc != nil {
		c.nc.Close()
	}
	return nil
}
