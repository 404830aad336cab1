package relay

import "os"

// Config holds the relay credentials and channel settings. Consumed
// only by the serve process.
type Config struct {
	AppID   string
	Key     string
	Secret  string
	Cluster string
	NATSURL string
	Channel string
}

// NewConfigFromEnv reads PUSHER_*/NATS_* environment variables (with
// defaults). Key and Secret, when set, are used as the broker
// credentials.
func NewConfigFromEnv() Config {
	return Config{
		AppID:   getEnv("PUSHER_APP_ID", ""),
		Key:     getEnv("PUSHER_KEY", ""),
		Secret:  getEnv("PUSHER_SECRET", ""),
		Cluster: getEnv("PUSHER_CLUSTER", ""),
		NATSURL: getEnv("NATS_URL", "nats://localhost:4222"),
		Channel: getEnv("CHANNEL_NAME", "planning-poker-channel"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
