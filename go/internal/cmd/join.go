package main

import (
	"context"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mkobayashi/planning-poker/go/internal/game"
	"github.com/mkobayashi/planning-poker/go/internal/mirror"
	"github.com/mkobayashi/planning-poker/go/internal/models"
	"github.com/mkobayashi/planning-poker/go/internal/statesync"
	"github.com/mkobayashi/planning-poker/go/internal/tui"
)

var (
	joinRelayURL string
	joinName     string
	joinNoMirror bool
)

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Join a session from the terminal",
	RunE:  runJoin,
}

func init() {
	joinCmd.Flags().StringVar(&joinRelayURL, "relay-url", "http://localhost:8080", "relay endpoint base URL")
	joinCmd.Flags().StringVar(&joinName, "name", "", "display name for the gateway log")
	joinCmd.Flags().BoolVar(&joinNoMirror, "no-mirror", false, "disable the local state cache")
}

func runJoin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app := game.NewApp()
	cache := setupMirror()

	client := statesync.NewClient(joinRelayURL)
	sync := statesync.New(app, client, cache, subscribeURL(joinRelayURL, joinName))

	// Restore the cached state before the subscription exists.
	sync.Restore(ctx)

	program := tea.NewProgram(tui.New(app, sync), tea.WithAltScreen())
	sync.OnApply(func(state models.GameState) {
		program.Send(tui.StateAppliedMsg{State: state})
	})

	if err := sync.Subscribe(ctx); err != nil {
		// Local-only session: edits still apply, they just reach nobody.
		log.Warn().Err(err).Msg("could not subscribe to broadcast channel")
	}
	defer sync.Close()

	_, err := program.Run()
	return err
}

func setupMirror() mirror.Mirror {
	if joinNoMirror {
		return mirror.NewNoop()
	}

	envCfg := mirror.NewEnvConfig()
	m, err := mirror.NewRedis(&mirror.Config{
		RedisClient: redis.NewClient(&redis.Options{
			Addr:     envCfg.Addr,
			Password: envCfg.Password,
			DB:       envCfg.DB,
		}),
	})
	if err != nil {
		log.Warn().Err(err).Msg("local cache unavailable, state will not persist")
		return mirror.NewNoop()
	}
	return m
}

func subscribeURL(relayURL, name string) string {
	wsURL := "ws" + strings.TrimPrefix(relayURL, "http") + "/ws"
	if name != "" {
		wsURL += "?name=" + url.QueryEscape(name)
	}
	return wsURL
}
