package models

// ChannelName is the single broadcast channel all sessions share.
const ChannelName = "planning-poker-channel"

// EventGameStateUpdated is the only event carried on the channel.
const EventGameStateUpdated = "game-state-updated"

// EventData wraps the snapshot inside a broadcast envelope.
type EventData struct {
	GameState GameState `json:"gameState"`
}

// Envelope is the wire format fanned out to subscribed clients.
type Envelope struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}

// TriggerRequest is the body of POST /api/pusher.
type TriggerRequest struct {
	Event     string    `json:"event"`
	GameState GameState `json:"gameState"`
}
