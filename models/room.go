package models

import (
	"encoding/json"
	"time"
)

/*
 * 'Room' defines the structure of a Playlister listening room.
 * A room is identified by a short shareable code and holds the live
 * membership list and the shared track queue. Rooms exist only in
 * process memory and are deleted the moment the last member leaves.
 */
type Room struct {
	Code             string
	Members          []*Member // join order, used for host succession
	Queue            []QueuedTrack
	HostConnectionID string
	HostDeviceID     string
	CurrentPlayback  *PlaybackState
	CreatedAt        time.Time
}

// Member is one live socket connection inside a room. A refresh or
// reconnect produces a brand-new member with a new connection id.
type Member struct {
	ConnectionID string `json:"connectionId"`
	Name         string `json:"name"`
	IsHost       bool   `json:"isHost"`
}

// QueuedTrack is a denormalized snapshot of a Spotify track plus
// room-local metadata. Immutable once enqueued.
type QueuedTrack struct {
	ID         string    `json:"id"` // assigned at enqueue time
	Name       string    `json:"name"`
	Artist     string    `json:"artist"`
	URI        string    `json:"uri"`
	PreviewURL string    `json:"preview_url,omitempty"`
	Image      string    `json:"image,omitempty"`
	DurationMs int64     `json:"duration_ms,omitempty"`
	AddedBy    string    `json:"addedBy"`
	AddedAt    time.Time `json:"addedAt"`
}

// PlaybackState is the last playback snapshot reported by the host.
// CurrentTrack is kept as raw JSON: it is the provider's track object,
// relayed to guests without interpretation.
type PlaybackState struct {
	CurrentTrack json.RawMessage `json:"currentTrack,omitempty"`
	Position     int64           `json:"position"`
	Duration     int64           `json:"duration"`
	IsPlaying    bool            `json:"isPlaying"`
}

// RoomSnapshot is a read-only copy of a room's shared state, safe to
// serialize after the registry lock has been released.
type RoomSnapshot struct {
	Code  string        `json:"roomCode"`
	Users []Member      `json:"users"`
	Queue []QueuedTrack `json:"queue"`
}
