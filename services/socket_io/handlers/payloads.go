package handlers

import (
	"Playlister/models"
	"encoding/json"
	"errors"
)

// Inbound event payloads. socket.io hands us decoded JSON as
// map[string]interface{}; each handler decodes args[0] into one of these
// typed requests before touching any room state, and rejects anything
// that doesn't fit.

type CreateRoomRequest struct {
	DisplayName string `json:"displayName"`
}

type JoinRoomRequest struct {
	RoomCode string `json:"roomCode"`
	UserName string `json:"userName"`
}

type TrackPayload struct {
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	URI        string `json:"uri"`
	PreviewURL string `json:"preview_url"`
	Image      string `json:"image"`
	DurationMs int64  `json:"duration_ms"`
	AddedBy    string `json:"addedBy"`
}

type AddToQueueRequest struct {
	RoomCode string       `json:"roomCode"`
	Track    TrackPayload `json:"track"`
}

type RemoveFromQueueRequest struct {
	RoomCode string `json:"roomCode"`
	Index    *int   `json:"index"` // pointer so a missing index is detectable
}

type SetHostDeviceRequest struct {
	RoomCode string `json:"roomCode"`
	DeviceID string `json:"deviceId"`
}

type ReportPlaybackRequest struct {
	RoomCode      string               `json:"roomCode"`
	PlaybackState models.PlaybackState `json:"playbackState"`
}

var errMissingPayload = errors.New("missing event payload")

// decodePayload maps the first event argument onto dst via JSON. It never
// coerces: a payload of the wrong shape fails here instead of panicking
// deeper in a type assertion.
func decodePayload(args []interface{}, dst interface{}) error {
	if len(args) < 1 || args[0] == nil {
		return errMissingPayload
	}
	raw, err := json.Marshal(args[0])
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// toQueuedTrack converts the wire track into the room-local shape. The
// registry fills in id, timestamp and the submitter name.
func (t TrackPayload) toQueuedTrack() models.QueuedTrack {
	return models.QueuedTrack{
		Name:       t.Name,
		Artist:     t.Artist,
		URI:        t.URI,
		PreviewURL: t.PreviewURL,
		Image:      t.Image,
		DurationMs: t.DurationMs,
		AddedBy:    t.AddedBy,
	}
}
