package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePayloadMapsEventObject(t *testing.T) {
	args := []interface{}{map[string]interface{}{
		"roomCode": "AB12CD",
		"track": map[string]interface{}{
			"name":        "X",
			"artist":      "Y",
			"uri":         "spotify:track:123",
			"duration_ms": float64(180000),
		},
	}}

	var req AddToQueueRequest
	assert.NoError(t, decodePayload(args, &req))
	assert.Equal(t, "AB12CD", req.RoomCode)
	assert.Equal(t, "X", req.Track.Name)
	assert.Equal(t, int64(180000), req.Track.DurationMs)
}

func TestDecodePayloadRejectsMissingPayload(t *testing.T) {
	var req JoinRoomRequest
	assert.ErrorIs(t, decodePayload(nil, &req), errMissingPayload)
	assert.ErrorIs(t, decodePayload([]interface{}{nil}, &req), errMissingPayload)
}

func TestDecodePayloadRejectsWrongShape(t *testing.T) {
	var req RemoveFromQueueRequest
	err := decodePayload([]interface{}{map[string]interface{}{
		"roomCode": "AB12CD",
		"index":    "not-a-number",
	}}, &req)
	assert.Error(t, err)
}

func TestRemoveRequestDistinguishesMissingIndex(t *testing.T) {
	var req RemoveFromQueueRequest
	assert.NoError(t, decodePayload([]interface{}{map[string]interface{}{
		"roomCode": "AB12CD",
	}}, &req))
	assert.Nil(t, req.Index)

	var withZero RemoveFromQueueRequest
	assert.NoError(t, decodePayload([]interface{}{map[string]interface{}{
		"roomCode": "AB12CD",
		"index":    float64(0),
	}}, &withZero))
	if assert.NotNil(t, withZero.Index) {
		assert.Equal(t, 0, *withZero.Index)
	}
}

func TestTrackPayloadConversionKeepsFields(t *testing.T) {
	payload := TrackPayload{
		Name:       "Song",
		Artist:     "Band",
		URI:        "spotify:track:1",
		PreviewURL: "http://p",
		Image:      "http://i",
		DurationMs: 200000,
		AddedBy:    "Alice",
	}
	track := payload.toQueuedTrack()
	assert.Equal(t, "Song", track.Name)
	assert.Equal(t, "Band", track.Artist)
	assert.Equal(t, "spotify:track:1", track.URI)
	assert.Equal(t, int64(200000), track.DurationMs)
	assert.Equal(t, "Alice", track.AddedBy)
	assert.Empty(t, track.ID, "id is assigned by the registry, not the wire")
}
