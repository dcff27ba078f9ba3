package rooms

import (
	"Playlister/models"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrNotInRoom       = errors.New("you are not a member of this room")
	ErrNotHost         = errors.New("only the host can do that")
	ErrIndexOutOfRange = errors.New("queue index out of range")
	ErrCodeSpace       = errors.New("could not generate a unique room code")
)

// How many times NewCode retries before giving up. With 30^6 codes this
// bound is unreachable unless the process is hosting millions of rooms.
const maxCodeAttempts = 5

// Registry owns every live Room. It is constructed once at process start
// and injected into the socket handlers and HTTP controllers; all state
// lives behind its mutex, which is held for the duration of a single
// transition and never across an upstream call.
type Registry struct {
	mutex sync.RWMutex
	rooms map[string]*models.Room

	// When a guest joins an unknown code the room is created on the fly;
	// this decides whether that first joiner gets host authority.
	promoteFirstJoiner bool
}

func NewRegistry(promoteFirstJoiner bool) *Registry {
	return &Registry{
		rooms:              make(map[string]*models.Room),
		promoteFirstJoiner: promoteFirstJoiner,
	}
}

// Departure describes what happened to one room when a connection left it.
type Departure struct {
	Code       string
	RoomClosed bool
	NewHostID  string // non-empty if host succession happened
	Users      []models.Member
}

// Normalize maps a user-supplied room code onto its canonical form; codes
// are case-insensitive everywhere.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewCode reserves nothing: it just generates a code that is not in use
// right now. Rooms come into existence on the first create_room/join_room
// against the code.
func (r *Registry) NewCode() (string, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := GenerateCode()
		if err != nil {
			return "", err
		}
		if _, taken := r.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpace
}

// CreateRoom creates a fresh room with the caller as its host member.
func (r *Registry) CreateRoom(connectionID, displayName string) (models.RoomSnapshot, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var code string
	for i := 0; ; i++ {
		c, err := GenerateCode()
		if err != nil {
			return models.RoomSnapshot{}, err
		}
		if _, taken := r.rooms[c]; !taken {
			code = c
			break
		}
		if i+1 >= maxCodeAttempts {
			return models.RoomSnapshot{}, ErrCodeSpace
		}
	}

	room := &models.Room{
		Code:      code,
		CreatedAt: time.Now(),
	}
	member := &models.Member{
		ConnectionID: connectionID,
		Name:         fallbackName(displayName, connectionID),
		IsHost:       true,
	}
	room.Members = append(room.Members, member)
	room.HostConnectionID = connectionID
	r.rooms[code] = room

	return snapshotLocked(room), nil
}

// JoinRoom adds the connection to the room, creating the room if the code
// is unknown (guest-first-join). Joining a room you are already in is a
// no-op that returns the current snapshot, so members never duplicate.
func (r *Registry) JoinRoom(code, connectionID, displayName string) (models.RoomSnapshot, bool, error) {
	code = Normalize(code)
	if code == "" {
		return models.RoomSnapshot{}, false, ErrRoomNotFound
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	room, exists := r.rooms[code]
	if !exists {
		room = &models.Room{
			Code:      code,
			CreatedAt: time.Now(),
		}
		r.rooms[code] = room
	}

	for _, m := range room.Members {
		if m.ConnectionID == connectionID {
			return snapshotLocked(room), m.IsHost, nil
		}
	}

	member := &models.Member{
		ConnectionID: connectionID,
		Name:         fallbackName(displayName, connectionID),
	}
	if len(room.Members) == 0 && r.promoteFirstJoiner {
		member.IsHost = true
		room.HostConnectionID = connectionID
	}
	room.Members = append(room.Members, member)

	return snapshotLocked(room), member.IsHost, nil
}

// AddTrack appends a track to the room queue, stamping it with a fresh id,
// the server time and the submitter's display name. Any member may add.
func (r *Registry) AddTrack(code, connectionID string, track models.QueuedTrack) ([]models.QueuedTrack, error) {
	code = Normalize(code)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	room, exists := r.rooms[code]
	if !exists {
		return nil, ErrRoomNotFound
	}

	track.ID = uuid.NewString()
	track.AddedAt = time.Now()
	if m := findMember(room, connectionID); m != nil {
		track.AddedBy = m.Name
	} else if track.AddedBy == "" {
		track.AddedBy = "Guest"
	}
	room.Queue = append(room.Queue, track)

	return copyQueue(room.Queue), nil
}

// RemoveTrack removes the queue entry at index. Host only; the index is
// validated under the lock so concurrent removals cannot double-delete.
func (r *Registry) RemoveTrack(code, connectionID string, index int) ([]models.QueuedTrack, error) {
	code = Normalize(code)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	room, exists := r.rooms[code]
	if !exists {
		return nil, ErrRoomNotFound
	}
	m := findMember(room, connectionID)
	if m == nil || !m.IsHost {
		return nil, ErrNotHost
	}
	if index < 0 || index >= len(room.Queue) {
		return nil, ErrIndexOutOfRange
	}
	room.Queue = append(room.Queue[:index], room.Queue[index+1:]...)

	return copyQueue(room.Queue), nil
}

// SetHostDevice transfers host authority to the caller and records its
// playback device. Demoting the previous host and promoting the caller
// happen in the same transition, so at most one member holds host
// authority whenever the lock is released.
func (r *Registry) SetHostDevice(code, connectionID, deviceID string) ([]models.Member, error) {
	code = Normalize(code)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	room, exists := r.rooms[code]
	if !exists {
		return nil, ErrRoomNotFound
	}
	caller := findMember(room, connectionID)
	if caller == nil {
		return nil, ErrNotInRoom
	}

	for _, m := range room.Members {
		m.IsHost = false
	}
	caller.IsHost = true
	room.HostConnectionID = connectionID
	room.HostDeviceID = deviceID

	return copyMembers(room.Members), nil
}

// SetPlayback stores the host's playback snapshot.
func (r *Registry) SetPlayback(code, connectionID string, state models.PlaybackState) error {
	code = Normalize(code)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	room, exists := r.rooms[code]
	if !exists {
		return ErrRoomNotFound
	}
	if findMember(room, connectionID) == nil {
		return ErrNotInRoom
	}
	room.CurrentPlayback = &state

	return nil
}

// Disconnect removes the connection from every room it belongs to. If the
// departing member held host authority and other members remain, the
// earliest-joined remaining member is promoted. Rooms left empty are
// deleted immediately.
func (r *Registry) Disconnect(connectionID string) []Departure {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var departures []Departure
	for code, room := range r.rooms {
		idx := -1
		for i, m := range room.Members {
			if m.ConnectionID == connectionID {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		wasHost := room.Members[idx].IsHost
		room.Members = append(room.Members[:idx], room.Members[idx+1:]...)

		dep := Departure{Code: code}
		if len(room.Members) == 0 {
			delete(r.rooms, code)
			dep.RoomClosed = true
			departures = append(departures, dep)
			continue
		}

		if wasHost {
			// First-joined remaining member wins.
			next := room.Members[0]
			next.IsHost = true
			room.HostConnectionID = next.ConnectionID
			dep.NewHostID = next.ConnectionID
		}
		dep.Users = copyMembers(room.Members)
		departures = append(departures, dep)
	}
	return departures
}

// Lookup returns a snapshot of the room, if it exists.
func (r *Registry) Lookup(code string) (models.RoomSnapshot, bool) {
	code = Normalize(code)

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	room, exists := r.rooms[code]
	if !exists {
		return models.RoomSnapshot{}, false
	}
	return snapshotLocked(room), true
}

// Playback returns the last reported playback snapshot, if any.
func (r *Registry) Playback(code string) (models.PlaybackState, bool) {
	code = Normalize(code)

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	room, exists := r.rooms[code]
	if !exists || room.CurrentPlayback == nil {
		return models.PlaybackState{}, false
	}
	return *room.CurrentPlayback, true
}

// RoomCount reports how many rooms are live.
func (r *Registry) RoomCount() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.rooms)
}

func findMember(room *models.Room, connectionID string) *models.Member {
	for _, m := range room.Members {
		if m.ConnectionID == connectionID {
			return m
		}
	}
	return nil
}

func fallbackName(displayName, connectionID string) string {
	displayName = strings.TrimSpace(displayName)
	if displayName != "" {
		return displayName
	}
	suffix := connectionID
	if len(suffix) > 4 {
		suffix = suffix[:4]
	}
	return "Guest-" + suffix
}

func copyMembers(members []*models.Member) []models.Member {
	out := make([]models.Member, len(members))
	for i, m := range members {
		out[i] = *m
	}
	return out
}

func copyQueue(queue []models.QueuedTrack) []models.QueuedTrack {
	out := make([]models.QueuedTrack, len(queue))
	copy(out, queue)
	return out
}

func snapshotLocked(room *models.Room) models.RoomSnapshot {
	return models.RoomSnapshot{
		Code:  room.Code,
		Users: copyMembers(room.Members),
		Queue: copyQueue(room.Queue),
	}
}
