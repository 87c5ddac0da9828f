package dashboard

import (
	"sync"
	"time"
)

// PopupDelay is how long the map should wait after flying before it opens the
// popup, so the popup is anchored after the camera settles.
const PopupDelay = 100 * time.Millisecond

// CommandKind names an imperative map operation.
type CommandKind string

const (
	CommandFlyTo     CommandKind = "fly_to"
	CommandOpenPopup CommandKind = "open_popup"
)

// Command is one queued map operation. Fields not used by a kind are zero.
type Command struct {
	Kind         CommandKind `json:"kind"`
	EarthquakeID string      `json:"earthquake_id"`
	Latitude     float64     `json:"latitude,omitempty"`
	Longitude    float64     `json:"longitude,omitempty"`
	Zoom         int         `json:"zoom,omitempty"`
	DelayMS      int64       `json:"delay_ms,omitempty"`
}

// FlyTo moves the camera to a point.
func FlyTo(id string, lat, lon float64, zoom int) Command {
	return Command{Kind: CommandFlyTo, EarthquakeID: id, Latitude: lat, Longitude: lon, Zoom: zoom}
}

// OpenPopup opens a marker's popup after PopupDelay.
func OpenPopup(id string) Command {
	return Command{Kind: CommandOpenPopup, EarthquakeID: id, DelayMS: PopupDelay.Milliseconds()}
}

// CommandQueue is a bounded FIFO. When full, the oldest command is dropped.
type CommandQueue struct {
	mu       sync.Mutex
	commands []Command
	capacity int
}

// NewCommandQueue creates a queue holding at most capacity commands. A
// capacity below 1 is treated as 1.
func NewCommandQueue(capacity int) *CommandQueue {
	capacity = max(capacity, 1)
	return &CommandQueue{
		commands: make([]Command, 0, capacity),
		capacity: capacity,
	}
}

// Push appends commands in order, evicting from the front as needed.
func (q *CommandQueue) Push(cmds ...Command) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.commands = append(q.commands, cmds...)
	if over := len(q.commands) - q.capacity; over > 0 {
		q.commands = append(q.commands[:0], q.commands[over:]...)
	}
}

// Drain returns all queued commands oldest first and empties the queue.
func (q *CommandQueue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Command, len(q.commands))
	copy(out, q.commands)
	q.commands = q.commands[:0]
	return out
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.commands)
}
