package events

// Event type constants for kelindar/event.
const (
	TypeColorChanged uint32 = iota + 1
	TypeStatusResolved
	TypeLogEntry
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// ColorChangedEvent is published after the strip shows a new color.
type ColorChangedEvent struct {
	Color     string `json:"color" example:"amber" doc:"New color"`
	Previous  string `json:"previous" example:"green" doc:"Previously displayed color, empty on first write"`
	Origin    string `json:"origin" example:"monitor" doc:"Component that requested the change: monitor or api"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ColorChangedEvent.
func (e ColorChangedEvent) Type() uint32 { return TypeColorChanged }

// SignalState is the wire form of one status signal.
type SignalState struct {
	Source  string   `json:"source" example:"core" doc:"Status source name"`
	Kind    string   `json:"kind" example:"update_pending" doc:"Signal kind"`
	Active  bool     `json:"active" doc:"Whether the source reports a problem"`
	Known   bool     `json:"known" doc:"False when the source query failed"`
	Details []string `json:"details,omitempty" doc:"Unavailable devices or pending updates"`
	Error   string   `json:"error,omitempty" doc:"Query error for unknown signals"`
}

// StatusResolvedEvent is published at the end of every poll cycle.
type StatusResolvedEvent struct {
	Color     string        `json:"color" example:"green" doc:"Resolved color"`
	Rule      string        `json:"rule" example:"healthy" doc:"Rule that decided the color"`
	Degraded  bool          `json:"degraded" doc:"Whether any source failed this cycle"`
	Stale     bool          `json:"stale" doc:"Whether every source failed and the color was carried over"`
	Signals   []SignalState `json:"signals" doc:"Signals collected this cycle"`
	Timestamp string        `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for StatusResolvedEvent.
func (e StatusResolvedEvent) Type() uint32 { return TypeStatusResolved }

// LogEntryEvent carries one log line to SSE clients.
type LogEntryEvent struct {
	Timestamp  string         `json:"timestamp" doc:"Log timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"monitor" doc:"Logging module"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured attributes"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }
