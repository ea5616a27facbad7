// internal/player/state.go
package player

// State is the element's real playback state.
//
//	┌──────────┐      play       ┌──────────┐
//	│  Stopped │ ───────────────▶│  Playing │
//	└──────────┘                 └──────────┘
//	     ▲                          │    ▲
//	     │ end (no loop)      pause │    │ play
//	     │                          ▼    │
//	     │                       ┌──────────┐
//	     └───────────────────────│  Paused  │
//	          new source         └──────────┘
//
// Setting a new source while Paused or Playing drops the decoded stream;
// the next Play reopens it from the start.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a stream is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
