// internal/player/interface.go
package player

// MediaElement is the host-provided playable-media handle.
//
// It owns decoding and output. Callers only assign a source, flip the
// loop flag and start or pause playback.
type MediaElement interface {
	Source() string
	SetSource(src string)
	Loop() bool
	SetLoop(loop bool)
	Play() error
	Pause() error
}

// EndNotifier is implemented by elements that report when playback reaches
// the end of the source without looping.
type EndNotifier interface {
	OnEnded(fn func())
}

// Verify Element implements MediaElement and EndNotifier at compile time.
var (
	_ MediaElement = (*Element)(nil)
	_ EndNotifier  = (*Element)(nil)
)
