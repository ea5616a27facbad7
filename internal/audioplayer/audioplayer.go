// Package audioplayer wraps a single media element with play, pause, loop
// and source operations.
//
// The Player keeps its own playing flag and uses it to skip redundant play
// and pause calls. The flag records the Player's last play or pause call;
// it is not read back from the element, so it drifts when the element
// stops on its own (end of track, external pause) unless WithEndedSync is
// used.
package audioplayer

import (
	"log/slog"
	"sync"

	"github.com/llehouerou/wavelet/internal/player"
)

const (
	msgAlreadyPlaying = "is playing"
	msgNoSource       = "no source. Use SetSource()"
)

type Player struct {
	mu      sync.Mutex
	element player.MediaElement
	playing bool
	logger  *slog.Logger
}

type Option func(*Player)

// WithLogger sets the logger used for the advisory notices.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

// WithEndedSync clears the playing flag when the element reports that a
// non-looping source ended. It has no effect on elements that do not
// implement player.EndNotifier.
func WithEndedSync() Option {
	return func(p *Player) {
		if n, ok := p.element.(player.EndNotifier); ok {
			n.OnEnded(p.handleEnded)
		}
	}
}

// New creates a Player over element.
func New(element player.MediaElement, opts ...Option) *Player {
	p := &Player{
		element: element,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetSource assigns src to the element without validating it.
func (p *Player) SetSource(src string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.element.SetSource(src)
}

// ToggleLoop flips the element's loop flag.
func (p *Player) ToggleLoop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.element.SetLoop(!p.element.Loop())
}

// Play starts playback.
//
// A non-empty src is assigned and played unconditionally. With an empty
// src, playback starts only if the element has a source and the Player is
// not already playing; otherwise a notice is logged and nothing happens.
//
// Once the element is asked to play, the flag is set even if the element
// reports an error; the error is returned as is.
func (p *Player) Play(src string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playLocked(src)
}

func (p *Player) playLocked(src string) error {
	if src != "" {
		p.element.SetSource(src)
		err := p.element.Play()
		p.playing = true
		return err
	}

	if p.element.Source() == "" {
		p.logger.Info(msgNoSource)
		return nil
	}
	if p.playing {
		p.logger.Info(msgAlreadyPlaying, "source", p.element.Source())
		return nil
	}
	err := p.element.Play()
	p.playing = true
	return err
}

// Pause pauses playback if the Player is playing.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pauseLocked()
}

func (p *Player) pauseLocked() error {
	if !p.playing {
		return nil
	}
	if err := p.element.Pause(); err != nil {
		return err
	}
	p.playing = false
	return nil
}

// Toggle pauses when playing and resumes otherwise.
func (p *Player) Toggle() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		return p.pauseLocked()
	}
	return p.playLocked("")
}

// IsPlaying returns the tracked flag.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.element.Source()
}

func (p *Player) Loop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.element.Loop()
}

// TrackInfo returns tag metadata of the loaded source when the element
// provides it.
func (p *Player) TrackInfo() *player.TrackInfo {
	if ti, ok := p.element.(interface{ TrackInfo() *player.TrackInfo }); ok {
		return ti.TrackInfo()
	}
	return nil
}

// Element returns the wrapped element.
func (p *Player) Element() player.MediaElement {
	return p.element
}

func (p *Player) handleEnded() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		p.logger.Debug("source ended", "source", p.element.Source())
	}
	p.playing = false
}
