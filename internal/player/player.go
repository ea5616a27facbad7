package player

import (
	"errors"
	"os"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

var (
	ErrNoSource          = errors.New("no source set")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnsupportedScheme = errors.New("unsupported source scheme")
)

// Element is a MediaElement that decodes local audio files with beep and
// plays them on the default output device.
type Element struct {
	mu sync.Mutex

	src  string
	loop bool

	state     State
	loaded    string // source currently decoded, empty when nothing is open
	gen       uint64 // bumped on every open so stale end callbacks are ignored
	file      *os.File
	streamer  beep.StreamSeekCloser
	format    beep.Format
	looper    *loopStreamer
	ctrl      *beep.Ctrl
	trackInfo *TrackInfo
	onEnded   func()
}

type TrackInfo struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Year   int
	Track  int
}

var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

func New() *Element {
	return &Element{state: Stopped}
}

// Source returns the assigned source, which may differ from what is loaded.
func (e *Element) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src
}

// SetSource assigns a new source. Any loaded stream is dropped and playback
// stops; the next Play opens the new source from the start.
func (e *Element) SetSource(src string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.src = src
	e.closeLocked()
}

func (e *Element) Loop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loop
}

// SetLoop sets the loop flag. It applies to the current stream immediately.
func (e *Element) SetLoop(loop bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loop = loop
	if e.looper != nil {
		e.looper.SetLooping(loop)
	}
}

func (e *Element) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// TrackInfo returns tag metadata of the loaded source, or nil.
func (e *Element) TrackInfo() *TrackInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trackInfo
}

// OnEnded registers fn to be called when a non-looping stream finishes.
// fn runs on its own goroutine.
func (e *Element) OnEnded(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onEnded = fn
}

// Close stops playback and releases the decoded stream.
func (e *Element) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeLocked()
	return nil
}

func (e *Element) closeLocked() {
	if e.ctrl != nil && speakerInitialized {
		speaker.Clear()
	}
	if e.streamer != nil {
		e.streamer.Close()
		e.streamer = nil
	}
	if e.file != nil {
		e.file.Close()
		e.file = nil
	}
	e.ctrl = nil
	e.looper = nil
	e.trackInfo = nil
	e.loaded = ""
	e.state = Stopped
}

// handleEnded runs after the speaker drained the stream of generation gen.
func (e *Element) handleEnded(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || e.ctrl == nil {
		e.mu.Unlock()
		return
	}
	e.closeLocked()
	fn := e.onEnded
	e.mu.Unlock()

	if fn != nil {
		fn()
	}
}
