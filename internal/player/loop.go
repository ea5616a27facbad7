package player

import (
	"sync"

	"github.com/gopxl/beep/v2"
)

var _ beep.Streamer = (*loopStreamer)(nil)

// loopStreamer rewinds its source when it drains and looping is enabled.
// The flag can be flipped while the speaker is streaming.
type loopStreamer struct {
	mu      sync.Mutex
	src     beep.StreamSeeker
	looping bool
	err     error
}

func newLoopStreamer(src beep.StreamSeeker, looping bool) *loopStreamer {
	return &loopStreamer{src: src, looping: looping}
}

func (l *loopStreamer) SetLooping(looping bool) {
	l.mu.Lock()
	l.looping = looping
	l.mu.Unlock()
}

func (l *loopStreamer) Looping() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.looping
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		sn, sok := l.src.Stream(samples[n:])
		n += sn
		if sok && sn > 0 {
			continue
		}
		// Source drained. An empty source would spin forever.
		if !l.Looping() || l.src.Len() == 0 {
			break
		}
		if err := l.src.Seek(0); err != nil {
			l.mu.Lock()
			l.err = err
			l.mu.Unlock()
			break
		}
	}
	return n, n > 0
}

func (l *loopStreamer) Err() error {
	l.mu.Lock()
	err := l.err
	l.mu.Unlock()
	if err != nil {
		return err
	}
	return l.src.Err()
}
