package audioplayer

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavelet/internal/player"
)

func newTestPlayer(t *testing.T, opts ...Option) (*Player, *player.Mock, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	el := player.NewMock()
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]Option{WithLogger(logger)}, opts...)
	return New(el, opts...), el, &logs
}

func TestPlay_WithSource_SetsSourceAndPlays(t *testing.T) {
	p, el, _ := newTestPlayer(t)

	require.NoError(t, p.Play("/music/a.mp3"))

	assert.Equal(t, "/music/a.mp3", el.Source())
	assert.True(t, p.IsPlaying())
	assert.Equal(t, 1, el.PlayCalls())
	assert.Equal(t, player.Playing, el.State())
}

func TestPlay_WithSource_RestartsEvenWhenPlaying(t *testing.T) {
	p, el, _ := newTestPlayer(t)

	require.NoError(t, p.Play("/music/a.mp3"))
	require.NoError(t, p.Play("/music/b.mp3"))

	assert.Equal(t, "/music/b.mp3", p.Source())
	assert.True(t, p.IsPlaying())
	assert.Equal(t, 2, el.PlayCalls())
}

func TestPlay_NoSource_IsNoop(t *testing.T) {
	p, el, logs := newTestPlayer(t)

	require.NoError(t, p.Play(""))

	assert.False(t, p.IsPlaying())
	assert.Equal(t, 0, el.PlayCalls())
	assert.Contains(t, logs.String(), "no source")
}

func TestPlay_Twice_DoesNotRestart(t *testing.T) {
	p, el, logs := newTestPlayer(t)
	p.SetSource("/music/a.mp3")

	require.NoError(t, p.Play(""))
	require.NoError(t, p.Play(""))

	assert.True(t, p.IsPlaying())
	assert.Equal(t, 1, el.PlayCalls())
	assert.Contains(t, logs.String(), "is playing")
}

func TestPlay_AfterSetSource(t *testing.T) {
	p, el, _ := newTestPlayer(t)
	p.SetSource("/music/a.mp3")

	assert.False(t, p.IsPlaying())
	require.NoError(t, p.Play(""))

	assert.True(t, p.IsPlaying())
	assert.Equal(t, 1, el.PlayCalls())
}

func TestPlay_ElementErrorStillMarksPlaying(t *testing.T) {
	p, el, _ := newTestPlayer(t)
	playErr := errors.New("device busy")
	el.SetPlayError(playErr)

	err := p.Play("/music/a.mp3")

	require.ErrorIs(t, err, playErr)
	assert.True(t, p.IsPlaying())
	assert.Equal(t, "/music/a.mp3", el.Source())
}

func TestPlay_NoArg_ElementErrorStillMarksPlaying(t *testing.T) {
	p, el, _ := newTestPlayer(t)
	p.SetSource("/music/a.mp3")
	playErr := errors.New("device busy")
	el.SetPlayError(playErr)

	err := p.Play("")

	require.ErrorIs(t, err, playErr)
	assert.True(t, p.IsPlaying())

	// The flag now blocks a second start, as with a successful play.
	require.NoError(t, p.Play(""))
	assert.Equal(t, 1, el.PlayCalls())
}

func TestPlay_UnsupportedSourceOnRealElement(t *testing.T) {
	p := New(player.New(), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	err := p.Play("/music/track.txt")

	require.ErrorIs(t, err, player.ErrUnsupportedFormat)
	assert.True(t, p.IsPlaying())
	assert.Equal(t, "/music/track.txt", p.Source())
}

func TestToggleLoop_FlipsElementFlag(t *testing.T) {
	p, el, _ := newTestPlayer(t)

	for _, want := range []bool{true, false, true} {
		p.ToggleLoop()
		assert.Equal(t, want, el.Loop())
		assert.Equal(t, want, p.Loop())
	}
}

func TestPause(t *testing.T) {
	tests := []struct {
		name      string
		play      bool
		wantCalls int
		wantState player.State
		wantFlag  bool
	}{
		{"when playing", true, 1, player.Paused, false},
		{"when not playing", false, 0, player.Stopped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, el, _ := newTestPlayer(t)
			p.SetSource("/music/a.mp3")
			if tt.play {
				require.NoError(t, p.Play(""))
			}

			require.NoError(t, p.Pause())

			assert.Equal(t, tt.wantCalls, el.PauseCalls())
			assert.Equal(t, tt.wantState, el.State())
			assert.Equal(t, tt.wantFlag, p.IsPlaying())
		})
	}
}

func TestPause_Twice(t *testing.T) {
	p, el, _ := newTestPlayer(t)
	require.NoError(t, p.Play("/music/a.mp3"))

	require.NoError(t, p.Pause())
	require.NoError(t, p.Pause())

	assert.Equal(t, 1, el.PauseCalls())
}

func TestPause_ElementErrorKeepsFlag(t *testing.T) {
	p, el, _ := newTestPlayer(t)
	require.NoError(t, p.Play("/music/a.mp3"))
	el.SetPauseError(errors.New("pause failed"))

	require.Error(t, p.Pause())
	assert.True(t, p.IsPlaying())
}

func TestPauseThenPlay_Resumes(t *testing.T) {
	p, el, _ := newTestPlayer(t)
	require.NoError(t, p.Play("/music/a.mp3"))
	require.NoError(t, p.Pause())

	require.NoError(t, p.Play(""))

	assert.True(t, p.IsPlaying())
	assert.Equal(t, 2, el.PlayCalls())
	assert.Equal(t, player.Playing, el.State())
}

func TestToggle(t *testing.T) {
	p, el, _ := newTestPlayer(t)
	p.SetSource("/music/a.mp3")

	require.NoError(t, p.Toggle())
	assert.True(t, p.IsPlaying())

	require.NoError(t, p.Toggle())
	assert.False(t, p.IsPlaying())
	assert.Equal(t, player.Paused, el.State())
}

func TestToggle_ConcurrentCallsStayConsistent(t *testing.T) {
	p, el, _ := newTestPlayer(t)
	p.SetSource("/music/a.mp3")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Toggle()
		}()
	}
	wg.Wait()

	// Each toggle performs exactly one element call.
	assert.Equal(t, 50, el.PlayCalls()+el.PauseCalls())
	assert.Equal(t, 25, el.PlayCalls())
	assert.False(t, p.IsPlaying())
}

func TestFlagDriftsWithoutEndedSync(t *testing.T) {
	p, el, logs := newTestPlayer(t)
	require.NoError(t, p.Play("/music/a.mp3"))

	el.SimulateEnded()

	assert.True(t, p.IsPlaying())
	assert.Equal(t, player.Stopped, el.State())

	// The stale flag swallows the next argument-less play.
	require.NoError(t, p.Play(""))
	assert.Equal(t, 1, el.PlayCalls())
	assert.Contains(t, logs.String(), "is playing")
}

func TestEndedSync_ClearsFlag(t *testing.T) {
	p, el, _ := newTestPlayer(t, WithEndedSync())
	require.NoError(t, p.Play("/music/a.mp3"))

	el.SimulateEnded()

	assert.False(t, p.IsPlaying())
	require.NoError(t, p.Play(""))
	assert.Equal(t, 2, el.PlayCalls())
	assert.True(t, p.IsPlaying())
}

func TestEndedSync_LoopingKeepsFlag(t *testing.T) {
	p, el, _ := newTestPlayer(t, WithEndedSync())
	p.ToggleLoop()
	require.NoError(t, p.Play("/music/a.mp3"))

	el.SimulateEnded()

	assert.True(t, p.IsPlaying())
}

func TestExternalPauseIsNotObserved(t *testing.T) {
	p, el, _ := newTestPlayer(t, WithEndedSync())
	require.NoError(t, p.Play("/music/a.mp3"))

	el.SimulateExternalPause()

	assert.True(t, p.IsPlaying())
	assert.Equal(t, player.Paused, el.State())
}
