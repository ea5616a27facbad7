// Package app is the terminal front end: a status line and a few keys
// driving the audio player.
package app

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelet/internal/errmsg"
	"github.com/llehouerou/wavelet/internal/player"
)

// Player is the part of the audio player the UI drives.
type Player interface {
	Play(src string) error
	Pause() error
	Toggle() error
	ToggleLoop()
	IsPlaying() bool
	Loop() bool
	Source() string
	TrackInfo() *player.TrackInfo
}

type tickMsg time.Time

type Model struct {
	player   Player
	input    textinput.Model
	entering bool
	errMsg   string
	width    int
}

func New(p Player) Model {
	ti := textinput.New()
	ti.Prompt = "source> "
	ti.Placeholder = "/path/to/file.mp3 or file:// URL"
	ti.CharLimit = 1024

	return Model{
		player: p,
		input:  ti,
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		return m, nil

	case tickMsg:
		// The playing flag may change under us when ended sync is on.
		return m, tickCmd()

	case tea.KeyMsg:
		if m.entering {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		op := errmsg.OpPlaybackStart
		if m.player.IsPlaying() {
			op = errmsg.OpPlaybackPause
		}
		m.setErr(op, m.player.Toggle())
	case "p":
		m.setErr(errmsg.OpPlaybackStart, m.player.Play(""))
	case "s":
		m.setErr(errmsg.OpPlaybackPause, m.player.Pause())
	case "l":
		m.player.ToggleLoop()
	case "o":
		m.entering = true
		m.errMsg = ""
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.entering = false
		m.input.Blur()
		return m, nil
	case "enter":
		src := strings.TrimSpace(m.input.Value())
		m.entering = false
		m.input.Blur()
		if src == "" {
			return m, nil
		}
		if err := m.player.Play(src); err != nil {
			m.errMsg = errmsg.FormatWith(errmsg.OpPlaybackStart, filepath.Base(src), err)
		} else {
			m.errMsg = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) setErr(op errmsg.Op, err error) {
	m.errMsg = errmsg.Format(op, err)
}

// Entering reports whether the source prompt is open.
func (m Model) Entering() bool {
	return m.entering
}

// Err returns the last error shown to the user.
func (m Model) Err() string {
	return m.errMsg
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
