package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelet/internal/audioplayer"
	"github.com/llehouerou/wavelet/internal/config"
	"github.com/llehouerou/wavelet/internal/errmsg"
	"github.com/llehouerou/wavelet/internal/logging"
	"github.com/llehouerou/wavelet/internal/mpris"
	"github.com/llehouerou/wavelet/internal/player"
	"github.com/llehouerou/wavelet/internal/state"
	"github.com/llehouerou/wavelet/internal/stderr"
	"github.com/llehouerou/wavelet/internal/ui/app"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		stderr.WriteOriginal(err.Error() + "\n")
		stderr.Stop()
		os.Exit(1)
	}
	stderr.Stop()
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	logger, logFile, err := logging.Open(cfg.Log)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLogOpen, err))
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	// ALSA writes to fd 2 directly; keep it off the UI.
	if err := stderr.Start(func(line string) {
		logger.Warn("audio backend", "stderr", line)
	}); err != nil {
		logger.Warn("stderr capture disabled", "error", err)
	}

	var stateMgr *state.Manager
	if cfg.State.Remember {
		stateMgr, err = state.Open()
		if err != nil {
			logger.Error(errmsg.Format(errmsg.OpStateLoad, err))
		} else {
			defer stateMgr.Close()
		}
	}

	element := player.New()
	defer element.Close()

	opts := []audioplayer.Option{audioplayer.WithLogger(logger)}
	if cfg.SyncEnded {
		opts = append(opts, audioplayer.WithEndedSync())
	}
	ap := audioplayer.New(element, opts...)

	restore(ap, cfg, stateMgr, args, logger)

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(ap)
		if err != nil {
			logger.Error(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer adapter.Close()
		}
	}

	p := tea.NewProgram(app.New(ap), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	if stateMgr != nil {
		if err := stateMgr.SavePlayback(ap.Source(), ap.Loop()); err != nil {
			logger.Error(errmsg.Format(errmsg.OpStateSave, err))
		}
	}
	return nil
}

// restore applies the startup source and loop flag. A command-line source
// or a configured one is played; a remembered one is only assigned.
func restore(ap *audioplayer.Player, cfg *config.Config, stateMgr *state.Manager, args []string, logger *slog.Logger) {
	loop := cfg.Loop
	var remembered string
	if stateMgr != nil {
		saved, err := stateMgr.GetPlayback()
		if err != nil {
			logger.Error(errmsg.Format(errmsg.OpStateLoad, err))
		} else if saved != nil {
			remembered = saved.Source
			loop = saved.Loop
		}
	}
	if loop {
		ap.ToggleLoop()
	}

	src := cfg.Source
	if len(args) > 0 {
		src = args[0]
	}

	switch {
	case src != "":
		if err := ap.Play(src); err != nil {
			logger.Error(errmsg.FormatWith(errmsg.OpPlaybackStart, src, err))
		}
	case remembered != "":
		ap.SetSource(remembered)
	}
}
