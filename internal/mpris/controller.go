package mpris

import "github.com/llehouerou/wavelet/internal/player"

// Controller is the player surface driven by MPRIS clients.
type Controller interface {
	Play(src string) error
	Pause() error
	Toggle() error
	ToggleLoop()
	IsPlaying() bool
	Loop() bool
	Source() string
	TrackInfo() *player.TrackInfo
}
