package player

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
	extOGA  = ".oga"
)

// IsMusicFile reports whether the element can decode path.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extWAV, extOGG, extOGA:
		return true
	}
	return false
}

// LocalPath resolves a source to a filesystem path.
// Plain paths are returned as is, file:// URLs are unwrapped and any
// other scheme is rejected.
func LocalPath(src string) (string, error) {
	u, err := url.Parse(src)
	// Single-letter schemes are Windows drive letters.
	if err != nil || len(u.Scheme) <= 1 {
		return src, nil
	}
	if !strings.EqualFold(u.Scheme, "file") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Path == "" {
		return "", fmt.Errorf("%w: empty file url", ErrNoSource)
	}
	return u.Path, nil
}

// openLocked decodes e.src and hands it to the speaker.
func (e *Element) openLocked() error {
	e.closeLocked()

	path, err := LocalPath(e.src)
	if err != nil {
		return err
	}
	if !IsMusicFile(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	streamer, format, err := decode(f, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		f.Close()
		return err
	}

	if !speakerInitialized {
		speakerSampleRate = format.SampleRate
		err = speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10))
		if err != nil {
			streamer.Close()
			f.Close()
			return err
		}
		speakerInitialized = true
	}

	e.file = f
	e.streamer = streamer
	e.format = format
	e.looper = newLoopStreamer(streamer, e.loop)

	// Resample if the track's sample rate differs from the speaker's
	var playStreamer beep.Streamer = e.looper
	if format.SampleRate != speakerSampleRate {
		playStreamer = beep.Resample(4, format.SampleRate, speakerSampleRate, e.looper)
	}
	e.ctrl = &beep.Ctrl{Streamer: playStreamer, Paused: false}

	info, _ := ReadTrackInfo(path)
	if info == nil {
		info = &TrackInfo{Path: path, Title: filepath.Base(path)}
	}
	e.trackInfo = info

	e.loaded = e.src
	e.state = Playing
	e.gen++
	gen := e.gen

	speaker.Play(beep.Seq(e.ctrl, beep.Callback(func() {
		// The speaker lock is held here; finish on another goroutine.
		go e.handleEnded(gen)
	})))

	return nil
}

func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case extMP3:
		return mp3.Decode(f)
	case extFLAC:
		// Skip ID3v2 tag if present (some taggers add it to FLAC files)
		if err := skipID3v2(f); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(f)
	case extWAV:
		return wav.Decode(f)
	case extOGG, extOGA:
		return vorbis.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
// Some FLAC files have ID3v2 tags prepended, which the FLAC decoder doesn't handle.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is a syncsafe integer in bytes 6-9 (7 bits per byte)
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])

	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
