//go:build windows

// Package stderr is a no-op on Windows, where the audio backend does not
// write to the process stderr.
package stderr

import "os"

// Start is a no-op on Windows.
func Start(_ func(line string)) error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func Stop() {}
