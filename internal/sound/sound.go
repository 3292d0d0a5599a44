// Package sound provides fire-and-forget audible cues. Playback failures
// are logged and swallowed; a broken terminal bell must never block or fault
// the UI flow that requested it.
package sound

import (
	"fmt"
	"io"
	"os"

	"github.com/vigilops/vigil/internal/logger"
)

// Player emits a named cue.
type Player interface {
	Play(cue string) error
}

// Cue names understood by the default player.
const (
	CueDialogOpen    = "dialog-open"
	CueCriticalAlert = "critical-alert"
)

// BellPlayer rings the terminal bell for every cue. The terminal decides
// what, if anything, a bell sounds like.
type BellPlayer struct {
	w io.Writer
}

// NewBellPlayer creates a player writing the BEL control character to w;
// nil defaults to stderr, which stays outside the bubbletea-managed screen.
func NewBellPlayer(w io.Writer) *BellPlayer {
	if w == nil {
		w = os.Stderr
	}
	return &BellPlayer{w: w}
}

// Play rings the bell.
func (p *BellPlayer) Play(cue string) error {
	if _, err := p.w.Write([]byte{'\a'}); err != nil {
		return fmt.Errorf("bell write failed for cue %s: %w", cue, err)
	}
	return nil
}

// Muted is a Player that does nothing, used when sound is disabled.
type Muted struct{}

// Play does nothing.
func (Muted) Play(string) error { return nil }

// PlayAsync plays a cue without waiting for or propagating the result.
func PlayAsync(p Player, cue string) {
	if p == nil {
		return
	}
	go func() {
		if err := p.Play(cue); err != nil {
			logger.Warn("sound playback failed", "cue", cue, "error", err)
		}
	}()
}
