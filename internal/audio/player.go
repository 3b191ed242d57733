package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/popshot/internal/config"
)

// Speaker plays sounds on the local audio device. Each Play restarts that
// kind of sound from the beginning.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	current     map[config.SoundKind]*beep.Ctrl
	initialized bool
}

// NewSpeaker creates a speaker player. Call Init before playing.
func NewSpeaker() *Speaker {
	return &Speaker{
		mixer:   &beep.Mixer{},
		current: make(map[config.SoundKind]*beep.Ctrl),
	}
}

// Init opens the audio device.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play starts kind, cutting off a previous instance of the same kind.
// It is a no-op before Init.
func (s *Speaker) Play(kind config.SoundKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	st := Sound(kind)
	if st == nil {
		return
	}
	ctrl := &beep.Ctrl{Streamer: st}

	speaker.Lock()
	if prev := s.current[kind]; prev != nil {
		prev.Streamer = nil
	}
	s.current[kind] = ctrl
	s.mixer.Add(ctrl)
	speaker.Unlock()
}

// Close silences everything and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// Bell rings the terminal bell. Used for remote sessions, where the host's
// speakers are the wrong place to play sound. Every sound kind rings the
// same BEL.
type Bell struct {
	w io.Writer
}

// NewBell creates a bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play writes BEL regardless of kind.
func (b *Bell) Play(config.SoundKind) {
	_, _ = io.WriteString(b.w, "\a")
}

// Silent discards every sound.
type Silent struct{}

// Play does nothing.
func (Silent) Play(config.SoundKind) {}
