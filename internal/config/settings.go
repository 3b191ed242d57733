package config

import (
	"fmt"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// SoundKind selects which hit sound is played.
type SoundKind string

const (
	SoundBubble SoundKind = "bubble"
	SoundShoot  SoundKind = "shoot"
)

// Match duration presets in seconds.
const (
	DurationStandard = 60
	DurationQuick    = 30
)

// Palette is the set of target colours offered by the settings menu.
var Palette = []string{
	"#ff0000",
	"#ff8c00",
	"#ffd700",
	"#32cd32",
	"#00bfff",
	"#9370db",
	"#ff69b4",
	"#ffffff",
}

// Settings holds the player-facing options read by the match controller.
// Color is a display value only; game logic never interprets it.
type Settings struct {
	Moving          bool      `yaml:"moving"`
	DurationSeconds int       `yaml:"durationSeconds"`
	BreakAnim       bool      `yaml:"breakAnimation"`
	Color           string    `yaml:"color"`
	Sound           SoundKind `yaml:"sound"`
	OsuMode         bool      `yaml:"osuMode"`
}

// DefaultSettings returns the settings a fresh client starts with.
func DefaultSettings() Settings {
	return Settings{
		Moving:          true,
		DurationSeconds: DurationStandard,
		BreakAnim:       true,
		Color:           Palette[0],
		Sound:           SoundBubble,
		OsuMode:         false,
	}
}

// Duration returns the match length.
func (s Settings) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

// Validate checks that every field holds one of its allowed values.
func (s Settings) Validate() error {
	if s.DurationSeconds != DurationStandard && s.DurationSeconds != DurationQuick {
		return fmt.Errorf("durationSeconds must be %d or %d, got %d", DurationStandard, DurationQuick, s.DurationSeconds)
	}
	switch s.Sound {
	case SoundBubble, SoundShoot:
	default:
		return fmt.Errorf("unknown sound kind %q", s.Sound)
	}
	if _, err := colorful.Hex(s.Color); err != nil {
		return fmt.Errorf("invalid color %q: %w", s.Color, err)
	}
	return nil
}

// LoadSettings reads settings from a YAML file. Fields missing from the file
// keep their default values.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes YAML settings on top of DefaultSettings.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Store owns one client's live settings. The match controller reads it every
// frame; menus mutate it between frames. Not safe for concurrent use.
type Store struct {
	s Settings
}

// NewStore creates a store holding s.
func NewStore(s Settings) *Store {
	return &Store{s: s}
}

// Settings returns a copy of the current settings.
func (st *Store) Settings() Settings {
	return st.s
}

// SetMoving selects moving (true) or static (false) targets.
func (st *Store) SetMoving(moving bool) {
	st.s.Moving = moving
}

// ToggleDuration flips between the standard and quick presets and returns
// the new duration in seconds.
func (st *Store) ToggleDuration() int {
	if st.s.DurationSeconds == DurationStandard {
		st.s.DurationSeconds = DurationQuick
	} else {
		st.s.DurationSeconds = DurationStandard
	}
	return st.s.DurationSeconds
}

// ToggleBreakAnim flips the break animation and returns the new value.
func (st *Store) ToggleBreakAnim() bool {
	st.s.BreakAnim = !st.s.BreakAnim
	return st.s.BreakAnim
}

// ToggleOsuMode flips the Z/X key trigger mode and returns the new value.
func (st *Store) ToggleOsuMode() bool {
	st.s.OsuMode = !st.s.OsuMode
	return st.s.OsuMode
}

// CycleColor advances to the next palette colour. Colours outside the
// palette restart from its first entry.
func (st *Store) CycleColor() string {
	next := 0
	for i, c := range Palette {
		if c == st.s.Color {
			next = (i + 1) % len(Palette)
			break
		}
	}
	st.s.Color = Palette[next]
	return st.s.Color
}

// CycleSound switches between the bubble and shoot sounds.
func (st *Store) CycleSound() SoundKind {
	if st.s.Sound == SoundBubble {
		st.s.Sound = SoundShoot
	} else {
		st.s.Sound = SoundBubble
	}
	return st.s.Sound
}
