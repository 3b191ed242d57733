package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}
	if s.Duration() != 60*time.Second {
		t.Errorf("Expected 60s, got %v", s.Duration())
	}
	if !s.Moving || !s.BreakAnim || s.OsuMode || s.Sound != SoundBubble {
		t.Errorf("Unexpected defaults: %+v", s)
	}
}

func TestParseSettingsKeepsDefaults(t *testing.T) {
	s, err := ParseSettings([]byte("durationSeconds: 30\nosuMode: true\n"))
	if err != nil {
		t.Fatalf("ParseSettings: %v", err)
	}
	if s.DurationSeconds != DurationQuick || !s.OsuMode {
		t.Errorf("Expected file values applied, got %+v", s)
	}
	if !s.Moving || s.Color != Palette[0] {
		t.Errorf("Expected unset fields to keep defaults, got %+v", s)
	}
}

func TestParseSettingsRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"duration", "durationSeconds: 45", "durationSeconds"},
		{"sound", "sound: trumpet", "sound kind"},
		{"color", "color: notacolor", "invalid color"},
		{"syntax", "moving: [", "parse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSettings([]byte(tc.yaml))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("moving: false\nsound: shoot\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Moving || s.Sound != SoundShoot {
		t.Errorf("Expected file values, got %+v", s)
	}

	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestStoreToggles(t *testing.T) {
	st := NewStore(DefaultSettings())

	if got := st.ToggleDuration(); got != DurationQuick {
		t.Errorf("Expected %d, got %d", DurationQuick, got)
	}
	if got := st.ToggleDuration(); got != DurationStandard {
		t.Errorf("Expected %d, got %d", DurationStandard, got)
	}
	if st.ToggleBreakAnim() {
		t.Error("Expected break animation off")
	}
	if !st.ToggleOsuMode() {
		t.Error("Expected osu mode on")
	}
	if got := st.CycleSound(); got != SoundShoot {
		t.Errorf("Expected shoot, got %v", got)
	}
	st.SetMoving(false)
	if st.Settings().Moving {
		t.Error("Expected static mode")
	}
}

func TestStoreCycleColorWraps(t *testing.T) {
	st := NewStore(DefaultSettings())
	for i := 1; i < len(Palette); i++ {
		if got := st.CycleColor(); got != Palette[i] {
			t.Fatalf("step %d: expected %s, got %s", i, Palette[i], got)
		}
	}
	if got := st.CycleColor(); got != Palette[0] {
		t.Errorf("Expected wrap to %s, got %s", Palette[0], got)
	}

	s := DefaultSettings()
	s.Color = "#123456"
	st = NewStore(s)
	if got := st.CycleColor(); got != Palette[0] {
		t.Errorf("Expected off-palette colour to restart at %s, got %s", Palette[0], got)
	}
}
