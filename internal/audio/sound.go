// Package audio synthesises and plays the hit sounds.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/tomz197/popshot/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// Sound shapes.
const (
	bubbleDuration = 90 * time.Millisecond
	bubbleLowHz    = 520.0
	bubbleHighHz   = 1040.0
	shootDuration  = 140 * time.Millisecond
)

// Per-kind playback volume in [0, 1].
var volumes = map[config.SoundKind]float64{
	config.SoundBubble: 0.5,
	config.SoundShoot:  0.3,
}

// decay fades a streamer linearly to silence over a fixed number of samples.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func newDecay(s beep.Streamer, d time.Duration) beep.Streamer {
	return &decay{streamer: s, total: sampleRate.N(d)}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	if d.position >= d.total {
		return 0, false
	}
	if remaining := d.total - d.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(d.position)/float64(d.total)
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales a streamer; math.Log2(0) is -Inf so zero means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// bubbleSound is two stacked sines with a fast decay, a short "pop".
func bubbleSound() beep.Streamer {
	low, err := generators.SineTone(sampleRate, bubbleLowHz)
	if err != nil {
		return nil
	}
	high, err := generators.SineTone(sampleRate, bubbleHighHz)
	if err != nil {
		return nil
	}
	mixed := beep.Mix(newVolume(low, 0.6), newVolume(high, 0.4))
	return newDecay(mixed, bubbleDuration)
}

// shootSound is a decaying white-noise burst.
func shootSound() beep.Streamer {
	noise := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rand.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
	return newDecay(noise, shootDuration)
}

// Sound returns a fresh streamer for kind at its playback volume.
// Unknown kinds play the bubble sound.
func Sound(kind config.SoundKind) beep.Streamer {
	var s beep.Streamer
	switch kind {
	case config.SoundShoot:
		s = shootSound()
	default:
		kind = config.SoundBubble
		s = bubbleSound()
	}
	if s == nil {
		return nil
	}
	return newVolume(s, volumes[kind])
}
