package audio

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/qixgo/arena/internal/config"
	"github.com/qixgo/arena/internal/core/event"
)

type wave uint8

const (
	sine wave = iota
	square
	saw
	noise
)

// tone is a single swept note with a linear fade out.
type tone struct {
	wave     wave
	from, to float64 // Hz
	length   time.Duration
}

// recipes synthesize every sound the simulation emits.
var recipes = map[string][]tone{
	event.SoundBallReflect:     {{sine, 660, 520, 60 * time.Millisecond}},
	event.SoundMineReflect:     {{square, 220, 180, 70 * time.Millisecond}},
	event.SoundBallSelfCollide: {{sine, 880, 990, 50 * time.Millisecond}},
	event.SoundDrawWall:        {{saw, 180, 360, 180 * time.Millisecond}},
	event.SoundExplode:         {{noise, 0, 0, 350 * time.Millisecond}},
	event.SoundDeathYell:       {{saw, 440, 110, 500 * time.Millisecond}},
	event.SoundWinLaugh: {
		{sine, 523, 659, 120 * time.Millisecond},
		{sine, 587, 698, 120 * time.Millisecond},
		{sine, 659, 784, 200 * time.Millisecond},
	},
}

// Synth renders sounds through the speaker with a shared mixer.
type Synth struct {
	rate   beep.SampleRate
	volume float64

	mu    sync.Mutex
	mixer *beep.Mixer
	ready bool
}

func NewSynth(cfg config.AudioConfig) *Synth {
	return &Synth{
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the audio device with a 100ms buffer.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.ready = true
	return nil
}

func (s *Synth) Play(name string) {
	st, ok := s.stream(name)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences everything still playing.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.ready = false
}

// stream builds the streamer for name, false for unknown names.
func (s *Synth) stream(name string) (beep.Streamer, bool) {
	parts, ok := recipes[name]
	if !ok {
		return nil, false
	}
	seq := make([]beep.Streamer, 0, len(parts))
	for _, t := range parts {
		seq = append(seq, beep.Take(s.rate.N(t.length), oscillate(s.rate, t)))
	}
	return &effects.Volume{Streamer: beep.Seq(seq...), Base: 2, Volume: s.volume}, true
}

func oscillate(rate beep.SampleRate, t tone) beep.Streamer {
	total := rate.N(t.length)
	pos, phase := 0, 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			p := float64(pos) / float64(total)
			v := sample(t.wave, phase) * (1 - p)
			samples[i][0], samples[i][1] = v, v
			freq := t.from + (t.to-t.from)*p
			phase += freq / float64(rate)
			phase -= math.Floor(phase)
			pos++
			n++
		}
		return n, true
	})
}

func sample(w wave, phase float64) float64 {
	switch w {
	case square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case saw:
		return 2 * (phase - 0.5)
	case noise:
		return rand.Float64()*2 - 1
	}
	return math.Sin(2 * math.Pi * phase)
}
