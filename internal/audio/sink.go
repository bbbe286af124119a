// Package audio plays the named sound events raised by the simulation.
package audio

import (
	"github.com/qixgo/arena/internal/config"
	"github.com/qixgo/arena/internal/core/event"
	"go.uber.org/zap"
)

// Sink plays a named sound. Fire-and-forget: unknown names and device
// failures are ignored.
type Sink interface {
	Play(name string)
}

// Nop discards every sound.
type Nop struct{}

func (Nop) Play(string) {}

// LogSink records sounds at debug level. Used for headless runs and when no
// audio device is available.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink { return &LogSink{log: log} }

func (s *LogSink) Play(name string) {
	s.log.Debug("sound", zap.String("name", name))
}

// Open returns the synthesizer when audio is enabled and the device opens,
// otherwise a LogSink. The returned close func is always safe to call.
func Open(cfg config.AudioConfig, log *zap.Logger) (Sink, func()) {
	if !cfg.Enabled {
		return NewLogSink(log), func() {}
	}
	syn := NewSynth(cfg)
	if err := syn.Init(); err != nil {
		log.Warn("audio device unavailable, sounds will be logged", zap.Error(err))
		return NewLogSink(log), func() {}
	}
	log.Info("audio ready", zap.Int("sample_rate", cfg.SampleRate))
	return syn, syn.Close
}

// Attach plays every Sound event delivered by bus on sink.
func Attach(bus *event.Bus, sink Sink) {
	event.Subscribe(bus, func(e event.Sound) { sink.Play(e.Name) })
}
