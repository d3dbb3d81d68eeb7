// Package audio plays short synthesized cues in response to game events.
// Playback is fire-and-forget: Notify never blocks the game loop and a
// missing sound device degrades to silence.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ErrNoDevice is returned when the speaker cannot be opened.
var ErrNoDevice = errors.New("audio: no output device")

// Sink receives game events.
type Sink interface {
	Notify(e core.Event)
}

// Nop is a Sink that ignores every event.
type Nop struct{}

// Notify implements Sink.
func (Nop) Notify(core.Event) {}

// speaker.Init may only succeed once per process.
var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

// Player maps events to cues and plays them through a shared mixer.
type Player struct {
	mu       sync.Mutex
	bindings Bindings
	volume   float64
	rate     beep.SampleRate
	mixer    *beep.Mixer
	logger   *log.Logger
	started  bool
	attached bool
}

// NewPlayer builds a player from config. The speaker is not touched
// until Start.
func NewPlayer(cfg config.AudioConfig, logger *log.Logger) (*Player, error) {
	bindings, err := ParseBindings(cfg.Bindings)
	if err != nil {
		return nil, err
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("audio: invalid sample rate %d", cfg.SampleRate)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		bindings: bindings,
		volume:   cfg.Volume,
		rate:     beep.SampleRate(cfg.SampleRate),
		mixer:    &beep.Mixer{},
		logger:   logger,
	}, nil
}

// Start opens the speaker and attaches the player's mixer.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}

	speakerOnce.Do(func() {
		speakerRate = p.rate
		speakerErr = speaker.Init(p.rate, p.rate.N(100*time.Millisecond))
	})
	if speakerErr != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, speakerErr)
	}
	if speakerRate != p.rate {
		// The device is already running at another rate
		p.rate = speakerRate
	}

	if !p.attached {
		speaker.Play(p.mixer)
		p.attached = true
	}
	p.started = true
	return nil
}

// Stop silences anything still playing. The device stays open.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.started = false
}

// Close stops s if it plays sound. Other sinks are left alone.
func Close(s Sink) {
	if p, ok := s.(*Player); ok {
		p.Stop()
	}
}

// Cue returns the cue bound to an event kind, or CueNone.
func (p *Player) Cue(kind core.EventKind) Cue {
	if c, ok := p.bindings[kind]; ok {
		return c
	}
	return CueNone
}

// Notify implements Sink.
func (p *Player) Notify(e core.Event) {
	cue := p.Cue(e.Kind)
	if cue == CueNone {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}

	s := Synthesize(cue, p.rate)
	if s == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(withVolume(s, p.volume))
	speaker.Unlock()

	p.logger.Debug("cue", "event", e.Kind, "cue", cue, "score", e.Score)
}

// Open returns the sink the config asks for. Disabled audio, bad bindings
// and missing devices all yield Nop, logged at the appropriate level.
func Open(cfg config.AudioConfig, logger *log.Logger) Sink {
	if logger == nil {
		logger = log.Default()
	}
	if !cfg.Enabled {
		logger.Debug("audio disabled")
		return Nop{}
	}

	p, err := NewPlayer(cfg, logger)
	if err != nil {
		logger.Warn("audio config rejected, continuing without sound", "err", err)
		return Nop{}
	}
	if err := p.Start(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", "err", err)
		return Nop{}
	}

	logger.Info("audio started", "rate", int(p.rate), "volume", cfg.Volume)
	return p
}

var (
	_ Sink = Nop{}
	_ Sink = (*Player)(nil)
)
