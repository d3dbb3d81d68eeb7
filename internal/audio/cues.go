package audio

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Cue names a synthesized sound.
type Cue string

const (
	CueNone  Cue = "none"
	CueChirp Cue = "chirp" // short rising blip
	CueThud  Cue = "thud"  // low falling thump
	CueCoin  Cue = "coin"  // two-note chime
	CueKnell Cue = "knell" // slow descending bell
)

// Cue durations.
const (
	chirpDuration     = 90 * time.Millisecond
	thudDuration      = 160 * time.Millisecond
	coinNote1Duration = 70 * time.Millisecond
	coinNote2Duration = 180 * time.Millisecond
	knellDuration     = 600 * time.Millisecond
	attackDuration    = 5 * time.Millisecond
)

// Cues lists every playable cue.
func Cues() []Cue {
	return []Cue{CueChirp, CueThud, CueCoin, CueKnell}
}

// ParseCue accepts a cue name; empty means CueNone.
func ParseCue(s string) (Cue, error) {
	c := Cue(strings.ToLower(strings.TrimSpace(s)))
	if c == "" || c == CueNone {
		return CueNone, nil
	}
	for _, known := range Cues() {
		if c == known {
			return c, nil
		}
	}
	return CueNone, fmt.Errorf("audio: unknown cue %q", s)
}

// Bindings maps events to the cue they trigger.
type Bindings map[core.EventKind]Cue

// ParseBindings converts config bindings (event name to cue name).
// Events without a binding stay silent.
func ParseBindings(raw map[string]string) (Bindings, error) {
	b := make(Bindings, len(raw))

	// Sorted so the first error reported is stable
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		kind, ok := core.ParseEventKind(name)
		if !ok {
			return nil, fmt.Errorf("audio: unknown event %q in bindings", name)
		}
		cue, err := ParseCue(raw[name])
		if err != nil {
			return nil, err
		}
		if cue != CueNone {
			b[kind] = cue
		}
	}
	return b, nil
}

// Synthesize builds a fresh streamer for the cue. Returns nil for CueNone.
func Synthesize(c Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueChirp:
		tone := newSweep(520, 880, chirpDuration, WaveTriangle, rate)
		return newEnvelope(tone, chirpDuration, attackDuration, chirpDuration/2, rate)
	case CueThud:
		tone := newSweep(180, 60, thudDuration, WaveSine, rate)
		return newEnvelope(tone, thudDuration, attackDuration, thudDuration*3/4, rate)
	case CueCoin:
		n1 := newEnvelope(newTone(987.77, coinNote1Duration, WaveSquare, rate),
			coinNote1Duration, attackDuration, coinNote1Duration/4, rate)
		n2 := newEnvelope(newTone(1318.51, coinNote2Duration, WaveSquare, rate),
			coinNote2Duration, attackDuration, coinNote2Duration*2/3, rate)
		return withVolume(beep.Seq(n1, n2), 0.5)
	case CueKnell:
		fund := newEnvelope(newSweep(440, 330, knellDuration, WaveSine, rate),
			knellDuration, attackDuration, knellDuration*4/5, rate)
		over := newEnvelope(newSweep(880, 660, knellDuration, WaveSine, rate),
			knellDuration, attackDuration, knellDuration/2, rate)
		return beep.Mix(withVolume(fund, 0.7), withVolume(over, 0.3))
	default:
		return nil
	}
}
