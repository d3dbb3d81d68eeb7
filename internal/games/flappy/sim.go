package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Params are the constants of a round. They never change while a round runs.
type Params struct {
	WorldW, WorldH float64

	Gravity     float64
	JumpImpulse float64
	PipeSpeed   float64

	ObstacleWidth  float64
	GapHeight      float64
	SpawnThreshold float64
	GapMargin      float64

	BodyX, BodyY float64
	BodyW, BodyH float64
}

// ParamsFromConfig flattens a loaded game config into simulation parameters.
func ParamsFromConfig(cfg config.FlappyConfig) Params {
	return Params{
		WorldW:         cfg.World.Width,
		WorldH:         cfg.World.Height,
		Gravity:        cfg.Physics.Gravity,
		JumpImpulse:    cfg.Physics.JumpImpulse,
		PipeSpeed:      cfg.Physics.PipeSpeed,
		ObstacleWidth:  cfg.Obstacles.Width,
		GapHeight:      cfg.Obstacles.GapHeight,
		SpawnThreshold: cfg.Obstacles.SpawnThreshold,
		GapMargin:      cfg.Obstacles.GapMargin,
		BodyX:          cfg.Player.X,
		BodyY:          cfg.Player.Y,
		BodyW:          cfg.Player.Width,
		BodyH:          cfg.Player.Height,
	}
}

// DefaultParams returns the parameters of the original 400x500 game.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultFlappyConfig())
}

// Body is the falling sprite. X never changes after Reset.
type Body struct {
	X, Y          float64
	Width, Height float64
	Velocity      float64
}

// Rect returns the body's hitbox.
func (b Body) Rect() core.RectF {
	return core.NewRectF(b.X, b.Y, b.Width, b.Height)
}

// Phase is the round's position in its state machine.
type Phase int

const (
	PhaseWaiting Phase = iota // reset, waiting for the first jump
	PhaseRunning
	PhaseOver
)

// RoundState is everything the simulation knows about a round.
// Obstacles are ordered oldest first, which is also left to right.
type RoundState struct {
	Body      Body
	Obstacles []Obstacle
	Score     int
	Cleared   int // passed obstacles that have since been recycled
	Started   bool
	Over      bool
	Ticks     int // ticks advanced while running
}

// Phase derives the state machine position from the flags.
func (s RoundState) Phase() Phase {
	switch {
	case s.Over:
		return PhaseOver
	case s.Started:
		return PhaseRunning
	default:
		return PhaseWaiting
	}
}

// PassedCount returns how many obstacles this round has scored,
// including those already recycled. It always equals Score.
func (s RoundState) PassedCount() int {
	n := s.Cleared
	for _, o := range s.Obstacles {
		if o.Passed {
			n++
		}
	}
	return n
}

func (s RoundState) clone() RoundState {
	c := s
	c.Obstacles = make([]Obstacle, len(s.Obstacles), len(s.Obstacles)+1)
	copy(c.Obstacles, s.Obstacles)
	return c
}

// RandSource picks gap offsets. *math/rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// Simulation advances RoundState values. It holds only constants and the
// random source; all round data travels in the RoundState values.
type Simulation struct {
	params Params
	rng    RandSource
}

// NewSimulation creates a simulation with the given parameters and gap source.
func NewSimulation(params Params, rng RandSource) *Simulation {
	return &Simulation{params: params, rng: rng}
}

// Params returns the simulation constants.
func (s *Simulation) Params() Params {
	return s.params
}

// Reset returns a fresh round: body at its initial pose, no obstacles,
// score zero, not started.
func (s *Simulation) Reset() RoundState {
	p := s.params
	return RoundState{
		Body: Body{
			X:      p.BodyX,
			Y:      p.BodyY,
			Width:  p.BodyW,
			Height: p.BodyH,
		},
		Obstacles: make([]Obstacle, 0, 4),
	}
}

// RequestJump starts the round if needed and sets the body's velocity to
// the jump impulse. Repeated jumps before a tick do not stack.
func (s *Simulation) RequestJump(st RoundState) (RoundState, []core.Event) {
	if st.Over {
		return st, nil
	}
	next := st.clone()
	next.Started = true
	next.Body.Velocity = s.params.JumpImpulse
	return next, []core.Event{{Kind: core.EventFlap, Score: next.Score}}
}

// Tick advances a running round by dt steps (1 = one frame). Waiting and
// finished rounds, and non-positive dt, are returned unchanged.
func (s *Simulation) Tick(st RoundState, dt float64) (RoundState, []core.Event) {
	if !st.Started || st.Over || dt <= 0 {
		return st, nil
	}

	p := s.params
	next := st.clone()
	next.Ticks++
	var events []core.Event

	// Integrate
	next.Body.Velocity += p.Gravity * dt
	next.Body.Y += next.Body.Velocity * dt

	body := next.Body.Rect()
	if OutOfBounds(body, p.WorldH) {
		return s.terminate(next, events)
	}

	advanceObstacles(next.Obstacles, p.PipeSpeed*dt)

	for _, o := range next.Obstacles {
		if HitsGate(body, o, p.ObstacleWidth, p.GapHeight) {
			return s.terminate(next, events)
		}
	}

	for i := range next.Obstacles {
		o := &next.Obstacles[i]
		if !o.Passed && o.X+p.ObstacleWidth < next.Body.X {
			o.Passed = true
			next.Score++
			events = append(events, core.Event{Kind: core.EventScore, Score: next.Score})
		}
	}

	var cleared int
	next.Obstacles, cleared = recycleObstacles(next.Obstacles, p.ObstacleWidth)
	next.Cleared += cleared

	if shouldSpawn(next.Obstacles, p) {
		next.Obstacles = append(next.Obstacles, spawnObstacle(s.rng, p))
	}

	return next, events
}

// terminate ends the round. The body keeps whatever pose caused the hit.
func (s *Simulation) terminate(st RoundState, events []core.Event) (RoundState, []core.Event) {
	st.Over = true
	events = append(events,
		core.Event{Kind: core.EventCollision, Score: st.Score},
		core.Event{Kind: core.EventGameOver, Score: st.Score},
	)
	return st, events
}
