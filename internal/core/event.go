package core

// EventKind identifies a semantic game event.
type EventKind int

const (
	EventFlap      EventKind = iota // body received a jump impulse
	EventCollision                  // body hit a bound or an obstacle
	EventScore                      // an obstacle was passed; Score holds the new total
	EventGameOver                   // round ended; Score holds the final score
)

// String returns the config/log name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventFlap:
		return "flap"
	case EventCollision:
		return "collision"
	case EventScore:
		return "score"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, bool) {
	for _, k := range EventKinds() {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// EventKinds lists every event kind in declaration order.
func EventKinds() []EventKind {
	return []EventKind{EventFlap, EventCollision, EventScore, EventGameOver}
}

// Event is emitted by a simulation step. Subscribers (audio, HUD, storage)
// react to events; nothing flows back into the simulation.
type Event struct {
	Kind  EventKind
	Score int
}
