package core

import "fmt"

// EventKind classifies an input event delivered to the game loop.
type EventKind int

const (
	EventNone         EventKind = iota
	EventQuit                   // window closed or quit key pressed
	EventPointerDown            // primary pointer button pressed at Pos
	EventKeyDown                // key pressed, named in Key
	EventTimerExpired           // a game's one-shot timer fired
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventPointerDown:
		return "pointerDown"
	case EventKeyDown:
		return "keyDown"
	case EventTimerExpired:
		return "timerExpired"
	default:
		return "none"
	}
}

// Event is one entry of the input stream consumed by the game loop.
// Key uses Bubble Tea key names ("r", "space", "up", "enter", ...).
type Event struct {
	Kind EventKind
	Pos  Point
	Key  string
}

// QuitEvent returns a quit event.
func QuitEvent() Event {
	return Event{Kind: EventQuit}
}

// PointerDown returns a pointer press at (x, y).
func PointerDown(x, y int) Event {
	return Event{Kind: EventPointerDown, Pos: Pt(x, y)}
}

// KeyDown returns a key press event.
func KeyDown(key string) Event {
	return Event{Kind: EventKeyDown, Key: key}
}

// TimerExpired returns a timer expiry event.
func TimerExpired() Event {
	return Event{Kind: EventTimerExpired}
}

func (e Event) String() string {
	switch e.Kind {
	case EventPointerDown:
		return fmt.Sprintf("%s(%d,%d)", e.Kind, e.Pos.X, e.Pos.Y)
	case EventKeyDown:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Key)
	default:
		return e.Kind.String()
	}
}
