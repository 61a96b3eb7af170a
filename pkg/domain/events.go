package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRotorStep     EventType = "rotor_step"
	EventLetterEncoded EventType = "letter_encoded"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent is emitted every time a rotor rotates.
type StepEvent struct {
	EventBase
	Rotor    int  `json:"rotor"`
	Position int  `json:"position"`
	Notched  bool `json:"notched"` // The rotor landed on its notch and carried to the next one.
}

// LetterEvent is emitted after a letter went through the full signal path.
type LetterEvent struct {
	EventBase
	Input     rune  `json:"input"`
	Output    rune  `json:"output"`
	Positions []int `json:"positions"`
}

// LifecycleHooks defines callbacks for machine observability.
type LifecycleHooks struct {
	OnStep   func(context.Context, *StepEvent)
	OnLetter func(context.Context, *LetterEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: func(ctx context.Context, e *StepEvent) {
			if h.OnStep != nil {
				h.OnStep(ctx, e)
			}
			if other.OnStep != nil {
				other.OnStep(ctx, e)
			}
		},
		OnLetter: func(ctx context.Context, e *LetterEvent) {
			if h.OnLetter != nil {
				h.OnLetter(ctx, e)
			}
			if other.OnLetter != nil {
				other.OnLetter(ctx, e)
			}
		},
	}
}
