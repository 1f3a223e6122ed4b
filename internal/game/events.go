package game

import (
	"reflect"
	"slices"
	"sync"

	"github.com/lox/holdem/poker"
)

// EventType identifies a game event.
type EventType string

const (
	EventTypeHandStarted   EventType = "hand_started"
	EventTypeActionApplied EventType = "action_applied"
	EventTypePhaseAdvanced EventType = "phase_advanced"
	EventTypeHandSettled   EventType = "hand_settled"
)

func (et EventType) String() string {
	return string(et)
}

// Event is anything published on the bus.
type Event interface {
	EventType() EventType
}

// HandStartedEvent is published after blinds are posted.
type HandStartedEvent struct {
	HandID     string
	Seed       int64
	Dealer     string
	SmallBlind string
	BigBlind   string
	Seats      []string
}

func (HandStartedEvent) EventType() EventType { return EventTypeHandStarted }

// ActionAppliedEvent is published for every voluntary action.
type ActionAppliedEvent struct {
	HandID   string
	Action   ActionRecord
	PotTotal int
}

func (ActionAppliedEvent) EventType() EventType { return EventTypeActionApplied }

// PhaseAdvancedEvent is published when a new street is dealt or showdown is
// reached.
type PhaseAdvancedEvent struct {
	HandID string
	Phase  Phase
	Board  []poker.Card
}

func (PhaseAdvancedEvent) EventType() EventType { return EventTypePhaseAdvanced }

// HandSettledEvent is published once the pot has been awarded.
type HandSettledEvent struct {
	HandID     string
	Settlement *Settlement
	Abandoned  bool
}

func (HandSettledEvent) EventType() EventType { return EventTypeHandSettled }

// EventSubscriber receives events. Subscribers run synchronously on the
// publishing goroutine and must not call back into the engine.
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventSubscriberFunc adapts a function to EventSubscriber.
type EventSubscriberFunc func(Event)

func (f EventSubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus fans events out to subscribers.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is an in-memory EventBus safe for concurrent use.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus.
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Subscribers that cannot be compared,
// such as funcs or structs holding slices, stay registered.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if !isComparable(subscriber) {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if isComparable(sub) && sub == subscriber {
			bus.subscribers = slices.Delete(bus.subscribers, i, i+1)
			return
		}
	}
}

func isComparable(v any) bool {
	return v != nil && reflect.ValueOf(v).Comparable()
}

func (bus *SimpleEventBus) Publish(event Event) {
	bus.mu.RLock()
	subs := slices.Clone(bus.subscribers)
	bus.mu.RUnlock()
	for _, sub := range subs {
		sub.OnEvent(event)
	}
}
