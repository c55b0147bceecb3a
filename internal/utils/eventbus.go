package utils

import (
	"time"
)

const (
	EventChatMessageCreated = "chat_message_created"
	EventActiveUserSeen     = "active_user_seen"
	EventUserDeleted        = "user_deleted"
)

type Event struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// EventBus fans domain events out to the websocket hub. Publishing never
// blocks a request: when the buffer is full the event is dropped.
type EventBus struct {
	events chan Event
}

func NewEventBus() *EventBus {
	return &EventBus{
		events: make(chan Event, 100),
	}
}

func (eb *EventBus) Publish(event string, data interface{}) bool {
	if eb == nil {
		return false
	}
	e := Event{Event: event, Data: data, Timestamp: Now()}
	select {
	case eb.events <- e:
		return true
	default:
		return false
	}
}

func (eb *EventBus) SubscribeCh() <-chan Event {
	return eb.events
}
