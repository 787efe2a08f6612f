package types

import (
	"fmt"
	"strings"
)

// EventManager collects the events emitted while a message is handled.
type EventManager struct {
	events Events
}

func NewEventManager() *EventManager {
	return &EventManager{EmptyEvents()}
}

func (em *EventManager) Events() Events { return em.events }

// EmitEvent stores a single Event object.
func (em *EventManager) EmitEvent(event Event) {
	em.events = em.events.AppendEvent(event)
}

// EmitEvents stores a series of Event objects.
func (em *EventManager) EmitEvents(events Events) {
	em.events = em.events.AppendEvents(events)
}

type (
	// Attribute is a single key/value pair attached to an Event.
	Attribute struct {
		Key   string `json:"key"`
		Value string `json:"value,omitempty"`
	}

	// Event is a type alias for an ABCI Event
	Event struct {
		Type       string      `json:"type"`
		Attributes []Attribute `json:"attributes,omitempty"`
	}

	// Events defines a slice of Event objects
	Events []Event
)

// NewAttribute returns a new key/value attribute.
func NewAttribute(k, v string) Attribute {
	return Attribute{k, v}
}

func (a Attribute) String() string {
	return fmt.Sprintf("%s: %s", a.Key, a.Value)
}

// NewEvent creates a new Event object with a given type and slice of one or more
// attributes.
func NewEvent(ty string, attrs ...Attribute) Event {
	e := Event{Type: ty}
	e.Attributes = append(e.Attributes, attrs...)
	return e
}

// GetAttribute returns the value of the first attribute with the given key.
func (e Event) GetAttribute(key string) (string, bool) {
	for _, attr := range e.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

func (e Event) String() string {
	attrs := make([]string, 0, len(e.Attributes))
	for _, attr := range e.Attributes {
		attrs = append(attrs, attr.String())
	}
	return fmt.Sprintf("%s{%s}", e.Type, strings.Join(attrs, ", "))
}

// EmptyEvents returns an empty slice of events.
func EmptyEvents() Events {
	return make(Events, 0)
}

// AppendEvent adds an Event to a slice of events.
func (e Events) AppendEvent(event Event) Events {
	return append(e, event)
}

// AppendEvents adds a slice of Event objects to an exist slice of Event objects.
func (e Events) AppendEvents(events Events) Events {
	return append(e, events...)
}

// OfType returns the events of the given type, in emission order.
func (e Events) OfType(ty string) Events {
	res := EmptyEvents()
	for _, event := range e {
		if event.Type == ty {
			res = append(res, event)
		}
	}
	return res
}
