package events

import (
	"github.com/imhamzamoeen/umerfilms-sub001/internal/observability"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

// Publisher announces content changes.
type Publisher interface {
	Publish(eventType types.EventType, ref types.EntityRef)
}

// WebSocketHub is the part of the hub the publisher needs.
type WebSocketHub interface {
	Broadcast(event *types.Event)
	ClientCount() int
}

// EventPublisher pushes content changes to connected admin dashboards.
type EventPublisher struct {
	hub WebSocketHub
}

func NewEventPublisher(hub WebSocketHub) *EventPublisher {
	return &EventPublisher{
		hub: hub,
	}
}

func (p *EventPublisher) Publish(eventType types.EventType, ref types.EntityRef) {
	observability.ContentEvents.WithLabelValues(string(eventType)).Inc()

	// Nobody is listening.
	if p.hub.ClientCount() == 0 {
		return
	}

	p.hub.Broadcast(types.NewEvent(eventType, ref))
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(types.EventType, types.EntityRef) {}
