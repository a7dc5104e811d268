package types

import "time"

// EventType represents the type of a content change event
type EventType string

const (
	EventVideoCreated   EventType = "video.created"
	EventVideoUpdated   EventType = "video.updated"
	EventVideoDeleted   EventType = "video.deleted"
	EventTagCreated     EventType = "tag.created"
	EventTagDeleted     EventType = "tag.deleted"
	EventGalleryChanged EventType = "gallery.changed"
	EventSettingUpdated EventType = "setting.updated"
)

// Event is pushed to connected admin dashboards over WebSocket
type Event struct {
	Type      EventType `json:"type"`
	Data      any       `json:"data"`
	Timestamp string    `json:"timestamp"`
}

// EntityRef identifies the entity an event is about
type EntityRef struct {
	ID   string `json:"id"`
	Slug string `json:"slug,omitempty"`
	Key  string `json:"key,omitempty"`
	Name string `json:"name,omitempty"`
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, data any) *Event {
	return &Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
