package events

import (
	"testing"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	clients int
	events  []*types.Event
}

func (h *fakeHub) Broadcast(event *types.Event) { h.events = append(h.events, event) }
func (h *fakeHub) ClientCount() int             { return h.clients }

func TestPublishSkipsWhenNobodyListens(t *testing.T) {
	hub := &fakeHub{}
	NewEventPublisher(hub).Publish(types.EventTagCreated, types.EntityRef{ID: "t1"})
	assert.Empty(t, hub.events)
}

func TestPublishBroadcasts(t *testing.T) {
	hub := &fakeHub{clients: 2}
	NewEventPublisher(hub).Publish(types.EventVideoDeleted, types.EntityRef{ID: "v1", Slug: "reel"})

	require.Len(t, hub.events, 1)
	assert.Equal(t, types.EventVideoDeleted, hub.events[0].Type)
	assert.Equal(t, types.EntityRef{ID: "v1", Slug: "reel"}, hub.events[0].Data)
	assert.NotEmpty(t, hub.events[0].Timestamp)
}
