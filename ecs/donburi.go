// Package ecs provides ECS adapters for tether.
package ecs

import (
	"github.com/phanxgames/tether"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// OpenEventType is the Donburi event type for tether open-state changes.
// Subscribe to this in your ECS systems to react to surfaces opening and
// closing (including coordinator-caused closes, distinguished by Reason).
var OpenEventType = events.NewEventType[tether.OpenEvent]()

// Bridge forwards a Group's open-state channel into a Donburi world.
type Bridge struct {
	handle tether.CallbackHandle
}

// NewBridge subscribes the group's open-state changes to the world.
// Events are published to OpenEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewBridge(world donburi.World, group *tether.Group) *Bridge {
	handle := group.OnOpenChange(func(ev tether.OpenEvent) {
		OpenEventType.Publish(world, ev)
	})
	return &Bridge{handle: handle}
}

// Remove unsubscribes the bridge from its group.
func (b *Bridge) Remove() {
	b.handle.Remove()
}
