// Package debugui provides immediate-mode GUI overlays for ECS
// applications using Dear ImGui. Render functions live in an ECS component
// and are deferred to the end of the frame, after every system has run.
package debugui

import (
	"github.com/plus3/drizzle/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// Clear drops the render function when the pool slot is reused.
func (i *ImguiItem) Clear() {
	i.Render = nil
}

// RegisterComponents registers the ImguiItem component type with the
// context and returns its descriptor.
func RegisterComponents(ctx *ecs.Context) *ecs.ComponentType {
	return ctx.RegisterComponent("imguiItem", ecs.NewObjectPool[ImguiItem]())
}

// SpawnItem creates an entity carrying the given render function.
func SpawnItem(ctx *ecs.Context, itemType *ecs.ComponentType, render func()) ecs.Entity {
	e := ctx.CreateEntity()
	item := ecs.Add[ImguiItem](ctx, e, itemType)
	item.Render = render
	return e
}

// ImguiSystem queries all ImguiItem components and defers their render
// functions so ImGui draws after the frame's simulation systems complete.
type ImguiSystem struct {
	items *ecs.Group
}

// NewImguiSystem creates the system over the {ImguiItem} group.
func NewImguiSystem(ctx *ecs.Context, itemType *ecs.ComponentType) *ImguiSystem {
	return &ImguiSystem{items: ctx.Group(itemType)}
}

// Execute queues all ImGui render functions for end-of-frame execution.
func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	s.items.Each(func(e ecs.Entity, components []any) {
		item := components[0].(*ImguiItem)
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	})
}
