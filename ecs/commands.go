package ecs

// Commands provides a buffer for deferred ECS operations that are executed
// at the end of a frame. Systems that would otherwise mutate entity
// structure while another system's pass is in flight queue the change here
// instead.
type Commands struct {
	creates  []createCommand
	destroys []Entity
	adds     []attachCommand
	removes  []attachCommand
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type createCommand struct {
	types []*ComponentType
}

type attachCommand struct {
	entity    Entity
	component *ComponentType
}

// Create queues creation of an entity holding the given component types.
func (c *Commands) Create(types ...*ComponentType) {
	c.creates = append(c.creates, createCommand{types: types})
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(e Entity) {
	c.destroys = append(c.destroys, e)
}

// Add queues a component attachment.
func (c *Commands) Add(e Entity, t *ComponentType) {
	c.adds = append(c.adds, attachCommand{entity: e, component: t})
}

// Remove queues a component detachment.
func (c *Commands) Remove(e Entity, t *ComponentType) {
	c.removes = append(c.removes, attachCommand{entity: e, component: t})
}

// Defer queues an arbitrary function to run after all structural commands.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies all queued commands to the context and resets the buffer.
// Destructions run first; adds and removes against a destroyed entity are
// dropped rather than panicking on a dead handle.
func (c *Commands) Flush(ctx *Context) {
	destroyed := make(map[Entity]bool)

	for _, e := range c.destroys {
		if !destroyed[e] {
			ctx.DestroyEntity(e)
			destroyed[e] = true
		}
	}

	for _, cmd := range c.removes {
		if !destroyed[cmd.entity] {
			ctx.Remove(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.adds {
		if !destroyed[cmd.entity] {
			ctx.Add(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.creates {
		e := ctx.CreateEntity()
		for _, t := range cmd.types {
			ctx.Add(e, t)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.creates = c.creates[:0]
	c.destroys = c.destroys[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
