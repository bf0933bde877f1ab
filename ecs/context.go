package ecs

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// Context owns the entity set, component type registration, and all
// component storage. Systems only ever hold transient references handed
// out by the Context; the pools keep exclusive ownership of the instances.
type Context struct {
	types  []*ComponentType
	byName map[string]*ComponentType

	// Per entity slot. A slot on the free list keeps its generation so the
	// next occupant hands out a distinct handle.
	generations []uint32
	signatures  []Signature
	alive       []bool
	freeSlots   []uint32
	liveCount   int

	groups []*Group
}

// NewContext creates an empty registry with no component types.
func NewContext() *Context {
	return &Context{
		byName: make(map[string]*ComponentType),
	}
}

// RegisterComponent registers a new component type backed by the given
// pool. The name must be unique within the Context. Registration after
// entities exist is allowed; existing entities simply don't hold the new
// type.
func (c *Context) RegisterComponent(name string, pool Pool) *ComponentType {
	if _, exists := c.byName[name]; exists {
		panic("ecs: component type " + name + " already registered")
	}
	if len(c.types) == maxComponentTypes {
		panic("ecs: component type limit reached")
	}

	t := &ComponentType{
		ctx:   c,
		id:    len(c.types),
		name:  name,
		pool:  pool,
		slots: intmap.New[uint32, int](64),
	}
	c.types = append(c.types, t)
	c.byName[name] = t
	return t
}

// CreateEntity allocates a new identifier with an empty component set.
func (c *Context) CreateEntity() Entity {
	var index uint32
	if n := len(c.freeSlots); n > 0 {
		index = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
		c.alive[index] = true
		c.signatures[index] = 0
	} else {
		index = uint32(len(c.alive))
		c.generations = append(c.generations, 0)
		c.signatures = append(c.signatures, 0)
		c.alive = append(c.alive, true)
	}
	c.liveCount++
	return newEntity(index, c.generations[index])
}

// DestroyEntity releases all of the entity's components back to their
// pools and retires the handle. Any later use of the handle panics.
func (c *Context) DestroyEntity(e Entity) {
	index := c.check(e)
	sig := c.signatures[index]

	for _, t := range c.types {
		if sig.contains(t.bit()) {
			slot, _ := t.slots.Get(index)
			t.pool.Release(slot)
			t.slots.Del(index)
		}
	}

	for _, g := range c.groups {
		if sig.contains(g.signature) {
			g.handleRemoved(e)
		}
	}

	c.signatures[index] = 0
	c.alive[index] = false
	c.generations[index]++
	c.freeSlots = append(c.freeSlots, index)
	c.liveCount--
}

// Add allocates a component instance from the type's pool and attaches it
// to the entity. Adding a type the entity already holds is a programming
// error and panics. The returned value is a pointer into the pool.
func (c *Context) Add(e Entity, t *ComponentType) any {
	index := c.check(e)
	c.checkType(t)
	if c.signatures[index].contains(t.bit()) {
		panic(fmt.Sprintf("ecs: %v already has component %s", e, t.name))
	}

	slot := t.pool.Allocate()
	t.slots.Put(index, slot)
	c.signatures[index] |= t.bit()

	sig := c.signatures[index]
	for _, g := range c.groups {
		if g.signature.contains(t.bit()) && sig.contains(g.signature) {
			g.handleAdded(e)
		}
	}
	return t.pool.At(slot)
}

// Get returns the entity's instance of the given type. Fetching an absent
// component is a programming error and panics.
func (c *Context) Get(e Entity, t *ComponentType) any {
	index := c.check(e)
	c.checkType(t)
	if !c.signatures[index].contains(t.bit()) {
		panic(fmt.Sprintf("ecs: %v has no component %s", e, t.name))
	}
	slot, _ := t.slots.Get(index)
	return t.pool.At(slot)
}

// Has reports whether the entity currently holds the given type.
func (c *Context) Has(e Entity, t *ComponentType) bool {
	index := c.check(e)
	c.checkType(t)
	return c.signatures[index].contains(t.bit())
}

// Remove releases the entity's instance of the given type back to its
// pool and detaches it. Removing an absent component is a programming
// error and panics.
func (c *Context) Remove(e Entity, t *ComponentType) {
	index := c.check(e)
	c.checkType(t)
	if !c.signatures[index].contains(t.bit()) {
		panic(fmt.Sprintf("ecs: %v has no component %s", e, t.name))
	}

	// Groups containing this type lose the entity before the slot goes
	// back to the pool, so no group ever observes a released instance.
	sig := c.signatures[index]
	for _, g := range c.groups {
		if g.signature.contains(t.bit()) && sig.contains(g.signature) {
			g.handleRemoved(e)
		}
	}

	slot, _ := t.slots.Get(index)
	t.pool.Release(slot)
	t.slots.Del(index)
	c.signatures[index] &^= t.bit()
}

// Alive reports whether the handle refers to a live entity.
func (c *Context) Alive(e Entity) bool {
	index := e.Index()
	return int(index) < len(c.alive) && c.alive[index] && c.generations[index] == e.Generation()
}

// EntityCount returns the number of live entities.
func (c *Context) EntityCount() int {
	return c.liveCount
}

// Group returns the live query for the given signature, creating it on
// first use. Groups observe every subsequent structural change eagerly, so
// membership always reflects the registry state when an Each pass starts.
func (c *Context) Group(types ...*ComponentType) *Group {
	if len(types) == 0 {
		panic("ecs: group requires at least one component type")
	}
	var sig Signature
	for _, t := range types {
		c.checkType(t)
		sig |= t.bit()
	}

	for _, g := range c.groups {
		if g.signature == sig {
			return g
		}
	}

	g := newGroup(c, types, sig)
	for index, s := range c.signatures {
		if c.alive[index] && s.contains(sig) {
			g.handleAdded(newEntity(uint32(index), c.generations[index]))
		}
	}
	c.groups = append(c.groups, g)
	return g
}

// check validates the handle and returns its slot index.
func (c *Context) check(e Entity) uint32 {
	index := e.Index()
	if int(index) >= len(c.alive) || !c.alive[index] {
		panic(fmt.Sprintf("ecs: %v is not alive", e))
	}
	if c.generations[index] != e.Generation() {
		panic(fmt.Sprintf("ecs: %v is stale, slot was reused", e))
	}
	return index
}

func (c *Context) checkType(t *ComponentType) {
	if t == nil || t.ctx != c {
		panic("ecs: component type belongs to a different context")
	}
}

// Add attaches a component and returns it as a concrete pointer.
func Add[T any](c *Context, e Entity, t *ComponentType) *T {
	return c.Add(e, t).(*T)
}

// Get returns the entity's component as a concrete pointer.
func Get[T any](c *Context, e Entity, t *ComponentType) *T {
	return c.Get(e, t).(*T)
}
