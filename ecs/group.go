package ecs

import "github.com/kamstrup/intmap"

// Group is a live query over all entities holding a signature (a set of
// component types). Membership is maintained incrementally by the Context
// on every add/remove/destroy, so reads are O(members) with no scan.
type Group struct {
	ctx       *Context
	types     []*ComponentType
	signature Signature

	entities []Entity
	// positions maps entity slot index to its position in entities,
	// enabling O(1) swap-removal.
	positions *intmap.Map[uint32, int]

	// Reused across Each calls. Safe because iteration is single-threaded
	// and non-reentrant.
	snapshot []Entity
	comps    []any

	iterating bool
}

func newGroup(ctx *Context, types []*ComponentType, sig Signature) *Group {
	return &Group{
		ctx:       ctx,
		types:     types,
		signature: sig,
		positions: intmap.New[uint32, int](64),
		comps:     make([]any, 0, len(types)),
	}
}

// Len returns the current number of matching entities.
func (g *Group) Len() int {
	return len(g.entities)
}

// Each invokes fn once per entity matching the signature at the start of
// the pass, passing the entity's component instances in the signature's
// declared order. An entity that loses the signature mid-pass (destroyed
// or a required component removed by the callback) is skipped rather than
// visited with released storage; no entity is visited twice. Nested Each
// calls on the same group are unsupported and panic.
func (g *Group) Each(fn func(e Entity, components []any)) {
	if g.iterating {
		panic("ecs: nested Each on the same group")
	}
	g.iterating = true
	defer func() { g.iterating = false }()

	g.snapshot = append(g.snapshot[:0], g.entities...)
	for _, e := range g.snapshot {
		index := e.Index()
		if !g.ctx.alive[index] || g.ctx.generations[index] != e.Generation() {
			continue
		}
		if !g.ctx.signatures[index].contains(g.signature) {
			continue
		}

		g.comps = g.comps[:0]
		for _, t := range g.types {
			slot, _ := t.slots.Get(index)
			g.comps = append(g.comps, t.pool.At(slot))
		}
		fn(e, g.comps)
	}
}

func (g *Group) handleAdded(e Entity) {
	index := e.Index()
	if _, ok := g.positions.Get(index); ok {
		return
	}
	g.positions.Put(index, len(g.entities))
	g.entities = append(g.entities, e)
}

func (g *Group) handleRemoved(e Entity) {
	index := e.Index()
	pos, ok := g.positions.Get(index)
	if !ok {
		return
	}

	last := len(g.entities) - 1
	moved := g.entities[last]
	g.entities[pos] = moved
	g.entities = g.entities[:last]
	if moved.Index() != index {
		g.positions.Put(moved.Index(), pos)
	}
	g.positions.Del(index)
}
