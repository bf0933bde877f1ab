package ecs

import "fmt"

// Entity encodes both the generation (upper 32 bits) and the entity slot
// index (lower 32 bits). The generation is bumped every time a slot is
// destroyed, so a stale handle left over from a destroyed entity never
// aliases its successor.
type Entity uint64

// newEntity creates an Entity from a slot index and generation.
func newEntity(index uint32, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity handle.
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the generation from the entity handle.
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

func (e Entity) String() string {
	return fmt.Sprintf("entity(%d:%d)", e.Index(), e.Generation())
}
