package ecs

import (
	"fmt"

	"github.com/plus3/drizzle/vec"
)

// poolBlockSize is the slot count per storage block. Blocks are never
// reallocated once grown, so pointers into a pool stay valid for the
// lifetime of the slot.
const poolBlockSize = 64

// Pool is a slot-backed store for component instances of one type.
// Slots are addressed by index; the Context owns the index bookkeeping and
// systems only ever see transient pointers handed out per frame.
type Pool interface {
	// Allocate returns the index of a ready-to-use slot in amortized O(1),
	// reusing a released slot when one is available.
	Allocate() int
	// Release returns a slot to the free list. Releasing a slot that is
	// not live is a programming error and panics.
	Release(slot int)
	// At returns a pointer to the slot's value. Accessing a slot that is
	// not live is a programming error and panics.
	At(slot int) any
	// Live returns the number of currently allocated slots.
	Live() int
	// Cap returns the total number of slots the pool has grown to.
	Cap() int
}

// Clearer is implemented by components that reset their own fields.
// ObjectPool invokes Clear on every allocation so reused slots never leak
// state from a previous owner.
type Clearer interface {
	Clear()
}

// VecPool stores bare vec.Vec2 values, the allocator strategy for the
// geometric components. Reused slots are zeroed on allocation.
type VecPool struct {
	blocks [][poolBlockSize]vec.Vec2
	live   [][poolBlockSize]bool
	free   []int
	next   int
}

// NewVecPool creates an empty vector pool.
func NewVecPool() *VecPool {
	return &VecPool{}
}

func (p *VecPool) Allocate() int {
	var slot int
	if n := len(p.free); n > 0 {
		slot = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		slot = p.next
		p.next++
		if slot/poolBlockSize >= len(p.blocks) {
			p.blocks = append(p.blocks, [poolBlockSize]vec.Vec2{})
			p.live = append(p.live, [poolBlockSize]bool{})
		}
	}

	p.blocks[slot/poolBlockSize][slot%poolBlockSize].Zero()
	p.live[slot/poolBlockSize][slot%poolBlockSize] = true
	return slot
}

func (p *VecPool) Release(slot int) {
	p.check(slot)
	p.live[slot/poolBlockSize][slot%poolBlockSize] = false
	p.free = append(p.free, slot)
}

func (p *VecPool) At(slot int) any {
	p.check(slot)
	return &p.blocks[slot/poolBlockSize][slot%poolBlockSize]
}

func (p *VecPool) Live() int { return p.next - len(p.free) }
func (p *VecPool) Cap() int  { return p.next }

func (p *VecPool) check(slot int) {
	if slot < 0 || slot >= p.next {
		panic(fmt.Sprintf("ecs: pool slot %d out of range [0,%d)", slot, p.next))
	}
	if !p.live[slot/poolBlockSize][slot%poolBlockSize] {
		panic(fmt.Sprintf("ecs: pool slot %d is not live", slot))
	}
}

// ObjectPool stores struct components of type T, the allocator strategy
// for multi-field components. If *T implements Clearer, Clear is invoked
// on every allocation; otherwise the slot is reset to the zero value.
type ObjectPool[T any] struct {
	blocks [][poolBlockSize]T
	live   [][poolBlockSize]bool
	free   []int
	next   int
}

// NewObjectPool creates an empty object pool for component type T.
func NewObjectPool[T any]() *ObjectPool[T] {
	return &ObjectPool[T]{}
}

func (p *ObjectPool[T]) Allocate() int {
	var slot int
	if n := len(p.free); n > 0 {
		slot = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		slot = p.next
		p.next++
		if slot/poolBlockSize >= len(p.blocks) {
			p.blocks = append(p.blocks, [poolBlockSize]T{})
			p.live = append(p.live, [poolBlockSize]bool{})
		}
	}

	item := &p.blocks[slot/poolBlockSize][slot%poolBlockSize]
	if c, ok := any(item).(Clearer); ok {
		c.Clear()
	} else {
		var zero T
		*item = zero
	}
	p.live[slot/poolBlockSize][slot%poolBlockSize] = true
	return slot
}

func (p *ObjectPool[T]) Release(slot int) {
	p.check(slot)
	p.live[slot/poolBlockSize][slot%poolBlockSize] = false
	p.free = append(p.free, slot)
}

func (p *ObjectPool[T]) At(slot int) any {
	p.check(slot)
	return &p.blocks[slot/poolBlockSize][slot%poolBlockSize]
}

func (p *ObjectPool[T]) Live() int { return p.next - len(p.free) }
func (p *ObjectPool[T]) Cap() int  { return p.next }

func (p *ObjectPool[T]) check(slot int) {
	if slot < 0 || slot >= p.next {
		panic(fmt.Sprintf("ecs: pool slot %d out of range [0,%d)", slot, p.next))
	}
	if !p.live[slot/poolBlockSize][slot%poolBlockSize] {
		panic(fmt.Sprintf("ecs: pool slot %d is not live", slot))
	}
}
