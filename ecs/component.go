package ecs

import "github.com/kamstrup/intmap"

// maxComponentTypes is fixed by the width of Signature.
const maxComponentTypes = 64

// Signature is a bitmask over registered component type ids. Group
// membership is a plain containment test, no reflection involved.
type Signature uint64

// contains reports whether every bit in other is set in s.
func (s Signature) contains(other Signature) bool {
	return s&other == other
}

// ComponentType is a registered descriptor pairing a unique name with a
// pool. It is immutable after registration and acts as the typed key into
// per-entity storage.
type ComponentType struct {
	ctx  *Context
	id   int
	name string
	pool Pool

	// slots maps entity slot index to the pool slot holding that entity's
	// component instance.
	slots *intmap.Map[uint32, int]
}

// Name returns the unique name the type was registered under.
func (t *ComponentType) Name() string {
	return t.name
}

// bit returns the type's position in entity signatures.
func (t *ComponentType) bit() Signature {
	return 1 << t.id
}
