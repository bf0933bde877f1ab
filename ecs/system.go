package ecs

// System represents a behavior that operates on entities with specific
// components. User-defined systems should implement this interface and can
// include Group fields and scratch state that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
