package ecs

// UpdateFrame carries one frame's worth of shared state through the
// system pipeline.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Context   *Context
}

func newUpdateFrame(dt float64, ctx *Context) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Context:   ctx,
	}
}
