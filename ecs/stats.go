package ecs

// ContextStats is a point-in-time snapshot of storage occupancy, used by
// tests and the debug UI.
type ContextStats struct {
	EntityCount int
	GroupCount  int
	Pools       []PoolStats
}

// PoolStats describes one component type's pool.
type PoolStats struct {
	Name     string
	Live     int
	Capacity int
	Free     int
}

// CollectStats gathers storage statistics across all registered component
// types.
func (c *Context) CollectStats() ContextStats {
	stats := ContextStats{
		EntityCount: c.liveCount,
		GroupCount:  len(c.groups),
		Pools:       make([]PoolStats, 0, len(c.types)),
	}
	for _, t := range c.types {
		stats.Pools = append(stats.Pools, PoolStats{
			Name:     t.name,
			Live:     t.pool.Live(),
			Capacity: t.pool.Cap(),
			Free:     t.pool.Cap() - t.pool.Live(),
		})
	}
	return stats
}
