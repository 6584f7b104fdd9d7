package world

// EventType names a kind of WorldEvent (SPEC_FULL.md §6).
type EventType string

const (
	EventEntitySpawned  EventType = "entity_spawned"
	EventEntityRemoved  EventType = "entity_removed"
	EventEntityCollision EventType = "entity_collision"
	EventFieldSpawned   EventType = "field_spawned"
	EventFieldExpired   EventType = "field_expired"
	EventSyncMoment     EventType = "sync_moment"
	EventTrustBlocked   EventType = "trust_blocked"
	EventWorldStats     EventType = "world_stats"
)

// WorldEvent is a single entry in the world's append-only event log
// (spec.md §3, §4.17). Data carries event-specific detail as a generic
// map so the log has one shape regardless of event type.
type WorldEvent struct {
	Time        float64
	Type        EventType
	EntityID    string
	HasEntityID bool
	Data        map[string]any
}

// emit appends an event to the log. The log is unbounded in memory for the
// lifetime of a run: Events returns a copy without clearing it, and only
// Restore resets the log.
func (w *World) emit(e WorldEvent) {
	w.events = append(w.events, e)
}
