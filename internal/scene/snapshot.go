package scene

// Snapshot is an opaque deep copy of the world, the value the history
// layer pushes and pops. It shares no mutable state with the live
// world.
type Snapshot struct {
	Strokes     []*Stroke
	Connections []*Connection
	NextIndex   int
}

// Snapshot captures the full scene by value.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Strokes:     make([]*Stroke, len(w.Strokes)),
		Connections: make([]*Connection, len(w.Connections)),
		NextIndex:   w.nextIndex,
	}
	for i, s := range w.Strokes {
		snap.Strokes[i] = s.Clone()
	}
	for i, c := range w.Connections {
		snap.Connections[i] = c.Clone()
	}
	return snap
}

// Restore replaces the world contents with a snapshot. The snapshot is
// cloned again on the way in, so one snapshot can be restored many
// times.
func (w *World) Restore(snap Snapshot) {
	w.Strokes = make([]*Stroke, len(snap.Strokes))
	w.strokeIndex = make(map[string]*Stroke, len(snap.Strokes))
	for i, s := range snap.Strokes {
		c := s.Clone()
		w.Strokes[i] = c
		w.strokeIndex[c.ID] = c
	}
	w.Connections = make([]*Connection, len(snap.Connections))
	for i, c := range snap.Connections {
		w.Connections[i] = c.Clone()
	}
	w.nextIndex = snap.NextIndex
}
