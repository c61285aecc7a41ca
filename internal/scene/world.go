package scene

import (
	"log/slog"

	"github.com/talgya/strokesim/internal/geom"
)

// World owns all strokes and connections. The engine is its single
// writer during a step; rendering and hit-testing read it between
// steps. There are no ambient singletons; everything receives the
// World it operates on.
type World struct {
	Strokes     []*Stroke
	Connections []*Connection

	strokeIndex map[string]*Stroke
	nextIndex   int
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{strokeIndex: make(map[string]*Stroke)}
}

// BeginStroke starts drawing a new stroke at pos and returns it.
func (w *World) BeginStroke(pos geom.Vec2, pressure float64, params Params) *Stroke {
	s := NewStroke(w.nextIndex, pos, pressure, params)
	w.nextIndex++
	w.Strokes = append(w.Strokes, s)
	w.strokeIndex[s.ID] = s
	return s
}

// AddStroke inserts an already built stroke (snapshot restore, preset
// load). The creation counter advances past its index.
func (w *World) AddStroke(s *Stroke) {
	w.Strokes = append(w.Strokes, s)
	w.strokeIndex[s.ID] = s
	if s.Index >= w.nextIndex {
		w.nextIndex = s.Index + 1
	}
}

// StrokeByID returns the stroke with the given ID, or nil.
func (w *World) StrokeByID(id string) *Stroke {
	return w.strokeIndex[id]
}

// RemoveStroke deletes a stroke and every connection touching it.
func (w *World) RemoveStroke(id string) {
	if _, ok := w.strokeIndex[id]; !ok {
		return
	}
	delete(w.strokeIndex, id)

	kept := w.Strokes[:0]
	for _, s := range w.Strokes {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	w.Strokes = kept

	keptConns := w.Connections[:0]
	for _, c := range w.Connections {
		if c.From.StrokeID == id || c.To.StrokeID == id {
			slog.Debug("connection dropped with stroke", "connection", c.ID, "stroke", id)
			continue
		}
		keptConns = append(keptConns, c)
	}
	w.Connections = keptConns
}

// Clear removes every stroke and connection.
func (w *World) Clear() {
	w.Strokes = nil
	w.Connections = nil
	w.strokeIndex = make(map[string]*Stroke)
}

// Connect adds a bond between two endpoints.
func (w *World) Connect(c *Connection) {
	w.Connections = append(w.Connections, c)
}

// RemoveConnection deletes a bond by ID.
func (w *World) RemoveConnection(id string) {
	kept := w.Connections[:0]
	for _, c := range w.Connections {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	w.Connections = kept
}

// Endpoint resolves a connection endpoint to its point, reporting
// false when the stroke is gone or the index is out of range. This is
// the lazy existence check that makes dangling references safe.
func (w *World) Endpoint(e Endpoint) (*Stroke, *Point, bool) {
	s := w.strokeIndex[e.StrokeID]
	if s == nil || e.PointIndex < 0 || e.PointIndex >= len(s.Points) {
		return nil, nil, false
	}
	return s, &s.Points[e.PointIndex], true
}

// SetSelection assigns transient selection slots to the given stroke
// IDs and clears them everywhere else.
func (w *World) SetSelection(ids []string) {
	total := len(ids)
	slot := make(map[string]int, total)
	for i, id := range ids {
		slot[id] = i
	}
	for _, s := range w.Strokes {
		if i, ok := slot[s.ID]; ok {
			s.SelectionIndex = i
			s.SelectionTotal = total
		} else {
			s.SelectionIndex = 0
			s.SelectionTotal = 0
		}
	}
}

// PointCount returns the total simulated point count.
func (w *World) PointCount() int {
	n := 0
	for _, s := range w.Strokes {
		n += len(s.Points)
	}
	return n
}

// NearestPoint finds the closest point to pos within radius, skipping
// the stroke named by excludeID. Returns false when nothing is in
// range.
func (w *World) NearestPoint(pos geom.Vec2, radius float64, excludeID string) (Endpoint, bool) {
	best := Endpoint{}
	bestDistSq := radius * radius
	found := false
	for _, s := range w.Strokes {
		if s.ID == excludeID {
			continue
		}
		for i := range s.Points {
			d := s.Points[i].Pos.DistanceSq(pos)
			if d <= bestDistSq {
				best = Endpoint{StrokeID: s.ID, PointIndex: i}
				bestDistSq = d
				found = true
			}
		}
	}
	return best, found
}
