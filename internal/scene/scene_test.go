package scene

import (
	"testing"

	"github.com/talgya/strokesim/internal/geom"
	"github.com/talgya/strokesim/internal/modulation"
)

func TestStrokeNeverEmptyAfterCreation(t *testing.T) {
	w := NewWorld()
	s := w.BeginStroke(geom.V(3, 4), 0.9, DefaultParams())
	if len(s.Points) != 1 {
		t.Fatalf("new stroke has %d points, want 1", len(s.Points))
	}
	p := s.Points[0]
	if p.Pos != geom.V(3, 4) || p.Base != geom.V(3, 4) {
		t.Errorf("first point pos %v base %v, want both (3,4)", p.Pos, p.Base)
	}
	if p.Pressure != 0.9 {
		t.Errorf("pressure %v, want 0.9", p.Pressure)
	}
}

func TestStrokeIndicesAdvance(t *testing.T) {
	w := NewWorld()
	a := w.BeginStroke(geom.V(0, 0), 0.5, DefaultParams())
	b := w.BeginStroke(geom.V(1, 0), 0.5, DefaultParams())
	if a.Index != 0 || b.Index != 1 {
		t.Errorf("indices %d, %d, want 0, 1", a.Index, b.Index)
	}
	if a.ID == b.ID {
		t.Errorf("strokes share ID %s", a.ID)
	}
}

func TestRemoveStrokeDropsItsConnections(t *testing.T) {
	w := NewWorld()
	a := w.BeginStroke(geom.V(0, 0), 0.5, DefaultParams())
	b := w.BeginStroke(geom.V(10, 0), 0.5, DefaultParams())
	w.Connect(NewConnection(
		Endpoint{StrokeID: a.ID, PointIndex: 0},
		Endpoint{StrokeID: b.ID, PointIndex: 0},
	))

	w.RemoveStroke(b.ID)
	if len(w.Connections) != 0 {
		t.Errorf("connections = %d after stroke removal, want 0", len(w.Connections))
	}
	if w.StrokeByID(b.ID) != nil {
		t.Errorf("removed stroke still resolvable")
	}
}

func TestEndpointExistenceCheck(t *testing.T) {
	w := NewWorld()
	a := w.BeginStroke(geom.V(0, 0), 0.5, DefaultParams())

	if _, _, ok := w.Endpoint(Endpoint{StrokeID: a.ID, PointIndex: 0}); !ok {
		t.Error("valid endpoint not resolvable")
	}
	if _, _, ok := w.Endpoint(Endpoint{StrokeID: a.ID, PointIndex: 7}); ok {
		t.Error("out-of-range point index resolved")
	}
	if _, _, ok := w.Endpoint(Endpoint{StrokeID: "missing", PointIndex: 0}); ok {
		t.Error("missing stroke resolved")
	}
}

func TestSelectionAssignment(t *testing.T) {
	w := NewWorld()
	a := w.BeginStroke(geom.V(0, 0), 0.5, DefaultParams())
	b := w.BeginStroke(geom.V(1, 0), 0.5, DefaultParams())
	c := w.BeginStroke(geom.V(2, 0), 0.5, DefaultParams())

	w.SetSelection([]string{c.ID, a.ID})
	if c.SelectionIndex != 0 || c.SelectionTotal != 2 {
		t.Errorf("c selection %d/%d, want 0/2", c.SelectionIndex, c.SelectionTotal)
	}
	if a.SelectionIndex != 1 || a.SelectionTotal != 2 {
		t.Errorf("a selection %d/%d, want 1/2", a.SelectionIndex, a.SelectionTotal)
	}
	if b.SelectionTotal != 0 {
		t.Errorf("unselected stroke has total %d, want 0", b.SelectionTotal)
	}
}

func TestSnapshotIsIndependentOfLiveWorld(t *testing.T) {
	w := NewWorld()
	s := w.BeginStroke(geom.V(0, 0), 0.5, DefaultParams())
	s.AppendPoint(geom.V(10, 0), 0.5)
	s.SetMod(ParamTension, modulation.Config{Source: modulation.SourceTime, Max: 1})
	other := w.BeginStroke(geom.V(50, 0), 0.5, DefaultParams())
	w.Connect(NewConnection(
		Endpoint{StrokeID: s.ID, PointIndex: 0},
		Endpoint{StrokeID: other.ID, PointIndex: 0},
	))

	snap := w.Snapshot()

	// Mutate the live world after the snapshot.
	s.Points[0].Pos = geom.V(999, 999)
	s.Mods[ParamTension].Max = 42
	w.RemoveStroke(other.ID)

	if snap.Strokes[0].Points[0].Pos != (geom.V(0, 0)) {
		t.Errorf("snapshot point moved with live world: %v", snap.Strokes[0].Points[0].Pos)
	}
	if snap.Strokes[0].Mods[ParamTension].Max != 1 {
		t.Errorf("snapshot mod changed with live world: %v", snap.Strokes[0].Mods[ParamTension].Max)
	}
	if len(snap.Connections) != 1 {
		t.Errorf("snapshot lost a connection: %d", len(snap.Connections))
	}
}

func TestRestoreRoundTrips(t *testing.T) {
	w := NewWorld()
	s := w.BeginStroke(geom.V(0, 0), 0.5, DefaultParams())
	s.AppendPoint(geom.V(10, 0), 0.5)
	snap := w.Snapshot()

	s.Points[1].Pos = geom.V(-1, -1)
	w.BeginStroke(geom.V(7, 7), 0.5, DefaultParams())

	w.Restore(snap)
	if len(w.Strokes) != 1 {
		t.Fatalf("restored world has %d strokes, want 1", len(w.Strokes))
	}
	restored := w.StrokeByID(s.ID)
	if restored == nil {
		t.Fatal("restored stroke not indexed by ID")
	}
	if restored.Points[1].Pos != (geom.V(10, 0)) {
		t.Errorf("restored point at %v, want (10,0)", restored.Points[1].Pos)
	}

	// Restoring twice from the same snapshot must work.
	restored.Points[1].Pos = geom.V(5, 5)
	w.Restore(snap)
	if w.StrokeByID(s.ID).Points[1].Pos != (geom.V(10, 0)) {
		t.Error("second restore from the same snapshot was polluted")
	}

	// New strokes after a restore must not collide with kept indices.
	next := w.BeginStroke(geom.V(1, 1), 0.5, DefaultParams())
	if next.Index != 1 {
		t.Errorf("next index %d after restore, want 1", next.Index)
	}
}

func TestNearestPointRespectsRadiusAndExclusion(t *testing.T) {
	w := NewWorld()
	a := w.BeginStroke(geom.V(0, 0), 0.5, DefaultParams())
	b := w.BeginStroke(geom.V(30, 0), 0.5, DefaultParams())

	got, ok := w.NearestPoint(geom.V(2, 0), 10, b.ID)
	if !ok || got.StrokeID != a.ID {
		t.Errorf("nearest = %+v ok=%v, want stroke a", got, ok)
	}

	if _, ok := w.NearestPoint(geom.V(2, 0), 1, b.ID); ok {
		t.Error("point found outside radius 1")
	}
	if _, ok := w.NearestPoint(geom.V(2, 0), 10, a.ID); ok {
		t.Error("excluded stroke was matched")
	}
}
