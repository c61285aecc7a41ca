package persistence

import (
	"path/filepath"
	"testing"

	"github.com/talgya/strokesim/internal/easing"
	"github.com/talgya/strokesim/internal/geom"
	"github.com/talgya/strokesim/internal/modulation"
	"github.com/talgya/strokesim/internal/scene"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "scene.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func buildScene() *scene.World {
	w := scene.NewWorld()
	a := w.BeginStroke(geom.V(10, 20), 0.8, scene.DefaultParams())
	a.AppendPoint(geom.V(30, 20), 0.6)
	a.SetMod(scene.ParamWiggleAmplitude, modulation.Config{
		Source: modulation.SourceAudioBass,
		Scope:  modulation.ScopeStroke,
		Min:    0.2,
		Max:    2.5,
		Easing: easing.QuadOut,
	})
	a.Finish()

	b := w.BeginStroke(geom.V(100, 100), 0.4, scene.DefaultParams())
	b.Finish()

	c := scene.NewConnection(
		scene.Endpoint{StrokeID: a.ID, PointIndex: 1},
		scene.Endpoint{StrokeID: b.ID, PointIndex: 0},
	)
	c.BreakingForce = 5
	c.DecayEasing = easing.Sine
	w.Connect(c)
	return w
}

func TestSceneRoundTrip(t *testing.T) {
	db := openTestDB(t)
	w := buildScene()

	if db.HasScene() {
		t.Fatal("fresh database reports a scene")
	}
	if err := db.SaveScene(w); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !db.HasScene() {
		t.Fatal("database empty after save")
	}

	loaded, err := db.LoadScene()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded.Strokes) != 2 || len(loaded.Connections) != 1 {
		t.Fatalf("loaded %d strokes %d connections, want 2 and 1",
			len(loaded.Strokes), len(loaded.Connections))
	}

	orig := w.Strokes[0]
	got := loaded.StrokeByID(orig.ID)
	if got == nil {
		t.Fatal("stroke not found by ID after load")
	}
	if got.Index != orig.Index || got.Seed != orig.Seed || got.PhaseOffset != orig.PhaseOffset {
		t.Errorf("stroke identity fields drifted: %+v vs %+v", got, orig)
	}
	if len(got.Points) != 2 || got.Points[1].Pos != (geom.V(30, 20)) {
		t.Errorf("points did not round-trip: %+v", got.Points)
	}
	if got.OriginCenter != orig.OriginCenter {
		t.Errorf("origin center %v, want %v", got.OriginCenter, orig.OriginCenter)
	}

	mod := got.Mod(scene.ParamWiggleAmplitude)
	if mod == nil {
		t.Fatal("modulation config lost")
	}
	if mod.Source != modulation.SourceAudioBass || mod.Max != 2.5 || mod.Easing != easing.QuadOut {
		t.Errorf("modulation drifted: %+v", mod)
	}

	conn := loaded.Connections[0]
	if conn.BreakingForce != 5 || conn.DecayEasing != easing.Sine {
		t.Errorf("connection drifted: %+v", conn)
	}
	if _, _, ok := loaded.Endpoint(conn.From); !ok {
		t.Error("loaded connection endpoint does not resolve")
	}
}

func TestSaveIsFullReplace(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveScene(buildScene()); err != nil {
		t.Fatalf("first save: %v", err)
	}

	small := scene.NewWorld()
	small.BeginStroke(geom.V(0, 0), 0.5, scene.DefaultParams())
	if err := db.SaveScene(small); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := db.LoadScene()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Strokes) != 1 || len(loaded.Connections) != 0 {
		t.Errorf("loaded %d strokes %d connections, want 1 and 0",
			len(loaded.Strokes), len(loaded.Connections))
	}
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveMeta("version", "3"); err != nil {
		t.Fatalf("save meta: %v", err)
	}
	if err := db.SaveMeta("version", "4"); err != nil {
		t.Fatalf("overwrite meta: %v", err)
	}
	got, err := db.GetMeta("version")
	if err != nil {
		t.Fatalf("get meta: %v", err)
	}
	if got != "4" {
		t.Errorf("meta = %q, want \"4\"", got)
	}
}
