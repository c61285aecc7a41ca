// Command strokesim runs a headless stroke physics scene: a demo
// drawing is simulated, periodically persisted, and reported on until
// interrupted. Hosts with a UI embed the same engine and render
// between steps.
package main

import (
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/strokesim/internal/audio"
	"github.com/talgya/strokesim/internal/easing"
	"github.com/talgya/strokesim/internal/engine"
	"github.com/talgya/strokesim/internal/geom"
	"github.com/talgya/strokesim/internal/history"
	"github.com/talgya/strokesim/internal/input"
	"github.com/talgya/strokesim/internal/modulation"
	"github.com/talgya/strokesim/internal/persistence"
	"github.com/talgya/strokesim/internal/scene"
)

// saveEvery is the autosave cadence in frames, 30 seconds at 60 fps.
const saveEvery = 1800

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	dbPath := os.Getenv("STROKESIM_DB")
	if dbPath == "" {
		dbPath = "data/strokesim.db"
	}

	os.MkdirAll("data", 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── Scene ─────────────────────────────────────────────────────────
	var world *scene.World
	if db.HasScene() {
		slog.Info("found saved scene, loading...")
		world, err = db.LoadScene()
		if err != nil {
			slog.Error("failed to load scene", "error", err)
			os.Exit(1)
		}
	} else {
		world = scene.NewWorld()
	}

	eng := engine.New(world, audio.Silence{}, engine.DefaultConfig())
	hist := history.New()

	if len(world.Strokes) == 0 {
		hist.Push(world.Snapshot())
		buildDemoScene(eng, world)
		slog.Info("demo scene built",
			"strokes", len(world.Strokes),
			"points", humanize.Comma(int64(world.PointCount())),
			"connections", len(world.Connections),
		)
	}

	// Sweep the cursor in a slow circle so the cursor-driven forces
	// have something to react to in a headless run.
	eng.Tool = input.Tool{
		Kind:     input.ToolRepulse,
		Radius:   140,
		Strength: 1.2,
		Falloff:  2,
	}

	// Persistence runs on the loop goroutine, after the step, while the
	// world is quiescent. Saving from anywhere else would race with the
	// integrator.
	loop := &engine.Loop{
		Engine: eng,
		OnRender: func(frame uint64) {
			angle := float64(frame) * 0.01
			eng.Pointer.Move(geom.V(
				400+220*math.Cos(angle),
				300+220*math.Sin(angle),
			))
			if frame%saveEvery == 0 {
				if err := db.SaveScene(world); err != nil {
					slog.Error("periodic save failed", "error", err)
				}
			}
		},
	}

	// ── Shutdown ──────────────────────────────────────────────────────
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		slog.Info("shutting down...")
		loop.Stop()
	}()

	loop.Run()

	if err := db.SaveScene(world); err != nil {
		slog.Error("final save failed", "error", err)
	}
	slog.Info("run summary",
		"sim_frames", humanize.Comma(int64(eng.Stats.Frames)),
		"points", humanize.Comma(int64(eng.Stats.Points)),
		"connections_broken", eng.Stats.ConnectionsBroken,
		"auto_bonds", eng.Stats.AutoBonds,
	)
}

// buildDemoScene draws a few wavy strokes with contrasting modulations
// and lets auto-bonding link their endpoints.
func buildDemoScene(eng *engine.Engine, world *scene.World) {
	for row := 0; row < 4; row++ {
		params := scene.DefaultParams()
		params.WiggleAmplitude = 0.4
		params.SwarmAlignment = 0.6
		params.SwarmCohesion = 0.8
		params.SwarmSeparation = 0.5

		y := 180 + float64(row)*80
		s := world.BeginStroke(geom.V(100, y), 0.7, params)
		for i := 1; i < 60; i++ {
			x := 100 + float64(i)*10
			s.AppendPoint(geom.V(x, y+12*math.Sin(float64(i)*0.3)), 0.7)
		}

		switch row % 3 {
		case 0:
			s.SetMod(scene.ParamWiggleAmplitude, modulation.Config{
				Source: modulation.SourceTime,
				Scope:  modulation.ScopeStroke,
				Min:    0.1,
				Max:    1.4,
				Easing: easing.Sine,
				Speed:  0.2,
			})
		case 1:
			s.SetMod(scene.ParamElasticity, modulation.Config{
				Source: modulation.SourcePath,
				Scope:  modulation.ScopePoint,
				Min:    0.02,
				Max:    0.12,
				Easing: easing.QuadInOut,
			})
		default:
			s.SetMod(scene.ParamTension, modulation.Config{
				Source: modulation.SourceRandom,
				Scope:  modulation.ScopePoint,
				Min:    0,
				Max:    0.5,
				Easing: easing.Linear,
			})
		}

		eng.FinishStroke(s)
	}
}
