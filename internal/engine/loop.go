package engine

import (
	"log/slog"
	"time"
)

// reportEvery controls how often the loop logs a frame report.
const reportEvery = 300

// Loop drives the engine at a steady frame rate: one Step, then one
// render callback, per tick. A governor can skip steps to save power;
// skipped frames are simply lost. There is no sub-stepping or
// catch-up, so scenes evolve differently at different frame rates.
// That is a documented characteristic of the system, not a bug.
type Loop struct {
	Engine   *Engine
	Interval time.Duration // frame interval; default derives from FPS

	// Governor steps the physics only every Nth frame. 0 and 1 both
	// mean every frame.
	Governor int

	// OnRender runs after each step completes, when the world is
	// quiescent and safe to read.
	OnRender func(frame uint64)

	running bool
}

// Run starts the frame loop. Blocks until Stop is called.
func (l *Loop) Run() {
	if l.Interval <= 0 {
		l.Interval = time.Second / time.Duration(l.Engine.cfg.FPS)
	}
	governor := l.Governor
	if governor < 1 {
		governor = 1
	}

	l.running = true
	slog.Info("frame loop started",
		"interval", l.Interval,
		"governor", governor,
	)

	frame := uint64(0)
	for l.running {
		start := time.Now()
		frame++

		if frame%uint64(governor) == 0 {
			l.Engine.Step()
		}
		if l.OnRender != nil {
			l.OnRender(frame)
		}

		if frame%reportEvery == 0 {
			st := l.Engine.Stats
			slog.Info("frame report",
				"frame", frame,
				"sim_frames", st.Frames,
				"strokes", st.Strokes,
				"points", st.Points,
				"connections", st.Connections,
				"broken", st.ConnectionsBroken,
				"step_ms", st.LastStepMillis,
			)
		}

		elapsed := time.Since(start)
		if elapsed < l.Interval {
			time.Sleep(l.Interval - elapsed)
		}
	}

	slog.Info("frame loop stopped", "frames", frame)
}

// Stop halts the loop after the current frame.
func (l *Loop) Stop() {
	l.running = false
}
