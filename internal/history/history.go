// Package history keeps a bounded stack of full-scene snapshots for
// undo/redo. Snapshots are opaque here: the scene does the copying,
// this package only pushes and pops.
package history

import "github.com/talgya/strokesim/internal/scene"

// Capacity bounds how many undo states are retained. Pushing past it
// discards the oldest snapshot.
const Capacity = 30

// Stack is an undo/redo pair of snapshot stacks.
type Stack struct {
	undo []scene.Snapshot
	redo []scene.Snapshot
}

// New creates an empty history stack.
func New() *Stack {
	return &Stack{}
}

// Push records a new state. Any redo states are invalidated, matching
// editor convention: acting after an undo forks the timeline.
func (h *Stack) Push(snap scene.Snapshot) {
	h.undo = append(h.undo, snap)
	if len(h.undo) > Capacity {
		h.undo = h.undo[len(h.undo)-Capacity:]
	}
	h.redo = h.redo[:0]
}

// Undo pops the most recent state, moving the provided current state
// onto the redo stack. Returns false when there is nothing to undo.
func (h *Stack) Undo(current scene.Snapshot) (scene.Snapshot, bool) {
	if len(h.undo) == 0 {
		return scene.Snapshot{}, false
	}
	snap := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return snap, true
}

// Redo reverses the most recent Undo. Returns false when there is
// nothing to redo.
func (h *Stack) Redo(current scene.Snapshot) (scene.Snapshot, bool) {
	if len(h.redo) == 0 {
		return scene.Snapshot{}, false
	}
	snap := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return snap, true
}

// Len returns the number of undoable states.
func (h *Stack) Len() int {
	return len(h.undo)
}
