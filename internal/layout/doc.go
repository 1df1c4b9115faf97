// Package layout derives UI button anchor points for rooms on an
// analyzed floor-plan image.
//
// The package implements a five-stage pipeline over the room list
// produced by vision analysis and the label positions reported by the
// label detector:
//
//  1. Room filtering: rooms below the area threshold are dropped unless
//     their type is always included; excluded types never get buttons.
//  2. Label matching: each detected label resolves to at most one
//     eligible room via exact name, substring, then keyword matching.
//  3. Coordinate normalization: pixel positions become percentage
//     coordinates clamped to the canvas.
//  4. Gap filling: rooms the detector missed receive a synthetic
//     position from a per-type heuristic, so every eligible room ends up
//     with exactly one button. With no detections at all, a row-major
//     grid covers every eligible room instead.
//  5. Overlap resolution: buttons are greedily nudged apart until they
//     satisfy a minimum separation, within a bounded attempt budget.
//
// # Coordinate System
//
// Button positions are percentages of the rendered image: x_percent 0 is
// the left edge and 100 the right, y_percent 0 the top and 100 the
// bottom. Label detections arrive in pixels with (0,0) at the top-left.
//
// # Determinism
//
// Every stage is a pure function: no randomness, no clock, no I/O, no
// state shared between calls. Identical inputs always produce identical
// buttons, and concurrent calls need no synchronization. Degraded
// inputs (no detections, unmatched labels, zero canvas dimensions) fall
// back to deterministic heuristics rather than errors; the only empty
// result comes from an empty eligible room set.
package layout
