package ai

import "github.com/udisondev/soulbound/internal/model"

// Wander and chase tuning.
const (
	// ChaseMemory keeps a monster from giving up the chase after a single
	// tick without a target in range.
	ChaseMemory = 0.5
	// WanderArriveDistance is how close counts as reaching a wander point.
	WanderArriveDistance = 0.5
	MinWanderTimer       = 1.0
	MaxWanderTimer       = 3.0

	minMoveDistance = 0.001
)

// MoveState is the transient per-monster steering state. It is created on
// first tick and dropped when the monster dies; it is never persisted.
type MoveState struct {
	Target model.Position
	Timer  float64 // seconds until a new wander point is picked
}

// StepToward moves from toward target by at most maxStep.
// Returns from unchanged if the two points coincide.
func StepToward(from, target model.Position, maxStep float64) model.Position {
	dist := from.DistanceTo(target)
	if dist <= minMoveDistance {
		return from
	}
	step := min(maxStep, dist)
	return model.NewPosition(
		from.X+(target.X-from.X)/dist*step,
		from.Z+(target.Z-from.Z)/dist*step,
	)
}
