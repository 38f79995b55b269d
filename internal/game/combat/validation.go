package combat

import (
	"math"

	"github.com/udisondev/soulbound/internal/model"
)

// minVectorLength guards normalisation of near-zero vectors.
const minVectorLength = 0.001

// DefaultFacing is used when the client sends no facing vector.
var DefaultFacing = model.NewPosition(0, 1)

// NormalizeFacing returns the unit facing vector.
// A zero vector defaults to DefaultFacing.
func NormalizeFacing(fx, fz float64) (float64, float64) {
	length := math.Hypot(fx, fz)
	if length < minVectorLength {
		return DefaultFacing.X, DefaultFacing.Z
	}
	return fx / length, fz / length
}

// IsInAttackRange reports whether target is within reach of attacker.
func IsInAttackRange(attacker, target model.Position, attackRange float64) bool {
	return attacker.DistanceSquared(target) <= attackRange*attackRange
}

// IsInFrontArc reports whether target lies in the 180° arc in front of the
// attacker. fx, fz must be normalised (see NormalizeFacing).
// A target standing exactly on the attacker counts as in front.
func IsInFrontArc(attacker, target model.Position, fx, fz float64) bool {
	dx := target.X - attacker.X
	dz := target.Z - attacker.Z
	length := math.Max(math.Hypot(dx, dz), minVectorLength)
	dot := (dx/length)*fx + (dz/length)*fz
	return dot >= 0
}

// CanHit combines range and arc checks for a player swing.
func CanHit(attacker, target model.Position, fx, fz, attackRange float64) bool {
	return IsInAttackRange(attacker, target, attackRange) && IsInFrontArc(attacker, target, fx, fz)
}

// KnockbackDistance is how far a surviving monster is pushed by a hit.
const KnockbackDistance = 2.4

// Knockback returns target pushed distance units directly away from
// attacker. Coincident points are left in place. The caller confines the
// result to the map.
func Knockback(attacker, target model.Position, distance float64) model.Position {
	dx := target.X - attacker.X
	dz := target.Z - attacker.Z
	length := math.Max(math.Hypot(dx, dz), minVectorLength)
	return model.NewPosition(target.X+dx/length*distance, target.Z+dz/length*distance)
}
