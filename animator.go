package cubescene

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultTurnDuration is how long one 90-degree face turn animates for.
const DefaultTurnDuration = 300 * time.Millisecond

// quatSnapTolerance is the maximum deviation of a quaternion component from
// a canonical value that finish will correct. Canonical values are at least
// 0.207 apart, so 0.05 can never snap to the wrong one.
const quatSnapTolerance = 0.05

// quatCanonical lists every value a unit quaternion component can take after
// a whole number of 90-degree rotations about a principal axis.
var quatCanonical = []float64{0, 0.5, -0.5, math.Sqrt2 / 2, -math.Sqrt2 / 2, 1, -1}

// pieceSnapshot is a piece's pose at the moment a rotation started. Every
// tick resets to the snapshot before applying the eased angle, so error
// never accumulates across frames.
type pieceSnapshot struct {
	position    mgl64.Vec3
	orientation mgl64.Quat
}

// animation is the transient state of one in-flight face rotation. It is
// created when a rotation starts and discarded when it completes.
type animation struct {
	move     Move
	axis     mgl64.Vec3
	target   float64 // signed radians; exact, never eased
	indices  []int
	snaps    []pieceSnapshot
	start    time.Time
	duration time.Duration
	done     func(error)
}

// newAnimation snapshots the selected pieces and computes the signed target
// angle. Direction CW reads clockwise viewed from outside the face, which
// flips the sign between a face and its opposite.
func newAnimation(move Move, indices []int, pieces []Piece, start time.Time, duration time.Duration) *animation {
	snaps := make([]pieceSnapshot, len(indices))
	for k, idx := range indices {
		snaps[k] = pieceSnapshot{
			position:    pieces[idx].Position,
			orientation: pieces[idx].Orientation,
		}
	}

	return &animation{
		move:     move,
		axis:     move.Face.Vector(),
		target:   (math.Pi / 2) * float64(move.Direction) * move.Face.sign(),
		indices:  indices,
		snaps:    snaps,
		start:    start,
		duration: duration,
	}
}

// tick advances the rotation to the given time and reports whether the
// animation has reached its end. The eased angle is applied twice: once to
// the position, orbiting the cube center about the face axis, and once to
// the orientation, spinning the piece in its own frame.
func (a *animation) tick(pieces []Piece, now time.Time) bool {
	progress := float64(now.Sub(a.start)) / float64(a.duration)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	ease := 1 - math.Pow(1-progress, 3)

	a.apply(pieces, a.target*ease)
	return progress >= 1
}

// apply resets every piece to its snapshot and rotates it by angle about the
// face axis.
func (a *animation) apply(pieces []Piece, angle float64) {
	rot := mgl64.QuatRotate(angle, a.axis)
	for k, idx := range a.indices {
		snap := a.snaps[k]
		pieces[idx].Position = rot.Rotate(snap.position)
		pieces[idx].Orientation = rot.Mul(snap.orientation).Normalize()
	}
}

// finish applies the exact un-eased target angle so the end pose is the true
// 90-degree rotation regardless of easing rounding, then drift-corrects
// every affected piece back onto the discrete lattice. Without the
// correction, repeated turns accumulate float error until face
// classification misclassifies pieces near the threshold.
func (a *animation) finish(pieces []Piece, geom GeometryInfo) {
	a.apply(pieces, a.target)

	for _, idx := range a.indices {
		p := &pieces[idx]
		for i := 0; i < 3; i++ {
			p.Position[i] = geom.SnapToLattice(p.Position[i])
		}
		p.Orientation = snapQuat(p.Orientation)
	}
}

// snapQuat snaps each component to the nearest canonical 90-degree-rotation
// value when within tolerance, leaves it unchanged otherwise, and
// renormalizes to unit length.
func snapQuat(q mgl64.Quat) mgl64.Quat {
	comps := [4]float64{q.W, q.V[0], q.V[1], q.V[2]}
	for i, c := range comps {
		for _, canon := range quatCanonical {
			if math.Abs(c-canon) <= quatSnapTolerance {
				comps[i] = canon
				break
			}
		}
	}
	snapped := mgl64.Quat{W: comps[0], V: mgl64.Vec3{comps[1], comps[2], comps[3]}}
	return snapped.Normalize()
}
