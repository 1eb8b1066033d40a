package cubescene

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTick_EaseOutProgress(t *testing.T) {
	pieces, geom := calibratedPieces(t)
	move := Move{Face: FaceR, Direction: CW}
	indices := geom.SelectFace(pieces, move.Face)

	start := time.Unix(0, 0)
	anim := newAnimation(move, indices, pieces, start, 300*time.Millisecond)

	// At half the duration the eased fraction is 1-(1-0.5)^3 = 0.875.
	done := anim.tick(pieces, start.Add(150*time.Millisecond))
	if done {
		t.Fatal("animation should not be done at half duration")
	}

	wantAngle := anim.target * 0.875
	rotated := pieces[indices[0]]
	snap := anim.snaps[0]

	// The piece's radius from the rotation axis is preserved and the
	// angle swept matches the eased fraction.
	a := [2]float64{snap.position[1], snap.position[2]}
	b := [2]float64{rotated.Position[1], rotated.Position[2]}
	ra := math.Hypot(a[0], a[1])
	rb := math.Hypot(b[0], b[1])
	if math.Abs(ra-rb) > 1e-9 {
		t.Errorf("orbit radius changed: %v -> %v", ra, rb)
	}
	if ra > 1e-9 {
		swept := math.Atan2(b[1], b[0]) - math.Atan2(a[1], a[0])
		for swept > math.Pi {
			swept -= 2 * math.Pi
		}
		for swept < -math.Pi {
			swept += 2 * math.Pi
		}
		if math.Abs(math.Abs(swept)-math.Abs(wantAngle)) > 1e-9 {
			t.Errorf("swept angle %v, want magnitude %v", swept, wantAngle)
		}
	}
}

func TestTick_ClampsPastDuration(t *testing.T) {
	pieces, geom := calibratedPieces(t)
	move := Move{Face: FaceU, Direction: CCW}
	indices := geom.SelectFace(pieces, move.Face)

	start := time.Unix(0, 0)
	anim := newAnimation(move, indices, pieces, start, 300*time.Millisecond)

	if !anim.tick(pieces, start.Add(5*time.Second)) {
		t.Fatal("tick far past duration should report done")
	}
}

func TestFinish_AppliesExactAngle(t *testing.T) {
	pieces, geom := calibratedPieces(t)
	move := Move{Face: FaceF, Direction: CW}
	indices := geom.SelectFace(pieces, move.Face)

	start := time.Unix(0, 0)
	anim := newAnimation(move, indices, pieces, start, 300*time.Millisecond)

	// Leave the animation mid-flight, then finish: the end pose must be
	// the true 90-degree rotation regardless of where the easing was.
	anim.tick(pieces, start.Add(80*time.Millisecond))
	anim.finish(pieces, geom)

	for _, idx := range indices {
		for c := 0; c < 3; c++ {
			v := pieces[idx].Position[c]
			nearest := math.Inf(1)
			for _, lv := range geom.Lattice {
				if d := math.Abs(v - lv); d < nearest {
					nearest = d
				}
			}
			if nearest > 1e-9 {
				t.Errorf("piece %d coordinate %d = %v off-lattice after finish", idx, c, v)
			}
		}
		if n := pieces[idx].Orientation.Len(); math.Abs(n-1) > 1e-12 {
			t.Errorf("piece %d orientation norm %v after finish", idx, n)
		}
	}
}

func TestSnapQuat(t *testing.T) {
	// Perturbed half-turn quaternion components snap back to +-0.5.
	q := snapQuat(quatOf(0.51, 0.49, -0.502, 0.498))
	for _, c := range []float64{q.W, q.V[0], q.V[1], q.V[2]} {
		if math.Abs(math.Abs(c)-0.5) > 1e-12 {
			t.Errorf("component %v did not snap to +-0.5", c)
		}
	}

	// Components beyond the tolerance of every canonical value are left
	// alone, and the result is still renormalized to unit length.
	q = snapQuat(quatOf(0.3, 0.3, 0.3, 0.3))
	if math.Abs(q.Len()-1) > 1e-12 {
		t.Errorf("snapQuat must renormalize, norm = %v", q.Len())
	}
}

func quatOf(w, x, y, z float64) mgl64.Quat {
	return mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
}
