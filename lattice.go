package cubescene

import (
	"math"
	"sort"
)

// latticePrecision is the number of decimals coordinates are rounded to when
// collecting lattice values, collapsing float noise from the bake pass.
const latticePrecision = 3

// GeometryInfo holds the calibrated discrete geometry of the puzzle:
// the lattice values pieces may occupy per axis, the absolute coordinate
// magnitude beyond which a piece belongs to an outer layer, and the maximum
// deviation corrected back to an exact value after an animation.
//
// It is computed once from the registered pieces and never recomputed; the
// puzzle is rigid and non-deforming.
type GeometryInfo struct {
	Lattice        []float64
	LayerThreshold float64
	SnapTolerance  float64
}

// Calibrate derives the discrete geometry from the flattened piece list.
// Every coordinate component of every piece position is rounded and
// collected; the sorted distinct values form the lattice.
func Calibrate(pieces []Piece) (GeometryInfo, error) {
	if len(pieces) == 0 {
		return GeometryInfo{}, ErrEmptyScene
	}

	scale := math.Pow(10, latticePrecision)
	seen := make(map[float64]struct{})
	maxAbs := 0.0

	for _, p := range pieces {
		for i := 0; i < 3; i++ {
			v := math.Round(p.Position[i]*scale) / scale
			seen[v] = struct{}{}
			if a := math.Abs(v); a > maxAbs {
				maxAbs = a
			}
		}
	}

	lattice := make([]float64, 0, len(seen))
	for v := range seen {
		lattice = append(lattice, v)
	}
	sort.Float64s(lattice)

	return GeometryInfo{
		Lattice:        lattice,
		LayerThreshold: maxAbs * 0.5,
		SnapTolerance:  maxAbs * 0.15,
	}, nil
}

// SelectFace returns the indices of the pieces currently in the face's outer
// layer: those whose coordinate on the face's axis lies strictly beyond the
// layer threshold on the face's side. No fixed cardinality is assumed; an
// empty result signals a calibration or asset defect and the caller must not
// rotate.
func (g GeometryInfo) SelectFace(pieces []Piece, face Face) []int {
	axis := int(face.Axis())
	var indices []int
	for i, p := range pieces {
		c := p.Position[axis]
		if face.positive() {
			if c > g.LayerThreshold {
				indices = append(indices, i)
			}
		} else {
			if c < -g.LayerThreshold {
				indices = append(indices, i)
			}
		}
	}
	return indices
}

// SnapToLattice returns the nearest lattice value when v lies within the
// snap tolerance of one, and v unchanged otherwise.
func (g GeometryInfo) SnapToLattice(v float64) float64 {
	best, dist := v, math.Inf(1)
	for _, lv := range g.Lattice {
		if d := math.Abs(v - lv); d < dist {
			best, dist = lv, d
		}
	}
	if dist <= g.SnapTolerance {
		return best
	}
	return v
}
