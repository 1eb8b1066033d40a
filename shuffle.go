package cubescene

import "math/rand"

// DefaultShuffleLength is the number of moves in a generated shuffle.
const DefaultShuffleLength = 12

// Shuffle is an ordered sequence of moves in which no two consecutive moves
// share a rotation axis. It is replaced wholesale on regeneration, never
// mutated in place.
type Shuffle []Move

// NewShuffle generates a shuffle of the given length from the randomness
// source. Faces are drawn uniformly; a draw whose axis matches the previous
// move's axis is rejected and redrawn, so consecutive moves always rotate
// about different axes. The same face may still recur after an intervening
// different-axis move, and no scrambling-quality guarantee is made; this is
// a presentation shuffle.
//
// The result is a pure function of rng and length; it does not depend on any
// cube state.
func NewShuffle(rng *rand.Rand, length int) Shuffle {
	if length < 0 {
		length = 0
	}
	s := make(Shuffle, 0, length)

	prevAxis := Axis(-1)
	for len(s) < length {
		face := Faces[rng.Intn(len(Faces))]
		if face.Axis() == prevAxis {
			continue
		}
		prevAxis = face.Axis()

		dir := CW
		if rng.Intn(2) == 1 {
			dir = CCW
		}
		s = append(s, Move{Face: face, Direction: dir})
	}

	return s
}

// Notation returns the space-separated notation string for the shuffle.
func (s Shuffle) Notation() string {
	return FormatMoves(s)
}

// String returns the notation string (alias for Notation).
func (s Shuffle) String() string {
	return s.Notation()
}

// Inverse returns the move sequence that undoes the shuffle: the reversed
// sequence with every move inverted.
func (s Shuffle) Inverse() Shuffle {
	inv := make(Shuffle, len(s))
	for i, m := range s {
		inv[len(s)-1-i] = m.Inverse()
	}
	return inv
}
