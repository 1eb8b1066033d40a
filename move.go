package cubescene

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Face represents a cube face in standard notation.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
)

// Faces lists the six canonical faces in a fixed order.
var Faces = []Face{FaceR, FaceL, FaceU, FaceD, FaceF, FaceB}

// Axis identifies a world rotation axis.
type Axis int

const (
	AxisX Axis = 0 // R and L rotate about X
	AxisY Axis = 1 // U and D rotate about Y
	AxisZ Axis = 2 // F and B rotate about Z
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// Axis returns the world axis the face rotates about.
func (f Face) Axis() Axis {
	switch f {
	case FaceR, FaceL:
		return AxisX
	case FaceU, FaceD:
		return AxisY
	default:
		return AxisZ
	}
}

// Vector returns the unit vector of the face's rotation axis.
func (f Face) Vector() mgl64.Vec3 {
	switch f.Axis() {
	case AxisX:
		return mgl64.Vec3{1, 0, 0}
	case AxisY:
		return mgl64.Vec3{0, 1, 0}
	default:
		return mgl64.Vec3{0, 0, 1}
	}
}

// sign chooses the per-face rotation sign so that Direction CW always reads
// clockwise when the face is viewed from outside the cube. R, U and F sit on
// the positive half-axes; their opposites need the opposite signed angle.
func (f Face) sign() float64 {
	switch f {
	case FaceR, FaceU, FaceF:
		return -1
	default:
		return 1
	}
}

// positive reports whether the face lies on the positive half of its axis.
func (f Face) positive() bool {
	switch f {
	case FaceR, FaceU, FaceF:
		return true
	default:
		return false
	}
}

// Direction represents the turn direction of a quarter turn.
type Direction int

const (
	CW  Direction = 1  // Clockwise (viewed from outside the face)
	CCW Direction = -1 // Counter-clockwise
)

// Move represents a single quarter-turn of one face.
type Move struct {
	Face      Face
	Direction Direction
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', U, U'
func (m Move) Notation() string {
	if m.Direction == CCW {
		return string(m.Face) + "'"
	}
	return string(m.Face)
}

// Inverse returns the inverse of this move. R becomes R', R' becomes R.
func (m Move) Inverse() Move {
	return Move{Face: m.Face, Direction: -m.Direction}
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', U, U'
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	var face Face
	switch s[0] {
	case 'R', 'r':
		face = FaceR
	case 'L', 'l':
		face = FaceL
	case 'U', 'u':
		face = FaceU
	case 'D', 'd':
		face = FaceD
	case 'F', 'f':
		face = FaceF
	case 'B', 'b':
		face = FaceB
	default:
		return Move{}, ErrInvalidNotation
	}

	dir := CW
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			dir = CCW
		default:
			return Move{}, ErrInvalidNotation
		}
	}

	return Move{Face: face, Direction: dir}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
