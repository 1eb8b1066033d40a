package cubescene

import "testing"

func TestMoveNotation(t *testing.T) {
	cases := []struct {
		move Move
		want string
	}{
		{Move{Face: FaceR, Direction: CW}, "R"},
		{Move{Face: FaceR, Direction: CCW}, "R'"},
		{Move{Face: FaceU, Direction: CW}, "U"},
		{Move{Face: FaceB, Direction: CCW}, "B'"},
	}

	for _, tc := range cases {
		if got := tc.move.Notation(); got != tc.want {
			t.Errorf("Notation() = %q, want %q", got, tc.want)
		}
	}
}

func TestParseMove_RoundTrip(t *testing.T) {
	for _, face := range Faces {
		for _, dir := range []Direction{CW, CCW} {
			m := Move{Face: face, Direction: dir}
			parsed, err := ParseMove(m.Notation())
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", m.Notation(), err)
			}
			if parsed != m {
				t.Errorf("ParseMove(%q) = %v, want %v", m.Notation(), parsed, m)
			}
		}
	}
}

func TestParseMove_Invalid(t *testing.T) {
	for _, s := range []string{"", "X", "R2", "R''", "RU"} {
		if _, err := ParseMove(s); err == nil {
			t.Errorf("ParseMove(%q) should fail", s)
		}
	}
}

func TestParseMoves_Sequence(t *testing.T) {
	moves, err := ParseMoves("R U R' U'")
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	if len(moves) != 4 {
		t.Fatalf("expected 4 moves, got %d", len(moves))
	}
	if got := FormatMoves(moves); got != "R U R' U'" {
		t.Errorf("FormatMoves = %q", got)
	}
}

func TestMoveInverse(t *testing.T) {
	m := Move{Face: FaceF, Direction: CW}
	inv := m.Inverse()
	if inv.Face != FaceF || inv.Direction != CCW {
		t.Errorf("Inverse() = %v", inv)
	}
	if inv.Inverse() != m {
		t.Error("double inverse should restore the move")
	}
}

func TestFaceAxes(t *testing.T) {
	cases := map[Face]Axis{
		FaceR: AxisX, FaceL: AxisX,
		FaceU: AxisY, FaceD: AxisY,
		FaceF: AxisZ, FaceB: AxisZ,
	}
	for face, want := range cases {
		if got := face.Axis(); got != want {
			t.Errorf("%s.Axis() = %v, want %v", face, got, want)
		}
	}
}

func TestOppositeFacesShareAxisOppositeSign(t *testing.T) {
	pairs := [][2]Face{{FaceR, FaceL}, {FaceU, FaceD}, {FaceF, FaceB}}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		if a.Axis() != b.Axis() {
			t.Errorf("%s and %s should share an axis", a, b)
		}
		if a.sign() == b.sign() {
			t.Errorf("%s and %s should have opposite rotation signs", a, b)
		}
		if a.Vector() != b.Vector() {
			t.Errorf("%s and %s should rotate about the same axis vector", a, b)
		}
	}
}
