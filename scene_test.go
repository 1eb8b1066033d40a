package cubescene

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFlatten_DefaultCubeHas27Pieces(t *testing.T) {
	pieces, err := Flatten(BuildCubeScene(3, 1.0, 0.95))
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if len(pieces) != 27 {
		t.Fatalf("expected 27 pieces, got %d", len(pieces))
	}

	for _, p := range pieces {
		for i := 0; i < 3; i++ {
			c := p.Position[i]
			if math.Abs(c) > 1e-9 && math.Abs(math.Abs(c)-1) > 1e-9 {
				t.Errorf("piece %s coordinate %d = %v, want -1, 0 or 1", p.Name, i, c)
			}
		}
		if p.Orientation != mgl64.QuatIdent() {
			t.Errorf("piece %s should start with identity orientation", p.Name)
		}
	}
}

func TestFlatten_BakesNestedTransforms(t *testing.T) {
	// A mesh one unit along +X under a group rotated 90 degrees about +Y
	// must land at -Z with its vertices recentered on the origin.
	root := NewNode("root")
	group := NewNode("group")
	group.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})

	leaf := NewNode("leaf")
	leaf.Translation = mgl64.Vec3{1, 0, 0}
	leaf.Scale = mgl64.Vec3{2, 2, 2}
	leaf.Mesh = unitCubeMesh("leaf")

	group.Children = append(group.Children, leaf)
	root.Children = append(root.Children, group)

	pieces, err := Flatten(root)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if len(pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(pieces))
	}

	p := pieces[0]
	want := mgl64.Vec3{0, 0, -1}
	if p.Position.Sub(want).Len() > 1e-9 {
		t.Errorf("position = %v, want %v", p.Position, want)
	}

	// The doubled scale must be baked into the recentered vertices.
	min, max := p.Mesh.Bounds()
	size := max.Sub(min)
	for i := 0; i < 3; i++ {
		if math.Abs(size[i]-2) > 1e-9 {
			t.Errorf("baked size[%d] = %v, want 2", i, size[i])
		}
	}
	if center := p.Mesh.Center(); center.Len() > 1e-9 {
		t.Errorf("baked mesh should be centered on origin, center = %v", center)
	}
}

func TestFlatten_EmptyScene(t *testing.T) {
	if _, err := Flatten(nil); err != ErrEmptyScene {
		t.Errorf("Flatten(nil) = %v, want ErrEmptyScene", err)
	}
	if _, err := Flatten(NewNode("empty")); err != ErrEmptyScene {
		t.Errorf("Flatten(meshless) = %v, want ErrEmptyScene", err)
	}
}

func TestLoadScene_JSON(t *testing.T) {
	src := `{
		"name": "root",
		"children": [
			{
				"name": "left",
				"translation": [-1, 0, 0],
				"mesh": {"vertices": [[-0.5,-0.5,-0.5],[0.5,0.5,0.5]]}
			},
			{
				"name": "right",
				"translation": [1, 0, 0],
				"rotation_deg": [0, 90, 0],
				"scale": [1, 1, 1],
				"mesh": {"vertices": [[-0.5,-0.5,-0.5],[0.5,0.5,0.5]]}
			}
		]
	}`

	root, err := LoadScene(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	pieces, err := Flatten(root)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if len(pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(pieces))
	}

	if pieces[0].Position.Sub(mgl64.Vec3{-1, 0, 0}).Len() > 1e-9 {
		t.Errorf("left piece at %v", pieces[0].Position)
	}
	if pieces[1].Position.Sub(mgl64.Vec3{1, 0, 0}).Len() > 1e-9 {
		t.Errorf("right piece at %v", pieces[1].Position)
	}
}

func TestLoadScene_Malformed(t *testing.T) {
	if _, err := LoadScene(strings.NewReader("{not json")); err == nil {
		t.Error("expected decode error")
	}
}

func TestDefaultScene_MatchesBuiltScene(t *testing.T) {
	root, err := DefaultScene()
	if err != nil {
		t.Fatalf("DefaultScene: %v", err)
	}

	pieces, err := Flatten(root)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	built, err := Flatten(BuildCubeScene(3, 1.0, 0.95))
	if err != nil {
		t.Fatalf("Flatten built scene: %v", err)
	}

	if len(pieces) != len(built) {
		t.Fatalf("expected %d pieces, got %d", len(built), len(pieces))
	}
	for i, p := range pieces {
		if p.Position.Sub(built[i].Position).Len() > 1e-9 {
			t.Errorf("piece %s at %v, want %v", p.Name, p.Position, built[i].Position)
		}
	}

	geom, err := Calibrate(pieces)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if len(geom.Lattice) != 3 {
		t.Errorf("lattice = %v, want 3 values", geom.Lattice)
	}
}
