package cubescene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is the visual representation of a piece: a bag of vertex positions.
// The animation core treats it as opaque; renderers read it back out.
type Mesh struct {
	Name     string
	Vertices []mgl64.Vec3
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() (min, max mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return min, max
}

// Center returns the centroid of the mesh's bounding box.
func (m *Mesh) Center() mgl64.Vec3 {
	min, max := m.Bounds()
	return min.Add(max).Mul(0.5)
}

// Node is one node of a hierarchical scene: a local transform, an optional
// leaf mesh, and children carrying further nested transforms.
type Node struct {
	Name        string
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3
	Mesh        *Mesh
	Children    []*Node
}

// NewNode creates a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// localMatrix composes the node's translation, rotation and scale.
// Zero-valued rotation and scale are treated as identity so that
// struct-literal nodes behave like NewNode ones.
func (n *Node) localMatrix() mgl64.Mat4 {
	rot := n.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	scale := n.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}
	t := mgl64.Translate3D(n.Translation.X(), n.Translation.Y(), n.Translation.Z())
	s := mgl64.Scale3D(scale.X(), scale.Y(), scale.Z())
	return t.Mul4(rot.Mat4()).Mul4(s)
}

// Piece is one independent rigid body of the puzzle. Identity is positional:
// a piece is whichever body currently satisfies a face's geometric predicate.
// When no rotation is in progress its position lies on the calibrated
// lattice (within snap tolerance).
type Piece struct {
	Name        string
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Mesh        *Mesh
}

// Flatten walks a hierarchical scene and registers every leaf mesh as an
// independent Piece. For each mesh the full world transform is baked into
// the mesh's own vertices, the vertices are recentered on their bounding-box
// centroid, and the piece's position becomes that centroid in world space
// with an identity orientation.
//
// After flattening, rotating a subset of pieces about a world axis needs no
// compensation for residual parent transforms: each piece's position and
// orientation compose directly.
func Flatten(root *Node) ([]Piece, error) {
	if root == nil {
		return nil, ErrEmptyScene
	}

	var pieces []Piece
	flattenNode(root, mgl64.Ident4(), &pieces)

	if len(pieces) == 0 {
		return nil, ErrEmptyScene
	}
	return pieces, nil
}

func flattenNode(n *Node, parent mgl64.Mat4, out *[]Piece) {
	world := parent.Mul4(n.localMatrix())

	if n.Mesh != nil {
		baked := &Mesh{
			Name:     n.Mesh.Name,
			Vertices: make([]mgl64.Vec3, len(n.Mesh.Vertices)),
		}
		for i, v := range n.Mesh.Vertices {
			baked.Vertices[i] = world.Mul4x1(v.Vec4(1)).Vec3()
		}

		// Recenter on the baked bounding-box centroid; meshes without
		// vertices collapse to the node's world origin.
		center := world.Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
		if len(baked.Vertices) > 0 {
			center = baked.Center()
		}
		for i := range baked.Vertices {
			baked.Vertices[i] = baked.Vertices[i].Sub(center)
		}

		*out = append(*out, Piece{
			Name:        n.Name,
			Position:    center,
			Orientation: mgl64.QuatIdent(),
			Mesh:        baked,
		})
	}

	for _, child := range n.Children {
		flattenNode(child, world, out)
	}
}

// BuildCubeScene builds an n-by-n-by-n cubie scene with deliberately nested
// group transforms (layers of rows of cubies), the shape a real asset
// exporter would hand over. spacing is the lattice step between cubie
// centers and size the cubie edge length.
func BuildCubeScene(n int, spacing, size float64) *Node {
	root := NewNode("cube")
	offset := float64(n-1) / 2

	for y := 0; y < n; y++ {
		layer := NewNode(fmt.Sprintf("layer-%d", y))
		layer.Translation = mgl64.Vec3{0, (float64(y) - offset) * spacing, 0}

		for z := 0; z < n; z++ {
			row := NewNode(fmt.Sprintf("row-%d-%d", y, z))
			row.Translation = mgl64.Vec3{0, 0, (float64(z) - offset) * spacing}

			for x := 0; x < n; x++ {
				cubie := NewNode(fmt.Sprintf("cubie-%d-%d-%d", x, y, z))
				cubie.Translation = mgl64.Vec3{(float64(x) - offset) * spacing, 0, 0}
				cubie.Scale = mgl64.Vec3{size, size, size}
				cubie.Mesh = unitCubeMesh(cubie.Name)
				row.Children = append(row.Children, cubie)
			}
			layer.Children = append(layer.Children, row)
		}
		root.Children = append(root.Children, layer)
	}

	return root
}

// unitCubeMesh returns the 8 corners of a unit cube centered on the origin.
func unitCubeMesh(name string) *Mesh {
	m := &Mesh{Name: name, Vertices: make([]mgl64.Vec3, 0, 8)}
	for _, x := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0.5} {
			for _, z := range []float64{-0.5, 0.5} {
				m.Vertices = append(m.Vertices, mgl64.Vec3{x, y, z})
			}
		}
	}
	return m
}

// sceneNode is the JSON wire form of a Node. Rotation is Euler XYZ degrees.
type sceneNode struct {
	Name        string       `json:"name"`
	Translation *[3]float64  `json:"translation,omitempty"`
	RotationDeg *[3]float64  `json:"rotation_deg,omitempty"`
	Scale       *[3]float64  `json:"scale,omitempty"`
	Mesh        *sceneMesh   `json:"mesh,omitempty"`
	Children    []*sceneNode `json:"children,omitempty"`
}

type sceneMesh struct {
	Name     string       `json:"name,omitempty"`
	Vertices [][3]float64 `json:"vertices"`
}

// LoadScene reads a hierarchical scene from its JSON form.
func LoadScene(r io.Reader) (*Node, error) {
	var raw sceneNode
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return buildNode(&raw), nil
}

// LoadSceneFile reads a scene asset from disk.
func LoadSceneFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene asset: %w", err)
	}
	defer f.Close()
	return LoadScene(f)
}

func buildNode(raw *sceneNode) *Node {
	n := NewNode(raw.Name)
	if raw.Translation != nil {
		n.Translation = mgl64.Vec3{raw.Translation[0], raw.Translation[1], raw.Translation[2]}
	}
	if raw.RotationDeg != nil {
		n.Rotation = mgl64.AnglesToQuat(
			mgl64.DegToRad(raw.RotationDeg[0]),
			mgl64.DegToRad(raw.RotationDeg[1]),
			mgl64.DegToRad(raw.RotationDeg[2]),
			mgl64.XYZ,
		)
	}
	if raw.Scale != nil {
		n.Scale = mgl64.Vec3{raw.Scale[0], raw.Scale[1], raw.Scale[2]}
	}
	if raw.Mesh != nil {
		m := &Mesh{Name: raw.Mesh.Name, Vertices: make([]mgl64.Vec3, len(raw.Mesh.Vertices))}
		for i, v := range raw.Mesh.Vertices {
			m.Vertices[i] = mgl64.Vec3{v[0], v[1], v[2]}
		}
		n.Mesh = m
	}
	for _, child := range raw.Children {
		n.Children = append(n.Children, buildNode(child))
	}
	return n
}
