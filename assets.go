package cubescene

import (
	"bytes"
	_ "embed"
)

// defaultSceneJSON is a 27-cubie scene exported in the JSON asset format:
// layers of rows of cubie nodes, spacing 1.0, cubie edge 0.95.
//
//go:embed assets/cube_scene.json
var defaultSceneJSON []byte

// DefaultScene returns the embedded 27-cubie scene asset. It is the input
// the CLI uses when no scene file is given; BuildCubeScene produces the
// same geometry procedurally.
func DefaultScene() (*Node, error) {
	return LoadScene(bytes.NewReader(defaultSceneJSON))
}
