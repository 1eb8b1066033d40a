// Package cubescene provides an animated virtual 3x3x3 twisty puzzle.
//
// The package keeps a discrete cube state consistent while presenting
// continuous smooth motion: pieces are registered from a hierarchical scene,
// normalized into a flat arena, classified into faces geometrically, and
// rotated by an animation state machine that snaps every piece back onto the
// lattice when a turn completes.
//
// # Features
//
//   - Scene flattening with transform baking (no parent hierarchy survives)
//   - Geometry calibration (lattice values, layer threshold, snap tolerance)
//   - Face classification by position, not by sticker identity
//   - Eased 90-degree face rotations with drift correction
//   - Constrained shuffle generation (no two consecutive moves per axis)
//   - Strictly serialized move playback with completion callbacks
//
// # Quick Start
//
// Build the default cube and turn a face:
//
//	cube, err := cubescene.New(cubescene.BuildCubeScene(3, 1.0, 0.95))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cube.OnMoveComplete(func(m cubescene.Move) {
//	    fmt.Println("Done:", m.Notation())
//	})
//
//	cube.RotateFace(cubescene.FaceR, cubescene.CW)
//	for cube.Busy() {
//	    cube.Advance(time.Now())
//	}
//
// The core holds no frame-timing dependency: the host render loop calls
// Advance once per frame with the current time. Hosts without a loop of
// their own can use Run, which ticks Advance at a target FPS until the
// context is done.
//
// # Shuffles
//
// Shuffles are random move sequences in which no two consecutive moves share
// a rotation axis:
//
//	s := cubescene.NewShuffle(rng, 12)
//	fmt.Println(s.Notation()) // e.g. "R U' F L D' B ..."
//	cube.PlayShuffle(s, func() { fmt.Println("shuffle finished") })
//
// While a shuffle is playing, external rotate requests are rejected and
// InputEnabled reports false so input collaborators can disable themselves.
package cubescene
