package cubescene

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// cubeState is the orchestrator's single state machine. Shuffling implies
// disabled external input; there are no independent busy booleans.
type cubeState int

const (
	stateIdle cubeState = iota
	stateAnimating
	stateShuffling
)

func (s cubeState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAnimating:
		return "animating"
	case stateShuffling:
		return "shuffling"
	default:
		return "unknown"
	}
}

// Cube is an animated virtual 3x3x3 twisty puzzle. It owns the flattened
// piece arena, the calibrated geometry, and the rotation state machine, and
// serializes all moves: at most one rotation is ever in flight.
//
// The host drives animation by calling Advance once per frame; Cube itself
// holds no frame-timing dependency. All methods are safe for concurrent use.
type Cube struct {
	mu     sync.Mutex
	pieces []Piece
	geom   GeometryInfo
	cfg    *config

	state  cubeState
	active *animation

	// Remaining shuffle moves and its completion callback.
	queue       []Move
	shuffleDone func()

	onMoveComplete func(Move)
	onShuffleState func(bool)
}

// New flattens the scene, calibrates the geometry, and returns a ready cube.
func New(root *Node, opts ...Option) (*Cube, error) {
	pieces, err := Flatten(root)
	if err != nil {
		return nil, err
	}
	return NewFromPieces(pieces, opts...)
}

// NewFromPieces builds a cube from an already-flattened piece arena, for
// hosts that register pieces through their own asset pipeline.
func NewFromPieces(pieces []Piece, opts ...Option) (*Cube, error) {
	geom, err := Calibrate(pieces)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Cube{
		pieces: pieces,
		geom:   geom,
		cfg:    cfg,
		state:  stateIdle,
	}, nil
}

// Geometry returns the calibrated geometry info.
func (c *Cube) Geometry() GeometryInfo {
	return c.geom
}

// Pieces returns a snapshot of the piece arena. Renderers call this each
// frame to read back updated transforms.
func (c *Cube) Pieces() []Piece {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Piece, len(c.pieces))
	copy(out, c.pieces)
	return out
}

// Busy reports whether a rotation or shuffle is in flight.
func (c *Cube) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != stateIdle
}

// Shuffling reports whether a shuffle is currently playing.
func (c *Cube) Shuffling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateShuffling
}

// InputEnabled reports whether external rotate requests are currently
// accepted. Input collaborators poll this (or watch OnShuffleState) to
// disable themselves during shuffle playback.
func (c *Cube) InputEnabled() bool {
	return !c.Shuffling()
}

// OnMoveComplete sets a callback fired after each completed rotation, in
// completion order.
func (c *Cube) OnMoveComplete(cb func(Move)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMoveComplete = cb
}

// OnShuffleState sets a callback fired with true when shuffle playback
// starts and false when it ends.
func (c *Cube) OnShuffleState(cb func(bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onShuffleState = cb
}

// RotateFace starts a 90-degree rotation of the given face. The request is
// rejected with ErrRotationInProgress while another rotation is in flight
// and with ErrShuffleInProgress during shuffle playback; rejected requests
// are dropped, not queued, and leave all state unchanged.
func (c *Cube) RotateFace(face Face, dir Direction) error {
	return c.RotateFaceWith(face, dir, nil)
}

// RotateFaceWith is RotateFace with a per-call completion callback, fired
// after the finished rotation has been drift-corrected.
func (c *Cube) RotateFaceWith(face Face, dir Direction, done func(error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case stateShuffling:
		c.cfg.logger.Printf("rotate %s rejected: shuffle in progress", Move{Face: face, Direction: dir})
		return ErrShuffleInProgress
	case stateAnimating:
		c.cfg.logger.Printf("rotate %s rejected: rotation in progress", Move{Face: face, Direction: dir})
		return ErrRotationInProgress
	}

	if err := c.startRotation(Move{Face: face, Direction: dir}, done); err != nil {
		return err
	}
	c.state = stateAnimating
	return nil
}

// startRotation classifies the face and creates the animation state.
// Callers hold the mutex.
func (c *Cube) startRotation(move Move, done func(error)) error {
	indices := c.geom.SelectFace(c.pieces, move.Face)
	if len(indices) == 0 {
		return fmt.Errorf("%w: %s", ErrNoPiecesForFace, move.Face)
	}

	anim := newAnimation(move, indices, c.pieces, time.Now(), c.cfg.turnDuration)
	anim.done = done
	c.active = anim
	return nil
}

// NewShuffle generates a shuffle using the cube's randomness source and
// configured length. Regeneration is rejected while a shuffle is playing.
func (c *Cube) NewShuffle() (Shuffle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == stateShuffling {
		return nil, ErrShuffleInProgress
	}
	return NewShuffle(c.cfg.rng, c.cfg.shuffleLength), nil
}

// PlayShuffle plays the shuffle strictly sequentially: each move starts only
// after the previous one's completion. done fires after the final move.
// External rotate requests and shuffle regeneration are rejected until then.
func (c *Cube) PlayShuffle(s Shuffle, done func()) error {
	c.mu.Lock()

	switch c.state {
	case stateShuffling:
		c.mu.Unlock()
		return ErrShuffleInProgress
	case stateAnimating:
		c.mu.Unlock()
		return ErrRotationInProgress
	}

	if len(s) == 0 {
		c.mu.Unlock()
		if done != nil {
			done()
		}
		return nil
	}

	if err := c.startRotation(s[0], nil); err != nil {
		c.mu.Unlock()
		return err
	}

	c.state = stateShuffling
	c.queue = append([]Move(nil), s[1:]...)
	c.shuffleDone = done
	notify := c.onShuffleState
	c.mu.Unlock()

	if notify != nil {
		notify(true)
	}
	return nil
}

// Advance drives the in-flight animation to the given time. The host calls
// it once per frame; it is a no-op while idle. Completion callbacks fire on
// the caller's goroutine, outside the cube's lock.
func (c *Cube) Advance(now time.Time) {
	c.mu.Lock()

	if c.active == nil {
		c.mu.Unlock()
		return
	}

	if !c.active.tick(c.pieces, now) {
		c.mu.Unlock()
		return
	}

	// The animation has reached its end: exact-angle finalization and
	// drift correction, then figure out what comes next.
	c.active.finish(c.pieces, c.geom)
	move := c.active.move
	moveDone := c.active.done
	c.active = nil

	var callbacks []func()
	if cb := c.onMoveComplete; cb != nil {
		callbacks = append(callbacks, func() { cb(move) })
	}
	if moveDone != nil {
		callbacks = append(callbacks, func() { moveDone(nil) })
	}

	if c.state == stateShuffling && len(c.queue) > 0 {
		next := c.queue[0]
		c.queue = c.queue[1:]
		if err := c.startRotation(next, nil); err != nil {
			// A mid-shuffle classification failure is a data defect;
			// abort playback and leave the cube interactable.
			c.cfg.logger.Printf("shuffle aborted at %s: %v", next, err)
			callbacks = append(callbacks, c.endShuffleLocked()...)
		}
	} else if c.state == stateShuffling {
		callbacks = append(callbacks, c.endShuffleLocked()...)
	} else {
		c.state = stateIdle
	}

	c.mu.Unlock()
	for _, cb := range callbacks {
		cb()
	}
}

// endShuffleLocked returns to idle and collects the shuffle-end callbacks.
// Callers hold the mutex.
func (c *Cube) endShuffleLocked() []func() {
	c.state = stateIdle
	c.queue = nil
	done := c.shuffleDone
	c.shuffleDone = nil
	notify := c.onShuffleState

	var callbacks []func()
	if notify != nil {
		callbacks = append(callbacks, func() { notify(false) })
	}
	if done != nil {
		callbacks = append(callbacks, done)
	}
	return callbacks
}

// Run ticks Advance at the target FPS until the context is done. It is a
// convenience for hosts without a render loop of their own; hosts with one
// should call Advance from it instead.
func (c *Cube) Run(ctx context.Context, fps int) {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			c.Advance(t)
		}
	}
}
