package cubescene

import "errors"

// Sentinel errors for the cubescene package.
var (
	// Scene and calibration errors
	ErrEmptyScene = errors.New("cubescene: scene contains no leaf meshes")

	// Classification errors
	ErrNoPiecesForFace = errors.New("cubescene: no pieces classified for face")

	// Contention errors. These are routine: a request arriving while a
	// rotation or shuffle is in flight is dropped, never queued.
	ErrRotationInProgress = errors.New("cubescene: rotation already in progress")
	ErrShuffleInProgress  = errors.New("cubescene: shuffle playback in progress")

	// Parsing errors
	ErrInvalidNotation = errors.New("cubescene: invalid move notation")
)
