// Package smartcube turns a GoCube-protocol BLE smart cube into an input
// source for the virtual puzzle: physical face turns are decoded from move
// notifications and forwarded to the animation core.
package smartcube

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubescene"
)

// GoCube BLE service and characteristic UUIDs (Nordic UART service).
const (
	serviceUUIDString = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	txCharUUIDString  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
	rxCharUUIDString  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
)

// Message frame constants.
const (
	framePrefix  byte = 0x2A // '*'
	frameSuffix1 byte = 0x0D // CR
	frameSuffix2 byte = 0x0A // LF

	msgTypeRotation byte = 0x01
)

// Framing errors.
var (
	errMessageTooShort = errors.New("smartcube: message too short")
	errInvalidPrefix   = errors.New("smartcube: invalid message prefix")
	errInvalidSuffix   = errors.New("smartcube: invalid message suffix")
	errInvalidChecksum = errors.New("smartcube: invalid checksum")
	errInvalidLength   = errors.New("smartcube: invalid message length")
)

// message is one parsed notification frame.
type message struct {
	typ     byte
	payload []byte
}

// parseFrame parses a raw BLE notification.
// Frame format: [0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A]
// where length counts every byte from the type to the trailing LF.
func parseFrame(data []byte) (message, error) {
	if len(data) < 5 {
		return message{}, errMessageTooShort
	}
	if data[0] != framePrefix {
		return message{}, errInvalidPrefix
	}

	length := int(data[1])
	expectedLen := 2 + length
	if len(data) < expectedLen {
		return message{}, fmt.Errorf("%w: expected %d bytes, got %d", errInvalidLength, expectedLen, len(data))
	}

	// The smallest valid frame carries an empty payload: type, checksum,
	// CR, LF, so length is at least 4 and the checksum sits at index 3 or
	// later. Anything shorter would slice payload bounds backwards.
	checksumIdx := length - 1
	if checksumIdx < 3 {
		return message{}, errMessageTooShort
	}
	if data[checksumIdx+1] != frameSuffix1 || data[checksumIdx+2] != frameSuffix2 {
		return message{}, errInvalidSuffix
	}

	var checksum byte
	for i := 0; i < checksumIdx; i++ {
		checksum += data[i]
	}
	if checksum != data[checksumIdx] {
		return message{}, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", errInvalidChecksum, data[checksumIdx], checksum)
	}

	return message{typ: data[2], payload: data[3:checksumIdx]}, nil
}

// colorFaces maps the cube's color index to the face it sits on in standard
// orientation (white up, green front).
var colorFaces = map[byte]cubescene.Face{
	0: cubescene.FaceB, // blue
	1: cubescene.FaceF, // green
	2: cubescene.FaceU, // white
	3: cubescene.FaceD, // yellow
	4: cubescene.FaceR, // red
	5: cubescene.FaceL, // orange
}

// decodeMoves decodes a rotation payload into moves. Rotation payloads hold
// byte pairs: [face_dir] [center_orientation]; even face_dir codes are
// clockwise, odd counter-clockwise, and face_dir/2 is the color index.
func decodeMoves(payload []byte) ([]cubescene.Move, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("smartcube: rotation payload must have even length, got %d", len(payload))
	}

	var moves []cubescene.Move
	for i := 0; i < len(payload); i += 2 {
		faceCode := payload[i]

		face, ok := colorFaces[faceCode/2]
		if !ok {
			return nil, fmt.Errorf("smartcube: unknown color index %d from face code 0x%02X", faceCode/2, faceCode)
		}

		dir := cubescene.CW
		if faceCode%2 != 0 {
			dir = cubescene.CCW
		}
		moves = append(moves, cubescene.Move{Face: face, Direction: dir})
	}

	return moves, nil
}
