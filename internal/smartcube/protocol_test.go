package smartcube

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/cubescene"
)

// buildFrame assembles a valid notification frame around a payload.
func buildFrame(msgType byte, payload []byte) []byte {
	length := byte(1 + len(payload) + 1 + 2) // type + payload + checksum + suffix
	data := []byte{framePrefix, length, msgType}
	data = append(data, payload...)

	var checksum byte
	for _, b := range data {
		checksum += b
	}
	data = append(data, checksum, frameSuffix1, frameSuffix2)
	return data
}

func TestParseFrame_RoundTrip(t *testing.T) {
	payload := []byte{0x08, 0x00} // red CW
	frame := buildFrame(msgTypeRotation, payload)

	msg, err := parseFrame(frame)
	if err != nil {
		t.Fatalf("parseFrame: %v", err)
	}
	if msg.typ != msgTypeRotation {
		t.Errorf("type = 0x%02X, want 0x%02X", msg.typ, msgTypeRotation)
	}
	if len(msg.payload) != 2 || msg.payload[0] != 0x08 {
		t.Errorf("payload = %v", msg.payload)
	}
}

func TestParseFrame_BadChecksum(t *testing.T) {
	frame := buildFrame(msgTypeRotation, []byte{0x08, 0x00})
	frame[len(frame)-3]++ // corrupt the checksum byte

	if _, err := parseFrame(frame); !errors.Is(err, errInvalidChecksum) {
		t.Errorf("parseFrame = %v, want checksum error", err)
	}
}

func TestParseFrame_BadPrefix(t *testing.T) {
	frame := buildFrame(msgTypeRotation, []byte{0x08, 0x00})
	frame[0] = 0x00

	if _, err := parseFrame(frame); !errors.Is(err, errInvalidPrefix) {
		t.Errorf("parseFrame = %v, want prefix error", err)
	}
}

func TestParseFrame_TooShort(t *testing.T) {
	if _, err := parseFrame([]byte{framePrefix, 0x01}); !errors.Is(err, errMessageTooShort) {
		t.Errorf("parseFrame = %v, want too-short error", err)
	}
}

func TestParseFrame_LengthBelowEmptyPayload(t *testing.T) {
	// A length of 3 leaves no room for a payload between the type and the
	// checksum; this frame even checksums correctly (0x2A+0x03 = 0x2D) and
	// must be rejected, not sliced backwards.
	frame := []byte{framePrefix, 0x03, 0x2D, frameSuffix1, frameSuffix2}

	if _, err := parseFrame(frame); !errors.Is(err, errMessageTooShort) {
		t.Errorf("parseFrame = %v, want too-short error", err)
	}
}

func TestParseFrame_EmptyPayload(t *testing.T) {
	frame := buildFrame(msgTypeRotation, nil)

	msg, err := parseFrame(frame)
	if err != nil {
		t.Fatalf("parseFrame: %v", err)
	}
	if len(msg.payload) != 0 {
		t.Errorf("payload = %v, want empty", msg.payload)
	}
}

func TestDecodeMoves_FaceMapping(t *testing.T) {
	cases := []struct {
		code byte
		want cubescene.Move
	}{
		{0x00, cubescene.Move{Face: cubescene.FaceB, Direction: cubescene.CW}},  // blue CW
		{0x01, cubescene.Move{Face: cubescene.FaceB, Direction: cubescene.CCW}}, // blue CCW
		{0x02, cubescene.Move{Face: cubescene.FaceF, Direction: cubescene.CW}},  // green CW
		{0x04, cubescene.Move{Face: cubescene.FaceU, Direction: cubescene.CW}},  // white CW
		{0x07, cubescene.Move{Face: cubescene.FaceD, Direction: cubescene.CCW}}, // yellow CCW
		{0x08, cubescene.Move{Face: cubescene.FaceR, Direction: cubescene.CW}},  // red CW
		{0x0B, cubescene.Move{Face: cubescene.FaceL, Direction: cubescene.CCW}}, // orange CCW
	}

	for _, tc := range cases {
		moves, err := decodeMoves([]byte{tc.code, 0x00})
		if err != nil {
			t.Fatalf("decodeMoves(0x%02X): %v", tc.code, err)
		}
		if len(moves) != 1 || moves[0] != tc.want {
			t.Errorf("decodeMoves(0x%02X) = %v, want %v", tc.code, moves, tc.want)
		}
	}
}

func TestDecodeMoves_MultiplePairs(t *testing.T) {
	moves, err := decodeMoves([]byte{0x08, 0x00, 0x03, 0x01})
	if err != nil {
		t.Fatalf("decodeMoves: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("got %d moves, want 2", len(moves))
	}
	if moves[0].Notation() != "R" || moves[1].Notation() != "F'" {
		t.Errorf("moves = %s %s, want R F'", moves[0], moves[1])
	}
}

func TestDecodeMoves_OddPayload(t *testing.T) {
	if _, err := decodeMoves([]byte{0x08}); err == nil {
		t.Error("odd payload should fail")
	}
}

func TestDecodeMoves_UnknownColor(t *testing.T) {
	if _, err := decodeMoves([]byte{0x0C, 0x00}); err == nil {
		t.Error("face code beyond 0x0B should fail")
	}
}
