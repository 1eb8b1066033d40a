package smartcube

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/cubescene"
)

// Rotator is the part of the animation core the driver needs: the
// orchestrator's public rotate operation and its input-enabled flag.
// *cubescene.Cube satisfies it.
type Rotator interface {
	RotateFace(cubescene.Face, cubescene.Direction) error
	InputEnabled() bool
}

var (
	serviceUUID = bluetooth.NewUUID(mustParseUUID(serviceUUIDString))
	txCharUUID  = bluetooth.NewUUID(mustParseUUID(txCharUUIDString))
	rxCharUUID  = bluetooth.NewUUID(mustParseUUID(rxCharUUIDString))
)

func mustParseUUID(s string) [16]byte {
	var uuid [16]byte
	clean := strings.ReplaceAll(s, "-", "")
	for i := 0; i < 16; i++ {
		var b byte
		fmt.Sscanf(clean[i*2:i*2+2], "%02x", &b)
		uuid[i] = b
	}
	return uuid
}

// Driver forwards physical cube turns to the animation core. Turns arriving
// while the core is busy or shuffling are dropped, the same way any other
// input collaborator's requests are.
type Driver struct {
	target Rotator
	logger *log.Logger

	adapter *bluetooth.Adapter
	device  bluetooth.Device

	mu        sync.Mutex
	connected bool
	name      string
	onMove    func(cubescene.Move)
}

// Connect scans for the first GoCube-protocol device, connects, and starts
// forwarding its moves to the target.
func Connect(ctx context.Context, timeout time.Duration, target Rotator, logger *log.Logger) (*Driver, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	d := &Driver{
		target:  target,
		logger:  logger,
		adapter: adapter,
	}
	if err := d.connectFirst(ctx, timeout); err != nil {
		return nil, err
	}
	return d, nil
}

// OnMove sets a callback fired for every decoded physical move, whether or
// not the core accepted it.
func (d *Driver) OnMove(cb func(cubescene.Move)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onMove = cb
}

// DeviceName returns the name of the connected device.
func (d *Driver) DeviceName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.name
}

// Close disconnects from the device.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return nil
	}
	d.connected = false
	return d.device.Disconnect()
}

func (d *Driver) connectFirst(ctx context.Context, timeout time.Duration) error {
	var result bluetooth.ScanResult
	found := make(chan struct{})
	var foundOnce sync.Once

	go func() {
		d.adapter.Scan(func(adapter *bluetooth.Adapter, r bluetooth.ScanResult) {
			if strings.HasPrefix(strings.ToLower(r.LocalName()), "gocube") {
				result = r
				foundOnce.Do(func() { close(found) })
			}
		})
	}()

	select {
	case <-found:
		d.adapter.StopScan()
	case <-time.After(timeout):
		d.adapter.StopScan()
		return fmt.Errorf("smartcube: no device found within %s", timeout)
	case <-ctx.Done():
		d.adapter.StopScan()
		return ctx.Err()
	}

	device, err := d.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil || len(services) == 0 {
		device.Disconnect()
		if err == nil {
			err = fmt.Errorf("cube service not found")
		}
		return fmt.Errorf("failed to discover services: %w", err)
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		if ch.UUID() == txCharUUID {
			txChar = ch
		}
	}

	if err := txChar.EnableNotifications(d.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	d.mu.Lock()
	d.device = device
	d.connected = true
	d.name = result.LocalName()
	d.mu.Unlock()

	return nil
}

// handleNotification decodes a notification frame and forwards rotation
// moves. Contention errors from the core are expected and only logged.
func (d *Driver) handleNotification(buf []byte) {
	msg, err := parseFrame(buf)
	if err != nil {
		d.logf("dropping frame: %v", err)
		return
	}
	if msg.typ != msgTypeRotation {
		return
	}

	moves, err := decodeMoves(msg.payload)
	if err != nil {
		d.logf("dropping rotation payload: %v", err)
		return
	}

	d.mu.Lock()
	onMove := d.onMove
	d.mu.Unlock()

	for _, move := range moves {
		if onMove != nil {
			onMove(move)
		}
		if !d.target.InputEnabled() {
			d.logf("move %s ignored: input disabled", move)
			continue
		}
		if err := d.target.RotateFace(move.Face, move.Direction); err != nil {
			d.logf("move %s dropped: %v", move, err)
		}
	}
}

func (d *Driver) logf(format string, args ...any) {
	if d.logger != nil {
		d.logger.Printf("smartcube: "+format, args...)
	}
}
