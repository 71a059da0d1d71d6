package input

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// Pedal byte offsets in the Forza-style "data out" dash packets. The
// horizon variant inserts 12 extra bytes ahead of the dash section.
const (
	motorsportThrottleOffset = 303
	motorsportBrakeOffset    = 304
	horizonThrottleOffset    = 315
	horizonBrakeOffset       = 316
)

// staleAfter is how old the last datagram may be before the feed is
// reported unavailable.
const staleAfter = time.Second

// PedalOffset resolves the byte offset for a telemetry format and
// pedal selection. Format "custom" uses the provided offset verbatim.
func PedalOffset(format, pedal string, custom int) (int, error) {
	switch format {
	case "horizon":
		if pedal == "brake" {
			return horizonBrakeOffset, nil
		}
		return horizonThrottleOffset, nil
	case "motorsport":
		if pedal == "brake" {
			return motorsportBrakeOffset, nil
		}
		return motorsportThrottleOffset, nil
	case "custom":
		if custom < 0 {
			return 0, fmt.Errorf("--udp-offset must be >= 0")
		}
		return custom, nil
	default:
		return 0, fmt.Errorf("unknown telemetry format %q (horizon, motorsport, custom)", format)
	}
}

// UDP reads sim-racing telemetry datagrams and exposes one pedal byte,
// normalized from 0-255 to 0-100, as the position. The position is
// unavailable until the first datagram arrives and whenever the feed
// goes stale.
type UDP struct {
	conn   *net.UDPConn
	offset int

	mu         sync.Mutex
	position   float64
	receivedAt time.Time
}

// OpenUDP binds the listen address and starts the reader goroutine.
func OpenUDP(addr string, offset int) (*UDP, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve udp address: %w", err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	u := &UDP{conn: conn, offset: offset}
	go u.readLoop()
	return u, nil
}

// Close stops the reader and releases the socket.
func (u *UDP) Close() error {
	return u.conn.Close()
}

// Position returns the latest pedal value, or an error when no fresh
// telemetry has been received.
func (u *UDP) Position() (float64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.receivedAt.IsZero() {
		return 0, fmt.Errorf("no telemetry received yet")
	}
	if age := time.Since(u.receivedAt); age > staleAfter {
		return 0, fmt.Errorf("telemetry stale for %s", age.Round(time.Millisecond))
	}
	return u.position, nil
}

func (u *UDP) readLoop() {
	buf := make([]byte, 2048)
	for {
		n, _, err := u.conn.ReadFromUDP(buf)
		if err != nil {
			// Closed socket ends the loop; transient errors just skip
			// the datagram.
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		if n <= u.offset {
			continue
		}
		value := float64(buf[u.offset]) / 255.0 * 100.0
		u.mu.Lock()
		u.position = clampPosition(value)
		u.receivedAt = time.Now()
		u.mu.Unlock()
	}
}
