// Package oled pushes a compact system summary to a front-panel OLED over
// USB serial. Purely optional; the HTTP dashboard does not depend on it.
package oled

import (
	"context"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

// StatusDisplay owns the serial port and resends only when the payload
// changes. The port is opened lazily and dropped on write failure so an
// unplugged display recovers on the next tick.
type StatusDisplay struct {
	mu sync.Mutex

	portName string
	baud     int

	port serial.Port
	last string // last committed payload (normalized)
}

// NewStatusDisplay creates the bridge. portName can be a udev alias like
// "/dev/ttyHOMELAB_OLED".
func NewStatusDisplay(portName string, baud int) *StatusDisplay {
	if baud <= 0 {
		baud = 115200
	}
	return &StatusDisplay{
		portName: portName,
		baud:     baud,
	}
}

// Start polls summary() on an interval and writes changed payloads to the
// display. Blocks until ctx is done.
func (d *StatusDisplay) Start(ctx context.Context, summary func() string, interval time.Duration) {
	if interval <= 0 {
		interval = 2 * time.Second
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			d.Close()
			return
		case <-t.C:
			payload := summary()
			if strings.TrimSpace(payload) == "" {
				continue
			}
			if !d.shouldSend(payload) {
				continue
			}
			if err := d.send(payload); err != nil {
				// Important: without this we don't see permission/open failures.
				log.Printf("oled: send failed (%s): %v", d.portName, err)
				d.dropPort()
			}
		}
	}
}

func (d *StatusDisplay) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.port != nil {
		_ = d.port.Close()
		d.port = nil
	}
}

func (d *StatusDisplay) shouldSend(payload string) bool {
	n := normalizePayload(payload)
	d.mu.Lock()
	defer d.mu.Unlock()
	if n == d.last {
		return false
	}
	d.last = n
	return true
}

func (d *StatusDisplay) send(payload string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.port == nil {
		mode := &serial.Mode{BaudRate: d.baud}
		p, err := serial.Open(d.portName, mode)
		if err != nil {
			return err
		}
		// Make line settings deterministic even if udev didn't run.
		_ = exec.Command("/usr/bin/stty", "-F", d.portName, "115200", "-echo", "-icanon", "-hupcl").Run()
		d.port = p
	}

	if !strings.HasSuffix(payload, "\n\n") {
		if strings.HasSuffix(payload, "\n") {
			payload += "\n"
		} else {
			payload += "\n\n"
		}
	}

	_, err := d.port.Write([]byte(payload))
	return err
}

func (d *StatusDisplay) dropPort() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.port != nil {
		_ = d.port.Close()
		d.port = nil
	}
}

func normalizePayload(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}
