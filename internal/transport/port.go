// internal/transport/port.go
package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/serial"
)

// Config is the explicit replacement for the port name, timeouts and pacing
// constants the original tooling hardcoded at module level.
type Config struct {
	Address  string
	BaudRate int

	// ReadTimeout bounds a single blocking read.
	ReadTimeout time.Duration

	// IdleTimeout ends a collect once no new bytes arrive for this long
	// (after at least one byte has been seen). MaxWait is the absolute cap
	// on a whole collect.
	IdleTimeout time.Duration
	MaxWait     time.Duration

	// ChunkSize and ChunkDelay pace outgoing writes. Small UART receivers
	// overrun without the pauses.
	ChunkSize  int
	ChunkDelay time.Duration
}

// device is the slice of serial.Port the transport needs. Narrowed here so
// tests can substitute a scripted fake.
type device interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// Port is a byte pipe over one serial link. It knows nothing about frames or
// pixels; it moves buffers.
type Port struct {
	cfg Config
	dev device
}

// Open opens the configured serial link, 8N1.
func Open(cfg Config) (*Port, error) {
	if cfg.Address == "" {
		return nil, errors.New("transport: port address required")
	}
	if cfg.BaudRate <= 0 {
		return nil, errors.New("transport: baud rate must be > 0")
	}
	if cfg.ChunkSize <= 0 {
		return nil, errors.New("transport: chunk size must be > 0")
	}

	dev, err := serial.Open(&serial.Config{
		Address:  cfg.Address,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: open %s: %w", cfg.Address, err)
	}
	return &Port{cfg: cfg, dev: dev}, nil
}

// Close closes the underlying link.
func (p *Port) Close() error {
	if p == nil || p.dev == nil {
		return nil
	}
	return p.dev.Close()
}

// Send writes payload in ChunkSize pieces with a pause between chunks.
func (p *Port) Send(ctx context.Context, payload []byte) error {
	for sent := 0; sent < len(payload); {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := sent + p.cfg.ChunkSize
		if end > len(payload) {
			end = len(payload)
		}
		n, err := p.dev.Write(payload[sent:end])
		if err != nil {
			return fmt.Errorf("transport: write at byte %d: %w", sent, err)
		}
		sent += n
		if p.cfg.ChunkDelay > 0 {
			time.Sleep(p.cfg.ChunkDelay)
		}
	}
	return nil
}
