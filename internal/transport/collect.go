// internal/transport/collect.go
package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/serial"
)

const readChunk = 4096

// Collect accumulates reply bytes until one of:
//   - expected bytes have arrived (when expected > 0),
//   - no new bytes for IdleTimeout after at least one byte,
//   - MaxWait elapses,
//   - ctx is cancelled.
//
// Whatever arrived is returned in every case: a short buffer is a usable
// partial result here, matching the parser's policy downstream. progress, if
// non-nil, is invoked with the running total after each read that delivered
// bytes.
func (p *Port) Collect(ctx context.Context, expected int, progress func(total int)) ([]byte, error) {
	var buf []byte
	chunk := make([]byte, readChunk)

	start := time.Now()
	last := start

	for {
		if err := ctx.Err(); err != nil {
			return buf, err
		}

		n, err := p.dev.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			last = time.Now()
			if progress != nil {
				progress(len(buf))
			}
			if expected > 0 && len(buf) >= expected {
				return buf, nil
			}
		} else if err != nil && !errors.Is(err, serial.ErrTimeout) {
			return buf, fmt.Errorf("transport: read: %w", err)
		}

		now := time.Now()
		if len(buf) > 0 && p.cfg.IdleTimeout > 0 && now.Sub(last) >= p.cfg.IdleTimeout {
			return buf, nil
		}
		if p.cfg.MaxWait > 0 && now.Sub(start) >= p.cfg.MaxWait {
			return buf, nil
		}
	}
}
