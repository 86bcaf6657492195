// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration; zero values mean "default later".
func Validate(cfg *Config) error {
	h := cfg.Harness

	if h.Port.Address == "" {
		return fmt.Errorf("port.address is required")
	}
	if h.Port.Baud < 0 {
		return fmt.Errorf("port.baud must be >= 0, got %d", h.Port.Baud)
	}
	for name, v := range map[string]int{
		"port.read_timeout_ms": h.Port.ReadTimeoutMs,
		"port.idle_timeout_ms": h.Port.IdleTimeoutMs,
		"port.max_wait_ms":     h.Port.MaxWaitMs,
		"send.chunk_size":      h.Send.ChunkSize,
		"send.chunk_delay_us":  h.Send.ChunkDelayUs,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", name, v)
		}
	}

	if err := dims("input", h.Input.Width, h.Input.Height); err != nil {
		return err
	}
	if err := dims("output", h.Output.Width, h.Output.Height); err != nil {
		return err
	}

	if h.Output.ImageBytes < 0 {
		return fmt.Errorf("output.image_bytes must be >= 0, got %d", h.Output.ImageBytes)
	}
	if h.Output.ImageBytes > 0 && h.Output.Width > 0 && h.Output.Height > 0 {
		if limit := rasterSize(h.Output); h.Output.ImageBytes > limit {
			return fmt.Errorf(
				"output.image_bytes %d exceeds the %dx%d raster (%d bytes)",
				h.Output.ImageBytes, h.Output.Width, h.Output.Height, limit,
			)
		}
	}

	if _, err := telemetry.LayoutByName(h.Protocol.Layout); err != nil {
		return fmt.Errorf("protocol.layout: %w", err)
	}

	return nil
}

func dims(section string, w, hgt int) error {
	if w < 0 || hgt < 0 {
		return fmt.Errorf("%s dimensions must be >= 0, got %dx%d", section, w, hgt)
	}
	if (w == 0) != (hgt == 0) {
		return fmt.Errorf("%s dimensions must be set together, got %dx%d", section, w, hgt)
	}
	return nil
}

func rasterSize(o OutputConfig) int {
	if o.Grayscale {
		return o.Width * o.Height
	}
	return o.Width * o.Height * 3
}
