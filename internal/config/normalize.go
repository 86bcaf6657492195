// internal/config/normalize.go
package config

// Observed pipeline defaults: 128x128 RGB in, 64x64 grayscale out with the
// last two raster bytes never transmitted.
const (
	defaultBaud         = 115200
	defaultReadTimeout  = 50    // ms
	defaultIdleTimeout  = 2000  // ms
	defaultMaxWait      = 30000 // ms
	defaultChunkSize    = 1024
	defaultChunkDelayUs = 500
	defaultInWidth      = 128
	defaultInHeight     = 128
	defaultOutWidth     = 64
	defaultOutHeight    = 64
	defaultImageBytes   = 4094
	defaultOutputDir    = "output"
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	h := &cfg.Harness

	if h.Port.Baud == 0 {
		h.Port.Baud = defaultBaud
	}
	if h.Port.ReadTimeoutMs == 0 {
		h.Port.ReadTimeoutMs = defaultReadTimeout
	}
	if h.Port.IdleTimeoutMs == 0 {
		h.Port.IdleTimeoutMs = defaultIdleTimeout
	}
	if h.Port.MaxWaitMs == 0 {
		h.Port.MaxWaitMs = defaultMaxWait
	}

	if h.Send.ChunkSize == 0 {
		h.Send.ChunkSize = defaultChunkSize
	}
	if h.Send.ChunkDelayUs == 0 {
		h.Send.ChunkDelayUs = defaultChunkDelayUs
	}

	if h.Input.Width == 0 {
		h.Input.Width = defaultInWidth
		h.Input.Height = defaultInHeight
	}

	if h.Output.Width == 0 {
		h.Output.Width = defaultOutWidth
		h.Output.Height = defaultOutHeight
		h.Output.Grayscale = true
		if h.Output.ImageBytes == 0 {
			h.Output.ImageBytes = defaultImageBytes
		}
	}
	if h.Output.ImageBytes == 0 {
		h.Output.ImageBytes = rasterSize(h.Output)
	}
	if h.Output.Dir == "" {
		h.Output.Dir = defaultOutputDir
	}
}
