// internal/config/config.go
package config

type Config struct {
	Harness HarnessConfig `yaml:"harness"`
}

type HarnessConfig struct {
	Port     PortConfig     `yaml:"port"`
	Input    ImageConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Protocol ProtocolConfig `yaml:"protocol"`
	Send     SendConfig     `yaml:"send"`
}

// ---- SERIAL PORT ----

type PortConfig struct {
	Address       string `yaml:"address"`
	Baud          int    `yaml:"baud"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
	IdleTimeoutMs int    `yaml:"idle_timeout_ms"`
	MaxWaitMs     int    `yaml:"max_wait_ms"`
}

// ---- PIPELINE INPUT ----

type ImageConfig struct {
	Path      string `yaml:"path"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Grayscale bool   `yaml:"grayscale"`
}

// ---- PIPELINE OUTPUT ----

type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Grayscale bool   `yaml:"grayscale"`

	// ImageBytes is the count of image bytes the device actually returns.
	// It may trail the full raster (the pipeline drops the last 2 bytes of
	// a 64x64 run); the host pads on reconstruction.
	ImageBytes int `yaml:"image_bytes"`
}

// ---- PROTOCOL ----

type ProtocolConfig struct {
	// Layout names the telemetry bit layout: "fifo1-first" or "fifo3-first".
	Layout string `yaml:"layout"`

	// SendHeader prefixes the outgoing payload with the IMG preamble.
	SendHeader bool `yaml:"send_header"`
}

// ---- SEND PACING ----

type SendConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkDelayUs int `yaml:"chunk_delay_us"`
}
