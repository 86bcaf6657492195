// internal/session/session.go
package session

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Krisha-cmd/RC-RL/internal/config"
	"github.com/Krisha-cmd/RC-RL/internal/imaging"
	"github.com/Krisha-cmd/RC-RL/internal/logframe"
	"github.com/Krisha-cmd/RC-RL/internal/report"
	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
)

// Pipe is the byte-pipe contract the session drives. transport.Port
// implements it; tests substitute a scripted fake.
type Pipe interface {
	Send(ctx context.Context, payload []byte) error
	Collect(ctx context.Context, expected int, progress func(total int)) ([]byte, error)
}

// Session runs one send -> receive -> decode round against the device.
type Session struct {
	cfg    config.HarnessConfig
	pipe   Pipe
	layout telemetry.Layout
	log    zerolog.Logger

	now func() time.Time
}

// Artifacts lists what a run produced.
type Artifacts struct {
	RawPath       string
	ImagePath     string
	ProgressPath  string
	TelemetryPath string

	Received    int
	PaddedBytes int
	Frame       logframe.Result
}

// New builds a session. The pipe is injected already opened so that its
// lifecycle (and its failure modes) stay with the caller.
func New(cfg config.HarnessConfig, pipe Pipe, layout telemetry.Layout, log zerolog.Logger) *Session {
	return &Session{
		cfg:    cfg,
		pipe:   pipe,
		layout: layout,
		log:    log,
		now:    time.Now,
	}
}

// Run executes one full round: build the input payload, push it while
// collecting the response, split the response into image and log bytes, and
// write all artifacts. A response with a truncated image or an incomplete
// log frame is still written out; only transport-level failures abort.
func (s *Session) Run(ctx context.Context) (*Artifacts, error) {
	in := s.cfg.Input
	out := s.cfg.Output

	payload, err := imaging.LoadPayload(in.Path, in.Width, in.Height, in.Grayscale)
	if err != nil {
		return nil, err
	}
	if s.cfg.Protocol.SendHeader {
		payload = append(imagePreamble(in.Width, in.Height, len(payload)), payload...)
	}
	s.log.Info().
		Int("bytes", len(payload)).
		Str("input", in.Path).
		Msgf("sending %dx%d payload", in.Width, in.Height)

	// The device starts replying while the payload is still going out, so
	// send and collect overlap.
	sendErr := make(chan error, 1)
	go func() {
		sendErr <- s.pipe.Send(ctx, payload)
	}()

	var samples []report.Progress
	data, err := s.pipe.Collect(ctx, 0, func(total int) {
		samples = append(samples, report.Progress{At: s.now(), Total: total})
		s.log.Debug().Int("total", total).Msg("receiving")
	})
	if err != nil {
		return nil, err
	}
	if err := <-sendErr; err != nil {
		return nil, err
	}
	s.log.Info().Int("bytes", len(data)).Msg("reception finished")

	art := &Artifacts{Received: len(data)}

	base := strings.TrimSuffix(filepath.Base(in.Path), filepath.Ext(in.Path))
	stamp := s.now().UTC().Format("20060102T150405Z")
	name := func(suffix, ext string) string {
		return filepath.Join(out.Dir, fmt.Sprintf("%s_%s_%s.%s", base, suffix, stamp, ext))
	}

	if err := os.MkdirAll(out.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("session: output dir: %w", err)
	}

	art.RawPath = name("received", "bin")
	if err := os.WriteFile(art.RawPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("session: raw dump: %w", err)
	}

	art.ProgressPath = name("recvlog", "csv")
	if err := writeFile(art.ProgressPath, func(f *os.File) error {
		return report.WriteProgressCSV(f, samples)
	}); err != nil {
		return nil, err
	}

	// Image first, telemetry after: the device replies in that order.
	boundary := out.ImageBytes
	if boundary > len(data) {
		boundary = len(data)
	}

	art.ImagePath = name("received", "png")
	if out.Grayscale {
		art.PaddedBytes, err = imaging.SaveGray(data[:boundary], out.Width, out.Height, art.ImagePath)
	} else {
		art.PaddedBytes, err = imaging.SaveRGB(data[:boundary], out.Width, out.Height, art.ImagePath)
	}
	if err != nil {
		return nil, err
	}
	if art.PaddedBytes > 0 {
		s.log.Warn().
			Int("received", boundary).
			Int("padded", art.PaddedBytes).
			Msg("image short, padded with zeros")
	}

	art.Frame = logframe.Scan(data, boundary, s.layout)
	s.log.Info().
		Stringer("status", art.Frame.Status).
		Int("entries", len(art.Frame.Entries)).
		Msg("log frame scanned")

	if len(art.Frame.Entries) > 0 {
		art.TelemetryPath = name("perflog", "csv")
		if err := writeFile(art.TelemetryPath, func(f *os.File) error {
			return report.WriteTelemetryCSV(f, art.Frame.Entries)
		}); err != nil {
			return nil, err
		}
	}

	return art, nil
}

// imagePreamble is the optional IMG header some firmware builds expect
// before the pixel stream: "IMG" + width(2) + height(2) + size(4), all
// big-endian.
func imagePreamble(width, height, size int) []byte {
	buf := make([]byte, 0, 11)
	buf = append(buf, 'I', 'M', 'G')
	buf = binary.BigEndian.AppendUint16(buf, uint16(width))
	buf = binary.BigEndian.AppendUint16(buf, uint16(height))
	buf = binary.BigEndian.AppendUint32(buf, uint32(size))
	return buf
}

func writeFile(path string, fill func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("session: create %s: %w", path, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("session: write %s: %w", path, err)
	}
	return f.Close()
}
