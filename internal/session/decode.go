// internal/session/decode.go
package session

import (
	"fmt"
	"os"

	"github.com/Krisha-cmd/RC-RL/internal/logframe"
	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
)

// DecodeCapture re-parses a previously captured byte dump offline, finding
// every log frame it contains. A dump with no frame at all yields a single
// NoHeader result so callers still get the diagnostic.
func DecodeCapture(path string, layout telemetry.Layout) ([]logframe.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session: read capture %s: %w", path, err)
	}

	results := logframe.ScanAll(data, layout)
	if len(results) == 0 {
		results = []logframe.Result{logframe.Scan(data, 0, layout)}
	}
	return results, nil
}
