// internal/analysis/load.go
package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
)

// Load reads a telemetry CSV (the report package's schema) back into
// entries. Columns are matched by header name, so column order and extra
// columns do not matter.
func Load(path string) ([]telemetry.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("analysis: open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("analysis: %s: %w", path, err)
	}
	return entries, nil
}

// Read parses telemetry CSV rows from r.
func Read(r io.Reader) ([]telemetry.Entry, error) {
	cr := csv.NewReader(r)

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(head))
	for i, name := range head {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"fifo1_load", "fifo2_load", "fifo3_load", "core0_div", "core1_div", "core2_div", "core3_div"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var entries []telemetry.Entry
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var e telemetry.Entry
		fields := []struct {
			name string
			dst  *uint8
		}{
			{"fifo1_load", &e.FIFO1Load},
			{"fifo2_load", &e.FIFO2Load},
			{"fifo3_load", &e.FIFO3Load},
			{"core0_div", &e.Core0Divider},
			{"core1_div", &e.Core1Divider},
			{"core2_div", &e.Core2Divider},
			{"core3_div", &e.Core3Divider},
		}
		for _, f := range fields {
			v, err := strconv.ParseUint(row[col[f.name]], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, f.name, err)
			}
			*f.dst = uint8(v)
		}

		if i, ok := col["rl_enabled"]; ok && i < len(row) {
			e.RLEnabled = row[i] == "1"
		}
		if i, ok := col["core_busy_bits"]; ok && i < len(row) {
			if v, err := strconv.ParseUint(row[i], 2, 8); err == nil {
				e.CoreBusy = uint8(v)
			}
		}
		if i, ok := col["raw_hex"]; ok && i < len(row) {
			if v, err := strconv.ParseUint(strings.TrimPrefix(row[i], "0x"), 16, 32); err == nil {
				e.Raw = uint32(v)
			}
		}

		entries = append(entries, e)
	}
	return entries, nil
}
