// internal/report/csv.go
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
)

// TelemetryColumns is the CSV schema shared with the analyzer.
var TelemetryColumns = []string{
	"entry_num", "raw_hex", "core_busy_bits",
	"fifo1_load", "fifo2_load", "fifo3_load",
	"core0_div", "core1_div", "core2_div", "core3_div",
	"rl_enabled",
}

// WriteTelemetryCSV renders decoded entries as one CSV row each: numeric,
// binary and hex representations side by side.
func WriteTelemetryCSV(w io.Writer, entries []telemetry.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TelemetryColumns); err != nil {
		return err
	}

	for i, e := range entries {
		rl := "0"
		if e.RLEnabled {
			rl = "1"
		}
		rec := []string{
			strconv.Itoa(i),
			fmt.Sprintf("0x%08X", e.Raw),
			fmt.Sprintf("%04b", e.CoreBusy),
			strconv.Itoa(int(e.FIFO1Load)),
			strconv.Itoa(int(e.FIFO2Load)),
			strconv.Itoa(int(e.FIFO3Load)),
			strconv.Itoa(int(e.Core0Divider)),
			strconv.Itoa(int(e.Core1Divider)),
			strconv.Itoa(int(e.Core2Divider)),
			strconv.Itoa(int(e.Core3Divider)),
			rl,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Progress is one receive-log sample.
type Progress struct {
	At    time.Time
	Total int
}

// WriteProgressCSV renders the byte-arrival log captured during a collect.
func WriteProgressCSV(w io.Writer, samples []Progress) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "bytes_received"}); err != nil {
		return err
	}
	for _, s := range samples {
		rec := []string{
			s.At.UTC().Format(time.RFC3339Nano),
			strconv.Itoa(s.Total),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
