// internal/report/report_test.go
package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Krisha-cmd/RC-RL/internal/logframe"
	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
)

func TestWriteTelemetryCSV(t *testing.T) {
	entries := []telemetry.Entry{
		telemetry.LayoutFIFO1First.Decode(telemetry.LayoutFIFO1First.Encode(telemetry.Entry{
			CoreBusy: 0xA, FIFO1Load: 1, FIFO2Load: 2, FIFO3Load: 3,
			Core0Divider: 4, Core3Divider: 7, RLEnabled: true,
		})),
	}

	var buf bytes.Buffer
	if err := WriteTelemetryCSV(&buf, entries); err != nil {
		t.Fatalf("WriteTelemetryCSV() err = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header + 1 row", len(lines))
	}
	if lines[0] != strings.Join(TelemetryColumns, ",") {
		t.Errorf("header = %q", lines[0])
	}
	row := strings.Split(lines[1], ",")
	if row[0] != "0" || row[2] != "1010" || row[3] != "1" || row[10] != "1" {
		t.Errorf("row = %v", row)
	}
	if !strings.HasPrefix(row[1], "0x") || len(row[1]) != 10 {
		t.Errorf("raw_hex = %q", row[1])
	}
}

func TestWriteProgressCSV(t *testing.T) {
	at := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := WriteProgressCSV(&buf, []Progress{{At: at, Total: 4094}})
	if err != nil {
		t.Fatalf("WriteProgressCSV() err = %v", err)
	}
	if !strings.Contains(buf.String(), "2025-11-03T12:00:00Z,4094") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSummaryComplete(t *testing.T) {
	buf := logframe.Marshal([]telemetry.Entry{{FIFO1Load: 3}}, telemetry.DefaultLayout)
	res := logframe.Scan(buf, 0, telemetry.DefaultLayout)

	s := Summary(res)
	for _, want := range []string{"complete", "1 of 1 declared", "footer at byte", "fifo:[3,0,0]"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestSummaryDistinguishesFailures(t *testing.T) {
	noHeader := logframe.Scan([]byte("nothing"), 0, telemetry.DefaultLayout)
	if s := Summary(noHeader); !strings.Contains(s, "no log block") {
		t.Errorf("no-header summary: %s", s)
	}

	cut := logframe.Marshal([]telemetry.Entry{{}}, telemetry.DefaultLayout)
	cut = cut[:len(cut)-4]
	res := logframe.Scan(cut, 0, telemetry.DefaultLayout)
	if s := Summary(res); !strings.Contains(s, "cut off after the payload") {
		t.Errorf("missing-footer summary: %s", s)
	}
}

func TestFormatEntrySentinel(t *testing.T) {
	e := telemetry.DefaultLayout.Decode(telemetry.Sentinel)
	if s := FormatEntry(0, e); !strings.Contains(s, "default test entry") {
		t.Errorf("FormatEntry(sentinel) = %q", s)
	}
}
