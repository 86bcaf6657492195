// internal/logframe/scan_test.go
package logframe

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
)

var testWords = []uint32{0x12345678, 0xDEADBEEF, 0xA29A2B39}

func frame(words ...uint32) []byte {
	return MarshalWords(words)
}

func TestScanNoHeader(t *testing.T) {
	for _, buf := range [][]byte{
		nil,
		[]byte("no frame in here at all"),
		[]byte("LOG"), // marker cut short is not a marker
	} {
		res := Scan(buf, 0, telemetry.DefaultLayout)
		if res.Status != NoHeader {
			t.Errorf("Scan(%q) status = %v, want no header", buf, res.Status)
		}
		if len(res.Entries) != 0 || res.HeaderOffset != -1 {
			t.Errorf("Scan(%q) consumed entries or set offset", buf)
		}
	}
}

func TestScanTruncatedHeader(t *testing.T) {
	buf := append([]byte("noise"), []byte("LOG:\x00")...) // 1 of 2 count bytes

	res := Scan(buf, 0, telemetry.DefaultLayout)
	if res.Status != TruncatedHeader {
		t.Fatalf("status = %v, want truncated header", res.Status)
	}
	if res.HeaderOffset != 5 {
		t.Errorf("HeaderOffset = %d, want 5", res.HeaderOffset)
	}
}

func TestScanExactFrame(t *testing.T) {
	buf := frame(testWords...)

	res := Scan(buf, 0, telemetry.DefaultLayout)
	if !res.Complete || res.Status != Complete {
		t.Fatalf("status = %v complete = %v, want complete", res.Status, res.Complete)
	}
	if res.DeclaredCount != 3 || len(res.Entries) != 3 {
		t.Fatalf("declared = %d entries = %d, want 3/3", res.DeclaredCount, len(res.Entries))
	}
	for i, w := range testWords {
		want := telemetry.DefaultLayout.Decode(w)
		if res.Entries[i] != want {
			t.Errorf("entry %d = %+v, want %+v", i, res.Entries[i], want)
		}
	}
	if res.ExpectedSize != len(buf) || res.ActualSize != len(buf) {
		t.Errorf("sizes = %d/%d, want %d/%d", res.ExpectedSize, res.ActualSize, len(buf), len(buf))
	}
	if res.FooterOffset != len(buf)-4 || res.FooterGap != 0 {
		t.Errorf("footer offset/gap = %d/%d", res.FooterOffset, res.FooterGap)
	}
	if res.End() != len(buf) {
		t.Errorf("End() = %d, want %d", res.End(), len(buf))
	}
}

func TestScanZeroCount(t *testing.T) {
	res := Scan(frame(), 0, telemetry.DefaultLayout)

	if !res.Complete {
		t.Fatalf("status = %v, want complete", res.Status)
	}
	if res.DeclaredCount != 0 || len(res.Entries) != 0 {
		t.Errorf("declared = %d entries = %d, want 0/0", res.DeclaredCount, len(res.Entries))
	}
}

func TestScanTruncatedMidEntry(t *testing.T) {
	full := frame(testWords...)
	buf := full[:6+2*4+2] // 2 bytes into the 3rd entry, no footer

	res := Scan(buf, 0, telemetry.DefaultLayout)
	if res.Status != PartialEntries || res.Complete {
		t.Fatalf("status = %v, want partial entries", res.Status)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("entries = %d, want 2 (straddling entry dropped)", len(res.Entries))
	}
	if res.DeclaredCount != 3 {
		t.Errorf("DeclaredCount = %d, want 3", res.DeclaredCount)
	}
	if res.ExpectedSize != len(full) || res.ActualSize != len(buf) {
		t.Errorf("sizes = %d/%d, want %d/%d", res.ExpectedSize, res.ActualSize, len(full), len(buf))
	}
}

func TestScanMissingFooter(t *testing.T) {
	buf := frame(testWords...)
	buf = buf[:len(buf)-4]

	res := Scan(buf, 0, telemetry.DefaultLayout)
	if res.Status != MissingFooter || res.Complete {
		t.Fatalf("status = %v, want missing footer", res.Status)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("entries = %d, want all 3 recovered", len(res.Entries))
	}
	if res.FooterOffset != -1 {
		t.Errorf("FooterOffset = %d, want -1", res.FooterOffset)
	}
	if res.End() != len(buf) {
		t.Errorf("End() = %d, want %d", res.End(), len(buf))
	}
}

func TestScanLeadingNoise(t *testing.T) {
	noise := []byte{0x00, 0xFF, 'L', 'O', 'G', 0x42, 0x99}
	buf := append(noise, frame(testWords...)...)

	res := Scan(buf, 0, telemetry.DefaultLayout)
	if !res.Complete {
		t.Fatalf("status = %v, want complete", res.Status)
	}
	if res.HeaderOffset != len(noise) {
		t.Errorf("HeaderOffset = %d, want %d", res.HeaderOffset, len(noise))
	}
	if len(res.Entries) != 3 {
		t.Errorf("entries = %d, want 3", len(res.Entries))
	}
}

func TestScanSecondFrame(t *testing.T) {
	first := frame(testWords[0])
	second := frame(testWords[1], testWords[2])
	buf := append(append([]byte("x"), first...), second...)

	res := Scan(buf, 0, telemetry.DefaultLayout)
	if !res.Complete || len(res.Entries) != 1 {
		t.Fatalf("first frame: status = %v entries = %d", res.Status, len(res.Entries))
	}

	res2 := Scan(buf, res.End(), telemetry.DefaultLayout)
	if !res2.Complete || len(res2.Entries) != 2 {
		t.Fatalf("second frame: status = %v entries = %d", res2.Status, len(res2.Entries))
	}
	if res2.HeaderOffset != 1+len(first) {
		t.Errorf("second HeaderOffset = %d, want %d", res2.HeaderOffset, 1+len(first))
	}

	res3 := Scan(buf, res2.End(), telemetry.DefaultLayout)
	if res3.Status != NoHeader {
		t.Errorf("third scan status = %v, want no header", res3.Status)
	}
}

func TestScanFooterGap(t *testing.T) {
	// The device may leak stray bytes between payload and footer; the frame
	// still completes but the gap is recorded.
	buf := frame(testWords[0])
	gap := []byte{0xAA, 0xBB, 0xCC}
	buf = append(buf[:len(buf)-4], append(gap, footer...)...)

	res := Scan(buf, 0, telemetry.DefaultLayout)
	if !res.Complete {
		t.Fatalf("status = %v, want complete", res.Status)
	}
	if res.FooterGap != len(gap) {
		t.Errorf("FooterGap = %d, want %d", res.FooterGap, len(gap))
	}
}

func TestScanSentinelEntry(t *testing.T) {
	res := Scan(frame(telemetry.Sentinel), 0, telemetry.DefaultLayout)

	if !res.Complete || len(res.Entries) != 1 {
		t.Fatalf("status = %v entries = %d", res.Status, len(res.Entries))
	}
	if !res.Entries[0].IsSentinel() {
		t.Error("sentinel word did not decode as sentinel")
	}
}

func TestScanNegativeStartPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Scan with negative start did not panic")
		}
	}()
	Scan(frame(), -1, telemetry.DefaultLayout)
}

func TestScanAll(t *testing.T) {
	buf := append(frame(testWords[0]), []byte("gap")...)
	buf = append(buf, frame(testWords[1], testWords[2])...)
	half := frame(testWords[0])
	buf = append(buf, half[:7]...) // trailing truncated frame

	results := ScanAll(buf, telemetry.DefaultLayout)
	if len(results) != 3 {
		t.Fatalf("ScanAll found %d frames, want 3", len(results))
	}
	if !results[0].Complete || !results[1].Complete {
		t.Errorf("statuses = %v, %v, want complete, complete", results[0].Status, results[1].Status)
	}
	if results[2].Status != PartialEntries {
		t.Errorf("trailing status = %v, want partial entries", results[2].Status)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	entries := []telemetry.Entry{
		{CoreBusy: 0x9, FIFO1Load: 2, FIFO3Load: 7, Core2Divider: 5, RLEnabled: true},
		{FIFO2Load: 1, Core0Divider: 15},
	}

	for _, layout := range []telemetry.Layout{telemetry.LayoutFIFO1First, telemetry.LayoutFIFO3First} {
		buf := Marshal(entries, layout)

		var count uint16
		if count = binary.BigEndian.Uint16(buf[4:6]); count != 2 {
			t.Fatalf("%s: count on wire = %d, want 2", layout.Name, count)
		}
		if !bytes.HasPrefix(buf, []byte("LOG:")) || !bytes.HasSuffix(buf, []byte("END\n")) {
			t.Fatalf("%s: markers missing: %q", layout.Name, buf)
		}

		res := Scan(buf, 0, layout)
		if !res.Complete || len(res.Entries) != len(entries) {
			t.Fatalf("%s: reparse status = %v entries = %d", layout.Name, res.Status, len(res.Entries))
		}
		for i := range entries {
			want := layout.Decode(layout.Encode(entries[i]))
			if res.Entries[i] != want {
				t.Errorf("%s: entry %d = %+v, want %+v", layout.Name, i, res.Entries[i], want)
			}
		}
	}
}
