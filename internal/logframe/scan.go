// internal/logframe/scan.go
package logframe

import (
	"bytes"
	"encoding/binary"

	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
)

// Frame markers. These values define the protocol and MUST NOT be
// configurable.
var (
	header = []byte("LOG:")
	footer = []byte("END\n")
)

const (
	headerSize = 4
	countSize  = 2
	entrySize  = 4
	footerSize = 4
)

// Status classifies the outcome of a scan. Every outcome, including the
// failures, is a reportable value: garbled or cut-off transmissions are the
// expected common case on this link, not exceptional ones.
type Status int

const (
	// Complete: all declared entries read and the footer found.
	Complete Status = iota

	// NoHeader: no "LOG:" marker at or after the start offset. Either the
	// transmission carried no log block, or the offset was wrong.
	NoHeader

	// TruncatedHeader: marker found but the buffer ends before the entry
	// count can be read.
	TruncatedHeader

	// PartialEntries: the buffer ran out mid-payload. The entries that were
	// fully readable are still returned.
	PartialEntries

	// MissingFooter: every declared entry was read but "END\n" never
	// arrived. Distinct from PartialEntries: the cut happened after the
	// payload, not during it.
	MissingFooter
)

func (s Status) String() string {
	switch s {
	case Complete:
		return "complete"
	case NoHeader:
		return "no header"
	case TruncatedHeader:
		return "truncated header"
	case PartialEntries:
		return "partial entries"
	case MissingFooter:
		return "missing footer"
	default:
		return "unknown"
	}
}

// Result is one scanned frame plus its completeness diagnostics. It is built
// once per Scan call and never mutated afterwards.
type Result struct {
	Status Status
	Layout telemetry.Layout

	// HeaderOffset is the position of "LOG:" in the scanned buffer, -1 when
	// absent.
	HeaderOffset int

	// DeclaredCount is the entry count the device announced. len(Entries)
	// may be smaller when the buffer ran out.
	DeclaredCount uint16
	Entries       []telemetry.Entry

	// FooterOffset is the position of "END\n", -1 when absent. FooterGap is
	// the number of extraneous bytes between the end of the last entry and
	// the footer; the link is allowed to leak bytes there, so the gap is
	// tolerated but recorded.
	FooterOffset int
	FooterGap    int

	// Complete is true iff all declared entries were read and the footer was
	// found.
	Complete bool

	// ExpectedSize is the byte size a complete frame would occupy;
	// ActualSize is what the buffer held from the header on. Their mismatch
	// is the primary tool for spotting truncated transmissions.
	ExpectedSize int
	ActualSize   int
}

// End returns the offset just past the consumed frame, suitable as the start
// offset of a follow-up Scan over the same buffer. It is -1 when no header
// was found.
func (r Result) End() int {
	switch {
	case r.HeaderOffset < 0:
		return -1
	case r.FooterOffset >= 0:
		return r.FooterOffset + footerSize
	default:
		return r.HeaderOffset + headerSize + countSize + len(r.Entries)*entrySize
	}
}

// Scan locates and parses one log frame in buf at or after start. It only
// ever finds the first frame; callers wanting subsequent frames re-invoke
// with an advanced start (see End). Scan never fails on malformed input; a
// negative start is a programmer error and panics.
func Scan(buf []byte, start int, layout telemetry.Layout) Result {
	if start < 0 {
		panic("logframe: negative start offset")
	}

	res := Result{
		Layout:       layout,
		HeaderOffset: -1,
		FooterOffset: -1,
	}

	if start >= len(buf) {
		res.Status = NoHeader
		return res
	}

	rel := bytes.Index(buf[start:], header)
	if rel < 0 {
		res.Status = NoHeader
		return res
	}
	off := start + rel
	res.HeaderOffset = off
	res.ActualSize = len(buf) - off

	if off+headerSize+countSize > len(buf) {
		res.Status = TruncatedHeader
		return res
	}

	count := binary.BigEndian.Uint16(buf[off+headerSize:])
	res.DeclaredCount = count
	res.ExpectedSize = headerSize + countSize + int(count)*entrySize + footerSize

	// An entry straddling the end of the buffer is dropped, never decoded
	// from partial bytes.
	payload := off + headerSize + countSize
	for i := 0; i < int(count); i++ {
		pos := payload + i*entrySize
		if pos+entrySize > len(buf) {
			break
		}
		word := binary.BigEndian.Uint32(buf[pos : pos+entrySize])
		res.Entries = append(res.Entries, layout.Decode(word))
	}

	// The footer is searched anywhere after the header, not just immediately
	// after the payload.
	if fr := bytes.Index(buf[off:], footer); fr >= 0 {
		res.FooterOffset = off + fr
		if gap := res.FooterOffset - (payload + len(res.Entries)*entrySize); gap > 0 {
			res.FooterGap = gap
		}
	}

	switch {
	case len(res.Entries) < int(count):
		res.Status = PartialEntries
	case res.FooterOffset < 0:
		res.Status = MissingFooter
	default:
		res.Status = Complete
		res.Complete = true
	}
	return res
}

// ScanAll collects every frame in buf, front to back.
func ScanAll(buf []byte, layout telemetry.Layout) []Result {
	var out []Result
	at := 0
	for at < len(buf) {
		r := Scan(buf, at, layout)
		if r.Status == NoHeader {
			break
		}
		out = append(out, r)
		next := r.End()
		if r.Status == TruncatedHeader || next <= at {
			break
		}
		at = next
	}
	return out
}
