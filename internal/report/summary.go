// internal/report/summary.go
package report

import (
	"fmt"
	"strings"

	"github.com/Krisha-cmd/RC-RL/internal/logframe"
	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
)

const sampleEntries = 5

// Summary renders a scan result for an operator. The wording distinguishes
// "device never sent logs" from "transmission was cut short", which is the
// whole point of the diagnostics.
func Summary(res logframe.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "log frame: %s\n", res.Status)

	switch res.Status {
	case logframe.NoHeader:
		b.WriteString("  no LOG: marker found - the device sent no log block,\n")
		b.WriteString("  or the search offset was past it\n")
		return b.String()
	case logframe.TruncatedHeader:
		fmt.Fprintf(&b, "  header at byte %d but the buffer ends before the entry count\n", res.HeaderOffset)
		return b.String()
	}

	fmt.Fprintf(&b, "  header at byte %d, layout %s\n", res.HeaderOffset, res.Layout.Name)
	fmt.Fprintf(&b, "  entries: %d of %d declared\n", len(res.Entries), res.DeclaredCount)
	fmt.Fprintf(&b, "  size: %d bytes available of %d expected\n", res.ActualSize, res.ExpectedSize)

	switch {
	case res.FooterOffset < 0:
		b.WriteString("  footer: absent - transmission cut off after the payload\n")
	case res.FooterGap > 0:
		fmt.Fprintf(&b, "  footer at byte %d (%d stray bytes before it)\n", res.FooterOffset, res.FooterGap)
	default:
		fmt.Fprintf(&b, "  footer at byte %d\n", res.FooterOffset)
	}

	for i, e := range res.Entries {
		if i == sampleEntries {
			fmt.Fprintf(&b, "  ... (%d more entries)\n", len(res.Entries)-sampleEntries)
			break
		}
		b.WriteString("  " + FormatEntry(i, e) + "\n")
	}
	return b.String()
}

// FormatEntry renders one entry the way the bring-up logs always have.
// Sentinel words are called out instead of shown as nonsense field values.
func FormatEntry(i int, e telemetry.Entry) string {
	if e.IsSentinel() {
		return fmt.Sprintf("[%3d] 0xDEADBEEF - default test entry (slot not populated)", i)
	}
	rl := ""
	if e.RLEnabled {
		rl = " rl:on"
	}
	return fmt.Sprintf("[%3d] cores:%04b fifo:[%d,%d,%d] div:[%d,%d,%d,%d]%s",
		i, e.CoreBusy,
		e.FIFO1Load, e.FIFO2Load, e.FIFO3Load,
		e.Core0Divider, e.Core1Divider, e.Core2Divider, e.Core3Divider,
		rl)
}
