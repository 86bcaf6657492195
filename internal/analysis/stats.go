// internal/analysis/stats.go
package analysis

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
)

// stressLoad is the fifo depth at or above which a stage is considered
// backed up (capacity is 7).
const stressLoad = 5

// Stage names for the four pipeline cores, in divider order.
var stageNames = [4]string{"resizer", "grayscale", "diffamp", "blur"}

// Stats summarizes one run's telemetry.
type Stats struct {
	Label string
	Count int

	// RLActivePct is the share of entries captured with the RL agent on.
	RLActivePct float64

	FIFOMean [3]float64

	// FIFOMax is a whole number for a single run; an Average of runs holds
	// the mean of the per-file maxes, which may be fractional.
	FIFOMax [3]float64

	DividerMean [4]float64

	// ThrottleCount is entries with any non-zero divider; StressCount is
	// entries with any fifo load at or above stressLoad.
	ThrottleCount int
	ThrottlePct   float64
	StressCount   int
	StressPct     float64
}

// Analyze computes run statistics. Returns a zero-count Stats for no entries.
func Analyze(label string, entries []telemetry.Entry) Stats {
	s := Stats{Label: label, Count: len(entries)}
	if len(entries) == 0 {
		return s
	}

	n := len(entries)
	fifo := [3][]float64{
		make([]float64, n), make([]float64, n), make([]float64, n),
	}
	div := [4][]float64{
		make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n),
	}

	rlOn := 0
	for i, e := range entries {
		loads := [3]uint8{e.FIFO1Load, e.FIFO2Load, e.FIFO3Load}
		for j, v := range loads {
			fifo[j][i] = float64(v)
			if float64(v) > s.FIFOMax[j] {
				s.FIFOMax[j] = float64(v)
			}
		}
		divs := [4]uint8{e.Core0Divider, e.Core1Divider, e.Core2Divider, e.Core3Divider}
		for j, v := range divs {
			div[j][i] = float64(v)
		}

		if e.RLEnabled {
			rlOn++
		}
		if e.Throttled() {
			s.ThrottleCount++
		}
		if loads[0] >= stressLoad || loads[1] >= stressLoad || loads[2] >= stressLoad {
			s.StressCount++
		}
	}

	for j := range fifo {
		s.FIFOMean[j] = stat.Mean(fifo[j], nil)
	}
	for j := range div {
		s.DividerMean[j] = stat.Mean(div[j], nil)
	}

	s.RLActivePct = 100 * float64(rlOn) / float64(n)
	s.ThrottlePct = 100 * float64(s.ThrottleCount) / float64(n)
	s.StressPct = 100 * float64(s.StressCount) / float64(n)
	return s
}

// String renders the stats block the way the bring-up reports always have.
func (s Stats) String() string {
	var b strings.Builder
	if s.Count == 0 {
		return "no data\n"
	}

	fmt.Fprintf(&b, "entries: %d\n", s.Count)
	fmt.Fprintf(&b, "rl active: %.1f%%\n", s.RLActivePct)
	b.WriteString("fifo load averages (0-7, lower is better):\n")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "  fifo%d: %.2f (max %g)\n", i+1, s.FIFOMean[i], s.FIFOMax[i])
	}
	b.WriteString("divider averages (0 = full speed):\n")
	for i := 0; i < 4; i++ {
		fmt.Fprintf(&b, "  core%d (%s): %.2f\n", i, stageNames[i], s.DividerMean[i])
	}
	fmt.Fprintf(&b, "throttle events: %d (%.1f%%)\n", s.ThrottleCount, s.ThrottlePct)
	fmt.Fprintf(&b, "fifo stress events (>=%d): %d (%.1f%%)\n", stressLoad, s.StressCount, s.StressPct)
	return b.String()
}

// Comparison holds an RL-on vs RL-off run pair.
type Comparison struct {
	On  Stats
	Off Stats

	// FIFOImprovement is the mean drop in fifo load with RL on; positive
	// means RL helped.
	FIFOImprovement float64
	Verdict         string
}

// Compare judges an RL-on run against an RL-off baseline.
func Compare(on, off Stats) Comparison {
	c := Comparison{On: on, Off: off}

	sumOn := on.FIFOMean[0] + on.FIFOMean[1] + on.FIFOMean[2]
	sumOff := off.FIFOMean[0] + off.FIFOMean[1] + off.FIFOMean[2]
	c.FIFOImprovement = (sumOff - sumOn) / 3

	switch {
	case c.FIFOImprovement > 0.1:
		c.Verdict = fmt.Sprintf("rl agent improved fifo balance by %.2f on average", c.FIFOImprovement)
	case c.FIFOImprovement < -0.1:
		c.Verdict = fmt.Sprintf("rl agent worsened fifo balance by %.2f on average", -c.FIFOImprovement)
	default:
		c.Verdict = "rl agent had minimal effect on fifo balance"
	}
	return c
}

// String renders the side-by-side comparison table.
func (c Comparison) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-24s %10s %10s\n", "metric", "rl-off", "rl-on")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "%-24s %10.2f %10.2f\n",
			fmt.Sprintf("fifo%d avg load", i+1), c.Off.FIFOMean[i], c.On.FIFOMean[i])
	}
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "%-24s %10.2f %10.2f\n",
			fmt.Sprintf("fifo%d max", i+1), c.Off.FIFOMax[i], c.On.FIFOMax[i])
	}
	for i := 0; i < 4; i++ {
		fmt.Fprintf(&b, "%-24s %10.2f %10.2f\n",
			fmt.Sprintf("core%d avg divider", i), c.Off.DividerMean[i], c.On.DividerMean[i])
	}
	fmt.Fprintf(&b, "%-24s %9.1f%% %9.1f%%\n", "throttle events", c.Off.ThrottlePct, c.On.ThrottlePct)
	fmt.Fprintf(&b, "%-24s %9.1f%% %9.1f%%\n", "fifo stress events", c.Off.StressPct, c.On.StressPct)
	fmt.Fprintf(&b, "verdict: %s\n", c.Verdict)
	return b.String()
}

// Average merges per-file stats into one aggregate, weighting every file
// equally (matching how multi-capture comparisons were always done).
func Average(group []Stats) Stats {
	if len(group) == 0 {
		return Stats{}
	}

	out := Stats{Label: "average"}
	for _, s := range group {
		out.Count += s.Count
		out.RLActivePct += s.RLActivePct
		out.ThrottlePct += s.ThrottlePct
		out.StressPct += s.StressPct
		for i := 0; i < 3; i++ {
			out.FIFOMean[i] += s.FIFOMean[i]
			out.FIFOMax[i] += s.FIFOMax[i]
		}
		for i := 0; i < 4; i++ {
			out.DividerMean[i] += s.DividerMean[i]
		}
	}

	n := float64(len(group))
	out.RLActivePct /= n
	out.ThrottlePct /= n
	out.StressPct /= n
	for i := 0; i < 3; i++ {
		out.FIFOMean[i] /= n
		out.FIFOMax[i] /= n
	}
	for i := 0; i < 4; i++ {
		out.DividerMean[i] /= n
	}
	return out
}
