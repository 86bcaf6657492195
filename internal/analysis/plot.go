// internal/analysis/plot.go
package analysis

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
)

// PlotLoads renders the three fifo loads over the run as a line chart.
// Output format follows the path extension (png, svg, pdf).
func PlotLoads(entries []telemetry.Entry, path string) error {
	if len(entries) == 0 {
		return fmt.Errorf("analysis: nothing to plot")
	}

	p := plot.New()
	p.Title.Text = "FIFO load per telemetry entry"
	p.X.Label.Text = "entry"
	p.Y.Label.Text = "load"
	p.Y.Min, p.Y.Max = 0, 7

	series := make([]interface{}, 0, 6)
	for j := 0; j < 3; j++ {
		xys := make(plotter.XYs, len(entries))
		for i, e := range entries {
			loads := [3]uint8{e.FIFO1Load, e.FIFO2Load, e.FIFO3Load}
			xys[i].X = float64(i)
			xys[i].Y = float64(loads[j])
		}
		series = append(series, fmt.Sprintf("fifo%d", j+1), xys)
	}

	if err := plotutil.AddLines(p, series...); err != nil {
		return fmt.Errorf("analysis: plot: %w", err)
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("analysis: save %s: %w", path, err)
	}
	return nil
}
