// internal/telemetry/layout.go
package telemetry

import "fmt"

// field is one fixed-width slice of the 32-bit record.
// shift is the bit position of the field's least significant bit.
type field struct {
	shift uint
	width uint
}

func (f field) mask() uint32 {
	return uint32(1)<<f.width - 1
}

func (f field) extract(word uint32) uint8 {
	return uint8(word >> f.shift & f.mask())
}

func (f field) pack(v uint8) uint32 {
	return (uint32(v) & f.mask()) << f.shift
}

// Layout is one protocol revision's field-position table.
// Two incompatible revisions exist in the wild (the fifo and divider fields
// are mirrored between them), and the true on-wire order could not be
// confirmed from host-side captures alone. The layout is therefore a value
// selected by configuration, never a hardcoded constant.
type Layout struct {
	Name string

	coreBusy field
	fifo     [3]field // fifo1..fifo3 load
	divider  [4]field // core0..core3 divider
	rl       field    // zero width when the revision has no RL flag
}

// LayoutFIFO1First places fifo1_load in the topmost fifo field and
// core0_divider in the topmost divider field. Bit 2 carries the RL-agent
// enable flag and bits [1:0] are reserved. This is the revision the
// firmware team documented last and the default.
var LayoutFIFO1First = Layout{
	Name:     "fifo1-first",
	coreBusy: field{shift: 28, width: 4},
	fifo: [3]field{
		{shift: 25, width: 3},
		{shift: 22, width: 3},
		{shift: 19, width: 3},
	},
	divider: [4]field{
		{shift: 15, width: 4},
		{shift: 11, width: 4},
		{shift: 7, width: 4},
		{shift: 3, width: 4},
	},
	rl: field{shift: 2, width: 1},
}

// LayoutFIFO3First is the mirrored revision: fifo3_load topmost, dividers in
// core3..core0 order, bits [2:0] reserved with no RL flag.
var LayoutFIFO3First = Layout{
	Name:     "fifo3-first",
	coreBusy: field{shift: 28, width: 4},
	fifo: [3]field{
		{shift: 19, width: 3},
		{shift: 22, width: 3},
		{shift: 25, width: 3},
	},
	divider: [4]field{
		{shift: 3, width: 4},
		{shift: 7, width: 4},
		{shift: 11, width: 4},
		{shift: 15, width: 4},
	},
}

// DefaultLayout is used wherever configuration does not name one.
var DefaultLayout = LayoutFIFO1First

// LayoutByName resolves a configured layout name.
func LayoutByName(name string) (Layout, error) {
	switch name {
	case "", LayoutFIFO1First.Name:
		return LayoutFIFO1First, nil
	case LayoutFIFO3First.Name:
		return LayoutFIFO3First, nil
	default:
		return Layout{}, fmt.Errorf("telemetry: unknown layout %q", name)
	}
}
