// internal/telemetry/codec.go
package telemetry

// Sentinel is the word the device writes into telemetry slots it never
// populated. It decodes like any other word; callers assign it meaning when
// rendering.
const Sentinel uint32 = 0xDEADBEEF

// Entry is one decoded 32-bit telemetry record.
type Entry struct {
	// CoreBusy holds one flag bit per processing stage.
	// MSB of the nibble = stage 0 (resizer), LSB = stage 3 (blur).
	CoreBusy uint8

	// Queue depth (0-7) at each buffering stage between cores.
	FIFO1Load uint8
	FIFO2Load uint8
	FIFO3Load uint8

	// Clock-throttle divisor (0-15) per stage; 0 = full speed.
	Core0Divider uint8
	Core1Divider uint8
	Core2Divider uint8
	Core3Divider uint8

	// RLEnabled reports whether the RL agent was active when the record was
	// captured. Only the fifo1-first revision carries the flag; under the
	// other revision it decodes as false.
	RLEnabled bool

	// Raw is the original packed word, retained for lossless round-trip and
	// hex dumps. Encode ignores it.
	Raw uint32
}

// IsSentinel reports whether the entry came from an unpopulated slot.
func (e Entry) IsSentinel() bool {
	return e.Raw == Sentinel
}

// Busy reports the busy flag of one processing stage (0-3).
// Stages outside that range are never busy.
func (e Entry) Busy(stage int) bool {
	if stage < 0 || stage > 3 {
		return false
	}
	return e.CoreBusy>>(3-stage)&1 == 1
}

// Throttled reports whether any stage was clock-throttled.
func (e Entry) Throttled() bool {
	return e.Core0Divider != 0 || e.Core1Divider != 0 ||
		e.Core2Divider != 0 || e.Core3Divider != 0
}

// Decode unpacks a 32-bit word. It is total: any word decodes, including
// semantically meaningless ones such as Sentinel.
func (l Layout) Decode(word uint32) Entry {
	e := Entry{
		CoreBusy:     l.coreBusy.extract(word),
		FIFO1Load:    l.fifo[0].extract(word),
		FIFO2Load:    l.fifo[1].extract(word),
		FIFO3Load:    l.fifo[2].extract(word),
		Core0Divider: l.divider[0].extract(word),
		Core1Divider: l.divider[1].extract(word),
		Core2Divider: l.divider[2].extract(word),
		Core3Divider: l.divider[3].extract(word),
		Raw:          word,
	}
	if l.rl.width > 0 {
		e.RLEnabled = l.rl.extract(word) != 0
	}
	return e
}

// Encode packs an entry. Each field is masked to its declared width before
// shifting, so out-of-range values wrap silently instead of failing. This is
// intentional: it mirrors how the hardware registers themselves truncate.
func (l Layout) Encode(e Entry) uint32 {
	word := l.coreBusy.pack(e.CoreBusy) |
		l.fifo[0].pack(e.FIFO1Load) |
		l.fifo[1].pack(e.FIFO2Load) |
		l.fifo[2].pack(e.FIFO3Load) |
		l.divider[0].pack(e.Core0Divider) |
		l.divider[1].pack(e.Core1Divider) |
		l.divider[2].pack(e.Core2Divider) |
		l.divider[3].pack(e.Core3Divider)
	if l.rl.width > 0 && e.RLEnabled {
		word |= l.rl.pack(1)
	}
	return word
}
