// internal/logframe/marshal.go
package logframe

import (
	"encoding/binary"

	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
)

// Marshal builds a complete frame around the given entries. This is the
// inverse of Scan, used by the mock device and by anything simulating the
// firmware. The count field is 16 bits; callers must keep len(entries) under
// 65536.
func Marshal(entries []telemetry.Entry, layout telemetry.Layout) []byte {
	words := make([]uint32, len(entries))
	for i, e := range entries {
		words[i] = layout.Encode(e)
	}
	return MarshalWords(words)
}

// MarshalWords builds a frame from already-packed words.
func MarshalWords(words []uint32) []byte {
	buf := make([]byte, 0, headerSize+countSize+len(words)*entrySize+footerSize)
	buf = append(buf, header...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(words)))
	for _, w := range words {
		buf = binary.BigEndian.AppendUint32(buf, w)
	}
	return append(buf, footer...)
}
