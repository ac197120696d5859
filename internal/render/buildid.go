package render

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Compact build identifier stamped into generated documents so a guide can
// be traced back to the compilation run that produced it. ULIDs are
// 26-character Crockford Base32 strings with a timestamp prefix, so ids
// sort by generation time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewBuildID returns a fresh document build identifier.
func NewBuildID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in first 6 bytes (big-endian 48-bit).
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	// Random in remaining 10 bytes.
	rand.Read(b[6:])
	// Embed sequence in bytes 6-7 to ensure uniqueness within same ms.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encode(b)
}

// encode renders 128 bits as 26 Crockford Base32 characters. 26 characters
// hold 130 bits, so the first character carries only the top 3 bits.
func encode(b [16]byte) string {
	var out [26]byte
	acc, accBits := uint32(0), 0
	pos := 25
	for i := 15; i >= 0; i-- {
		acc |= uint32(b[i]) << accBits
		accBits += 8
		for accBits >= 5 {
			out[pos] = crockford[acc&31]
			pos--
			acc >>= 5
			accBits -= 5
		}
	}
	out[0] = crockford[acc&31]
	return string(out[:])
}
