package smc

import (
	"encoding/binary"
	"math"
)

// decodeFloat decodes a 4-byte payload into a little-endian float32.
func decodeFloat(b []byte) float64 {
	if len(b) != 4 {
		return 0
	}
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// encodeFloat encodes a float as a 4-byte little-endian float32 payload.
func encodeFloat(f float64) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(float32(f)))
	return b
}

// byteAt returns the first byte of a payload, or 0 if it is empty.
func byteAt(b []byte) byte {
	if len(b) == 0 {
		return 0
	}
	return b[0]
}
