package random

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
)

const digits = "0123456789"
const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func Numeric(length int) string {
	return pickFromSet(digits, length)
}

func Code(length int) string {
	return pickFromSet(letters, length)
}

// Seed returns a non-negative int64 suitable for seeding a run's RNG.
func Seed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	return int64(binary.BigEndian.Uint64(buf[:]) >> 1)
}

func pickFromSet(set string, length int) string {
	if length <= 0 {
		return ""
	}
	max := big.NewInt(int64(len(set)))
	runes := make([]byte, length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			runes[i] = set[0]
			continue
		}
		runes[i] = set[n.Int64()]
	}
	return string(runes)
}
