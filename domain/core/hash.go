package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash is a hex-encoded SHA-256 digest
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// DatasetHash fingerprints the exact numeric sequence and significance
// level fed to a run, so two reports can be compared knowing whether
// they analyzed the same input.
type DatasetHash Hash

func (h DatasetHash) String() string { return Hash(h).String() }

// FingerprintDataset hashes the IEEE 754 bit patterns in order; the
// same values in a different order produce a different fingerprint,
// since order is what the runs tests examine.
func FingerprintDataset(values []float64, alpha float64) DatasetHash {
	buf := make([]byte, 8*(len(values)+1))
	binary.LittleEndian.PutUint64(buf, math.Float64bits(alpha))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[8*(i+1):], math.Float64bits(v))
	}
	return DatasetHash(NewHash(buf))
}
