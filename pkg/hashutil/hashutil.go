package hashutil

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

type HashAlgo string

const (
	HashAlgoMD5 HashAlgo = "md5"
)

// HashBytes returns the hash of data as a lowercase hex string using the
// specified algorithm. The crawler uses MD5 exclusively: it is the digest
// both the Content Hash Set and the Persister key artifacts on, and the
// specification is explicit that this must be MD5 rather than a stronger
// general-purpose hash.
func HashBytes(data []byte, algo HashAlgo) (string, error) {
	switch algo {
	case HashAlgoMD5:
		return hashBytesMD5(data), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// HashString is a convenience wrapper around HashBytes for string inputs,
// used throughout for hashing canonical URLs.
func HashString(s string, algo HashAlgo) (string, error) {
	return HashBytes([]byte(s), algo)
}

func hashBytesMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
