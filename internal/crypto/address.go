package crypto

import (
	"hash"

	"golang.org/x/crypto/sha3"
)

const (
	// CREATE2 input layout: 0xff (1) + deployer (20) + salt (32) + initcodeHash (32) = 85
	Create2PrefixLen = 1 + 20
	Create2SaltLen   = 32
	Create2SuffixLen = 32
	Create2InputLen  = Create2PrefixLen + Create2SaltLen + Create2SuffixLen
)

// NewKeccak256 returns a reusable legacy keccak256 hasher for the hot path.
func NewKeccak256() hash.Hash {
	return sha3.NewLegacyKeccak256()
}

// Keccak256 calculates the keccak256 hash of the input bytes
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(data)
	return h.Sum(nil)
}

// AssembleCreate2Input primes the constant regions of a CREATE2 input buffer:
// 0xff + deployer into [0:21], init-code hash into [53:85]. The salt region
// [21:53] is left for the caller to refill between attempts.
// inputBuf must be Create2InputLen (85) bytes.
func AssembleCreate2Input(inputBuf []byte, deployer [20]byte, initCodeHash [32]byte) {
	inputBuf[0] = 0xff
	copy(inputBuf[1:Create2PrefixLen], deployer[:])
	copy(inputBuf[Create2PrefixLen+Create2SaltLen:], initCodeHash[:])
}

// SaltRegion returns the mutable salt slice of a primed CREATE2 input buffer.
func SaltRegion(inputBuf []byte) []byte {
	return inputBuf[Create2PrefixLen : Create2PrefixLen+Create2SaltLen]
}

// Create2AddressInto hashes CREATE2 input and writes the 20-byte address into addrBuf.
// Reuses the provided hasher to avoid allocations. inputBuf must be Create2InputLen (85),
// hashBuf must be at least 32 bytes, addrBuf must be 20 bytes.
func Create2AddressInto(hasher hash.Hash, inputBuf, hashBuf, addrBuf []byte) {
	hasher.Reset()
	hasher.Write(inputBuf)
	sum := hasher.Sum(hashBuf[:0])
	copy(addrBuf, sum[12:32])
}
