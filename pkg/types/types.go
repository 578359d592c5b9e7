package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// MiningResult represents a successful salt search
type MiningResult struct {
	Salt     string // hex-encoded 32-byte salt, no 0x prefix
	Address  string // EIP-55 checksummed address ending in the termination
	Attempts int64  // attempts performed, in [1, attempt cap]
	Duration time.Duration
}

// SearchSpec contains the inputs for a single salt search
type SearchSpec struct {
	Deployer     common.Address
	InitCodeHash common.Hash
	Termination  string // desired hex suffix, normalized before the search starts
	AttemptCap   int64  // hard ceiling on salts tried, enforced exactly
}
