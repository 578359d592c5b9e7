package worker

import (
	"crypto/rand"
	"encoding/hex"
	"hash"

	"github.com/ethereum/go-ethereum/common"

	icrypto "github.com/vanityforge/create2-miner/internal/crypto"
)

// Worker samples random salts and checks the derived address suffix for a
// single goroutine. Each worker owns its hasher and buffers; concurrent
// workers share nothing mutable.
type Worker struct {
	hasher      hash.Hash
	termination []byte // lowercase hex chars the address must end with

	// Pre-allocated buffers for the hot path
	input   [icrypto.Create2InputLen]byte
	hashBuf [32]byte
	addr    [20]byte
	addrHex [40]byte
}

// Match holds the rendered outputs of a successful attempt.
type Match struct {
	Salt    string // hex-encoded salt, no 0x prefix
	Address string // EIP-55 checksummed
}

// New creates a worker with the constant CREATE2 input regions primed.
// termination must already be normalized (1-8 lowercase hex chars).
func New(deployer common.Address, initCodeHash common.Hash, termination string) *Worker {
	w := &Worker{
		hasher:      icrypto.NewKeccak256(),
		termination: []byte(termination),
	}
	icrypto.AssembleCreate2Input(w.input[:], deployer, initCodeHash)
	return w
}

// Attempt draws one random salt, derives the address, and checks the suffix.
// Returns a Match on a hit, nil on a miss. The error path is a failing
// random source only.
func (w *Worker) Attempt() (*Match, error) {
	if _, err := rand.Read(icrypto.SaltRegion(w.input[:])); err != nil {
		return nil, err
	}
	icrypto.Create2AddressInto(w.hasher, w.input[:], w.hashBuf[:], w.addr[:])
	hex.Encode(w.addrHex[:], w.addr[:])
	if !hasSuffix(w.addrHex[:], w.termination) {
		return nil, nil
	}
	// Render only on a hit; the hot path stays allocation-free
	return &Match{
		Salt:    hex.EncodeToString(icrypto.SaltRegion(w.input[:])),
		Address: common.BytesToAddress(w.addr[:]).Hex(),
	}, nil
}

// hasSuffix compares the trailing bytes of the bare 40-char lowercase hex
// rendering against the termination. The 0x prefix is never part of the
// comparison window.
func hasSuffix(addrHex, termination []byte) bool {
	off := len(addrHex) - len(termination)
	for i := range termination {
		if addrHex[off+i] != termination[i] {
			return false
		}
	}
	return true
}
