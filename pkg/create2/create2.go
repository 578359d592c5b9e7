package create2

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vanityforge/create2-miner/pkg/types"
)

// Hex lengths (without 0x prefix) for the fixed-width inputs
const (
	AddressHexLen = 2 * common.AddressLength // 40
	SaltHexLen    = 2 * common.HashLength    // 64
	HashHexLen    = 2 * common.HashLength    // 64
)

// Salt is a caller-chosen or mined 32-byte CREATE2 salt
type Salt [32]byte

// Derive computes the CREATE2 deployment address:
// keccak256(0xff ++ deployer ++ salt ++ initCodeHash)[12:].
// Pure and deterministic; fixed-width inputs make it total.
func Derive(deployer common.Address, salt Salt, initCodeHash common.Hash) common.Address {
	var input [1 + common.AddressLength + 2*common.HashLength]byte
	input[0] = 0xff
	copy(input[1:21], deployer[:])
	copy(input[21:53], salt[:])
	copy(input[53:85], initCodeHash[:])
	digest := crypto.Keccak256(input[:])
	return common.BytesToAddress(digest[12:])
}

// InitCodeHash hashes deployment bytecode (including encoded constructor
// arguments) into the 32-byte init-code hash the derivation consumes.
func InitCodeHash(initCode []byte) common.Hash {
	return common.BytesToHash(crypto.Keccak256(initCode))
}

// ParseAddress decodes a 20-byte deployer address from hex, with or
// without the 0x prefix. Wrong lengths and bad hex fail with InvalidInput.
func ParseAddress(s string) (common.Address, error) {
	b, err := parseFixedHex(s, common.AddressLength, "address")
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(b), nil
}

// ParseSalt decodes a 32-byte salt from hex.
func ParseSalt(s string) (Salt, error) {
	b, err := parseFixedHex(s, common.HashLength, "salt")
	if err != nil {
		return Salt{}, err
	}
	var salt Salt
	copy(salt[:], b)
	return salt, nil
}

// ParseHash decodes a 32-byte init-code hash from hex.
func ParseHash(s string) (common.Hash, error) {
	b, err := parseFixedHex(s, common.HashLength, "init-code hash")
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(b), nil
}

func parseFixedHex(s string, byteLen int, what string) ([]byte, error) {
	h := strings.TrimSpace(s)
	if len(h) >= 2 && (h[:2] == "0x" || h[:2] == "0X") {
		h = h[2:]
	}
	if len(h) != 2*byteLen {
		return nil, fmt.Errorf("%w: %s must be %d bytes, got %d hex chars",
			types.ErrInvalidInput, what, byteLen, len(h))
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid hex: %v", types.ErrInvalidInput, what, err)
	}
	return b, nil
}
