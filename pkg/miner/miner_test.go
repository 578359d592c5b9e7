package miner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vanityforge/create2-miner/pkg/create2"
	"github.com/vanityforge/create2-miner/pkg/types"
)

func testSpec(t *testing.T, termination string, attemptCap int64) types.SearchSpec {
	t.Helper()
	deployer, err := create2.ParseAddress("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B")
	if err != nil {
		t.Fatal(err)
	}
	return types.SearchSpec{
		Deployer:     deployer,
		InitCodeHash: create2.InitCodeHash([]byte{0x60, 0x80, 0x60, 0x40}),
		Termination:  termination,
		AttemptCap:   attemptCap,
	}
}

func TestMineRejectsInvalidInput(t *testing.T) {
	m := NewMiner(Options{Workers: 1}, nil)

	tests := []struct {
		name        string
		termination string
		attemptCap  int64
	}{
		{"empty termination", "", 100},
		{"termination too long", "123456789", 100},
		{"non-hex termination", "xyzw", 100},
		{"zero attempt cap", "a", 0},
		{"negative attempt cap", "a", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Mine(context.Background(), testSpec(t, tt.termination, tt.attemptCap))
			if !errors.Is(err, types.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestMineFindsSingleCharSuffix(t *testing.T) {
	m := NewMiner(Options{Workers: 2, BatchSize: 64}, nil)
	spec := testSpec(t, "a", 200_000)

	result, err := m.Mine(context.Background(), spec)
	if err != nil {
		t.Fatalf("Mine failed: %v", err)
	}

	if result.Attempts < 1 || result.Attempts > spec.AttemptCap {
		t.Errorf("attempts %d outside [1, %d]", result.Attempts, spec.AttemptCap)
	}
	lower := strings.ToLower(strings.TrimPrefix(result.Address, "0x"))
	if !strings.HasSuffix(lower, "a") {
		t.Errorf("address %s does not end with %q", result.Address, "a")
	}

	// The returned salt must re-derive to the returned address
	salt, err := create2.ParseSalt(result.Salt)
	if err != nil {
		t.Fatalf("invalid salt in result: %v", err)
	}
	if derived := create2.Derive(spec.Deployer, salt, spec.InitCodeHash); derived.Hex() != result.Address {
		t.Errorf("salt re-derives to %s, result says %s", derived.Hex(), result.Address)
	}
}

// Termination strings are normalized before the search: "DE:AD" semantics,
// here with a single uppercase char to keep the test fast.
func TestMineNormalizesTermination(t *testing.T) {
	m := NewMiner(Options{Workers: 2, BatchSize: 64}, nil)

	result, err := m.Mine(context.Background(), testSpec(t, "0X:A", 200_000))
	if err != nil {
		t.Fatalf("Mine failed: %v", err)
	}
	lower := strings.ToLower(strings.TrimPrefix(result.Address, "0x"))
	if !strings.HasSuffix(lower, "a") {
		t.Errorf("address %s does not end with normalized termination %q", result.Address, "a")
	}
}

func TestMineExhaustsCapExactly(t *testing.T) {
	m := NewMiner(Options{Workers: 3, BatchSize: 7}, nil)
	const attemptCap = 50

	_, err := m.Mine(context.Background(), testSpec(t, "00000000", attemptCap))
	if !errors.Is(err, types.ErrSearchExhausted) {
		t.Fatalf("error = %v, want ErrSearchExhausted", err)
	}

	var exhausted *types.ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error %v is not an ExhaustedError", err)
	}
	if exhausted.Attempts != attemptCap {
		t.Errorf("attempts = %d, want exactly %d", exhausted.Attempts, attemptCap)
	}
}

func TestMineCancellation(t *testing.T) {
	m := NewMiner(Options{Workers: 2, BatchSize: 256}, nil)
	const attemptCap = int64(1) << 40

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := m.Mine(ctx, testSpec(t, "ffffffff", attemptCap))
	if !errors.Is(err, types.ErrCancelled) {
		t.Fatalf("error = %v, want ErrCancelled", err)
	}
	if errors.Is(err, types.ErrSearchExhausted) {
		t.Fatal("cancellation must not be reported as exhaustion")
	}

	var cancelled *types.CancelledError
	if !errors.As(err, &cancelled) {
		t.Fatalf("error %v is not a CancelledError", err)
	}
	if cancelled.Attempts >= attemptCap {
		t.Errorf("attempts = %d, expected fewer than the cap %d", cancelled.Attempts, attemptCap)
	}
}

// Four-char suffix, million-attempt cap: success probability is
// 1-(1-1/65536)^1000000, failure odds around 2e-7.
func TestMineFourCharSuffixEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping multi-second search in short mode")
	}

	m := NewMiner(Options{BatchSize: 4096}, nil)
	spec := testSpec(t, "DE:AD", 1_000_000)

	result, err := m.Mine(context.Background(), spec)
	if err != nil {
		t.Fatalf("Mine failed: %v", err)
	}
	lower := strings.ToLower(strings.TrimPrefix(result.Address, "0x"))
	if !strings.HasSuffix(lower, "dead") {
		t.Errorf("address %s does not end with %q", result.Address, "dead")
	}
	if result.Attempts < 1 || result.Attempts > spec.AttemptCap {
		t.Errorf("attempts %d outside [1, %d]", result.Attempts, spec.AttemptCap)
	}
	if result.Duration <= 0 {
		t.Error("duration not recorded")
	}
}

func TestNewMinerDefaults(t *testing.T) {
	m := NewMiner(Options{}, nil)
	if m.opts.Workers < 1 {
		t.Errorf("default workers = %d, want >= 1", m.opts.Workers)
	}
	if m.opts.BatchSize != DefaultBatchSize {
		t.Errorf("default batch size = %d, want %d", m.opts.BatchSize, DefaultBatchSize)
	}
}
