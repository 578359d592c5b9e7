package difficulty

import (
	"errors"
	"strings"
	"testing"

	"github.com/vanityforge/create2-miner/pkg/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"dead", "dead"},
		{"DE:AD", "dead"},
		{"0xAbC", "abc"},
		{"0XABC", "abc"},
		{"  beef  ", "beef"},
		{"ca-fe_ba.be", "cafebabe"},
		{"12 34", "1234"},
		{"", ""},
		{"0x", ""},
		{"zz", "zz"}, // non-separator junk survives for validation to reject
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single char", "a", false},
		{"max length", "12345678", false},
		{"all digits", "00000000", false},
		{"empty", "", true},
		{"too long", "123456789", true},
		{"uppercase", "DEAD", true},
		{"non-hex", "dezd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, types.ErrInvalidInput) {
				t.Errorf("error %v is not ErrInvalidInput", err)
			}
		})
	}
}

func TestEstimateTiers(t *testing.T) {
	tests := []struct {
		termination      string
		expectedAttempts uint64
		tier             string
	}{
		{"a", 16, TierVeryEasy},
		{"ab", 256, TierEasy},
		{"abc", 4096, TierMedium},
		{"abcd", 65536, TierHard},
		{"abcde", 1048576, TierVeryHard},
		{"abcdefab", 4294967296, TierVeryHard},
	}

	for _, tt := range tests {
		t.Run(tt.termination, func(t *testing.T) {
			report := Estimate(tt.termination)
			if !report.Valid {
				t.Fatalf("Estimate(%q) reported invalid: %s", tt.termination, report.Reason)
			}
			if report.ExpectedAttempts != tt.expectedAttempts {
				t.Errorf("ExpectedAttempts = %d, want %d", report.ExpectedAttempts, tt.expectedAttempts)
			}
			if report.Tier != tt.tier {
				t.Errorf("Tier = %s, want %s", report.Tier, tt.tier)
			}
		})
	}
}

// A longer termination never reports an easier tier.
func TestEstimateMonotonic(t *testing.T) {
	rank := map[string]int{
		TierVeryEasy: 0,
		TierEasy:     1,
		TierMedium:   2,
		TierHard:     3,
		TierVeryHard: 4,
	}

	prev := -1
	for n := 1; n <= MaxTerminationLen; n++ {
		report := Estimate(strings.Repeat("f", n))
		if !report.Valid {
			t.Fatalf("length %d reported invalid", n)
		}
		if rank[report.Tier] < prev {
			t.Errorf("length %d tier %s ranks below previous", n, report.Tier)
		}
		prev = rank[report.Tier]
	}
}

func TestEstimateInvalidInput(t *testing.T) {
	for _, in := range []string{"", "zz", "123456789", "0x"} {
		report := Estimate(in)
		if report.Valid {
			t.Errorf("Estimate(%q) reported valid", in)
		}
		if report.Reason == "" {
			t.Errorf("Estimate(%q) gave no reason", in)
		}
		if report.MaxLength != MaxTerminationLen {
			t.Errorf("MaxLength = %d, want %d", report.MaxLength, MaxTerminationLen)
		}
	}
}

func TestEstimateNormalizesBeforeValidating(t *testing.T) {
	report := Estimate("DE:AD")
	if !report.Valid {
		t.Fatalf("expected valid report, got reason %q", report.Reason)
	}
	if report.Termination != "dead" {
		t.Errorf("Termination = %q, want %q", report.Termination, "dead")
	}
}
