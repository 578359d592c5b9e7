package difficulty

import (
	"fmt"
	"strings"

	"github.com/vanityforge/create2-miner/pkg/types"
)

// MaxTerminationLen is the longest vanity suffix a search will accept.
const MaxTerminationLen = 8

// nominalAttemptsPerSecond is a fixed throughput assumption used only to
// produce the qualitative time labels. It does not model real hardware.
const nominalAttemptsPerSecond = 250_000

// Difficulty tiers, ordered easiest to hardest
const (
	TierVeryEasy = "Very Easy"
	TierEasy     = "Easy"
	TierMedium   = "Medium"
	TierHard     = "Hard"
	TierVeryHard = "Very Hard"
)

// Report describes the expected cost of a vanity suffix search.
// It is a pure function of the termination length; no state is kept.
type Report struct {
	Valid            bool    `json:"valid"`
	Termination      string  `json:"termination"`
	Reason           string  `json:"reason,omitempty"`
	ExpectedAttempts uint64  `json:"expectedAttempts,omitempty"`
	Tier             string  `json:"tier,omitempty"`
	TimeEstimate     string  `json:"timeEstimate,omitempty"`
	NominalSeconds   float64 `json:"nominalSeconds,omitempty"`
	MaxLength        int     `json:"maxLength"`
}

// Normalize cleans a raw termination string for validation: trims space,
// strips a leading 0x, drops common separator characters, and lower-cases.
// Characters outside the separator set are kept so that genuinely invalid
// input still fails validation instead of being silently repaired.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range strings.ToLower(s) {
		switch c {
		case ' ', ':', '-', '_', '.':
			continue
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Validate checks that a normalized termination is 1-8 lowercase hex
// characters. Anything else is InvalidInput.
func Validate(termination string) error {
	if termination == "" {
		return fmt.Errorf("%w: termination is empty", types.ErrInvalidInput)
	}
	if len(termination) > MaxTerminationLen {
		return fmt.Errorf("%w: termination %q exceeds %d characters",
			types.ErrInvalidInput, termination, MaxTerminationLen)
	}
	for i := 0; i < len(termination); i++ {
		c := termination[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return fmt.Errorf("%w: termination %q contains non-hex character %q",
				types.ErrInvalidInput, termination, c)
		}
	}
	return nil
}

// Estimate reports the expected search cost for a raw termination string.
// It never fails: invalid input yields a Report with Valid=false.
func Estimate(raw string) Report {
	cleaned := Normalize(raw)
	if err := Validate(cleaned); err != nil {
		return Report{
			Valid:       false,
			Termination: cleaned,
			Reason:      err.Error(),
			MaxLength:   MaxTerminationLen,
		}
	}

	// Expected attempts for an N-char suffix under uniform random sampling
	expected := uint64(1)
	for i := 0; i < len(cleaned); i++ {
		expected *= 16
	}

	tier, estimate := classify(expected)
	return Report{
		Valid:            true,
		Termination:      cleaned,
		ExpectedAttempts: expected,
		Tier:             tier,
		TimeEstimate:     estimate,
		NominalSeconds:   float64(expected) / nominalAttemptsPerSecond,
		MaxLength:        MaxTerminationLen,
	}
}

// classify maps expected attempts to a qualitative tier. The thresholds are
// presentation aids, not guarantees.
func classify(expectedAttempts uint64) (tier, estimate string) {
	switch {
	case expectedAttempts < 1<<8:
		return TierVeryEasy, "instant"
	case expectedAttempts < 1<<12:
		return TierEasy, "seconds"
	case expectedAttempts < 1<<16:
		return TierMedium, "minutes"
	case expectedAttempts < 1<<20:
		return TierHard, "hours"
	default:
		return TierVeryHard, "days or weeks"
	}
}
