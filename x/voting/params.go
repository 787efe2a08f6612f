package voting

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// GovernanceConfig holds the engine wide voting rules. Percentages are scaled by PctBase.
type GovernanceConfig struct {
	SupportRequiredPct int64         `json:"support_required_pct"`
	MinAcceptQuorumPct int64         `json:"min_accept_quorum_pct"`
	VoteDuration       time.Duration `json:"vote_duration"`
}

func NewGovernanceConfig(supportRequiredPct, minAcceptQuorumPct int64, voteDuration time.Duration) GovernanceConfig {
	return GovernanceConfig{
		SupportRequiredPct: supportRequiredPct,
		MinAcceptQuorumPct: minAcceptQuorumPct,
		VoteDuration:       voteDuration,
	}
}

// DefaultGovernanceConfig: 50% support, 20% quorum, one day to vote.
func DefaultGovernanceConfig() GovernanceConfig {
	return NewGovernanceConfig(PctBase/2, PctBase/5, 24*time.Hour)
}

// Validate checks 0 < MinAcceptQuorumPct <= SupportRequiredPct <= PctBase and
// a vote duration of at least one second.
func (c GovernanceConfig) Validate() sdk.Error {
	if c.MinAcceptQuorumPct <= 0 {
		return ErrInvalidConfig(DefaultCodespace, "min accept quorum must be positive")
	}
	if c.MinAcceptQuorumPct > c.SupportRequiredPct {
		return ErrInvalidConfig(DefaultCodespace, "min accept quorum cannot exceed required support")
	}
	if c.SupportRequiredPct > PctBase {
		return ErrInvalidConfig(DefaultCodespace, "required support cannot exceed 100%")
	}
	if c.VoteDuration < time.Second {
		return ErrInvalidConfig(DefaultCodespace, "vote duration must be at least one second")
	}
	return nil
}

func (c GovernanceConfig) String() string {
	return fmt.Sprintf(`Governance Config:
  Support Required:  %s
  Min Accept Quorum: %s
  Vote Duration:     %s`, FormatPct(c.SupportRequiredPct), FormatPct(c.MinAcceptQuorumPct), c.VoteDuration)
}

// FormatPct renders a PctBase scaled percentage, e.g. 500000000000000000 as "50%".
func FormatPct(pct int64) string {
	whole := pct / (PctBase / 100)
	frac := pct % (PctBase / 100)
	if frac == 0 {
		return fmt.Sprintf("%d%%", whole)
	}
	return fmt.Sprintf("%d.%016d%%", whole, frac)
}

// ParsePct reads a percentage either as "12.5%" or as an integer already
// scaled by PctBase.
func ParsePct(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		pct, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percentage %q", s)
		}
		return pct, nil
	}

	unit := PctBase / 100
	parts := strings.SplitN(strings.TrimSuffix(s, "%"), ".", 2)
	whole, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || whole < 0 || whole > 100 {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	var frac int64
	if len(parts) == 2 {
		digits := parts[1]
		if len(digits) == 0 || len(digits) > 16 {
			return 0, fmt.Errorf("invalid percentage %q", s)
		}
		digits += strings.Repeat("0", 16-len(digits))
		if frac, err = strconv.ParseInt(digits, 10, 64); err != nil || frac < 0 {
			return 0, fmt.Errorf("invalid percentage %q", s)
		}
	}
	return whole*unit + frac, nil
}
