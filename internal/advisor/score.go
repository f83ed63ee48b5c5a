package advisor

// Tier thresholds on the unclamped saving score. Both are exclusive.
const (
	SecureThreshold = 25.0
	SteadyThreshold = 10.0
)

// Tier is the band of follow-up commentary selected by the saving score.
type Tier string

const (
	TierSecure    Tier = "secure"
	TierSteady    Tier = "steady"
	TierRebalance Tier = "rebalance"
)

var tierCommentary = map[Tier]string{
	TierSecure:    "Great job! You're financially secure. Now diversify investments.",
	TierSteady:    "You're doing okay. Focus more on savings consistency.",
	TierRebalance: "You need to rebalance income-expense-debt ratios. Anni believes small changes = big results.",
}

// BonusTip is shown on request beneath every result.
const BonusTip = "Track your daily spending. You'll be surprised how little leaks add up!"

// SavingScore is savings net of debt as a percentage of income. The +1 keeps
// the denominator at least 1 when income is zero.
func SavingScore(s Snapshot) float64 {
	return ((s.Savings - s.Debt) / (s.Income + 1)) * 100
}

// DisplayRatio clamps score/100 into [0, 1] for the score bar.
func DisplayRatio(score float64) float64 {
	return min(max(score/100, 0), 1)
}

// TierFor picks the commentary tier from an unclamped score.
func TierFor(score float64) Tier {
	switch {
	case score > SecureThreshold:
		return TierSecure
	case score > SteadyThreshold:
		return TierSteady
	default:
		return TierRebalance
	}
}

// Commentary returns the follow-up text for t.
func (t Tier) Commentary() string {
	return tierCommentary[t]
}

// Celebrate reports whether the tier earns the celebration flourish.
func (t Tier) Celebrate() bool {
	return t == TierSecure
}
