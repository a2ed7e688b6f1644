package nutrition

// Band classifies intake against a target.
type Band string

const (
	BandNeutral Band = "neutral"
	BandUnder   Band = "under"
	BandWarning Band = "warning"
	BandDanger  Band = "danger"
)

const (
	warningLowerPct = 90
	warningUpperPct = 110
)

// Percent returns current as a percentage of target, or 0 when target <= 0.
func Percent(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return current * 100 / target
}

// Classify puts current into a band: under below 90 %, warning from 90 % to
// 110 % inclusive, danger above. A non-positive target is neutral.
func Classify(current, target float64) Band {
	if target <= 0 {
		return BandNeutral
	}
	pct := Percent(current, target)
	switch {
	case pct < warningLowerPct:
		return BandUnder
	case pct <= warningUpperPct:
		return BandWarning
	default:
		return BandDanger
	}
}
