package stattest

import (
	"fmt"
	"math"
)

// DefaultAlpha is the significance threshold used when a caller passes a
// non-positive alpha.
const DefaultAlpha = 0.05

func alphaOrDefault(alpha float64) float64 {
	if alpha <= 0 {
		return DefaultAlpha
	}
	return alpha
}

// Band is a qualitative effect-size interpretation.
type Band string

const (
	BandNegligible Band = "negligible"
	BandSmall      Band = "small"
	BandMedium     Band = "medium"
	BandLarge      Band = "large"
)

// PhiBand interprets a phi coefficient (0.1 / 0.3 / 0.5 cut points).
func PhiBand(phi float64) Band {
	return band(phi, 0.1, 0.3, 0.5)
}

// CohenBand interprets Cohen's d (0.2 / 0.5 / 0.8 cut points).
func CohenBand(d float64) Band {
	return band(d, 0.2, 0.5, 0.8)
}

func band(v, small, medium, large float64) Band {
	abs := math.Abs(v)
	switch {
	case abs < small:
		return BandNegligible
	case abs < medium:
		return BandSmall
	case abs < large:
		return BandMedium
	default:
		return BandLarge
	}
}

// FormatP renders a p-value the way the paper reports it.
func FormatP(p float64) string {
	if p < 0.001 {
		return "< 0.001"
	}
	if p < 0.05 {
		return fmt.Sprintf("%.3f", p)
	}
	return fmt.Sprintf("%.3f (n.s.)", p)
}
