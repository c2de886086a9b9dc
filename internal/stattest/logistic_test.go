package stattest

import (
	"math"
	"testing"
)

// Balanced 2x2 design: P(mention)=0.5 at x1=0 and 0.75 at x1=1, independent
// of x2. The MLE is intercept=0, beta1=ln 3, beta2=0.
func TestFitLogisticRecoversKnownCoefficients(t *testing.T) {
	var x1, x2, y []float64
	appendCell := func(v1, v2 float64, mentions, total int) {
		for i := 0; i < total; i++ {
			x1 = append(x1, v1)
			x2 = append(x2, v2)
			if i < mentions {
				y = append(y, 1)
			} else {
				y = append(y, 0)
			}
		}
	}
	appendCell(0, 0, 10, 20)
	appendCell(0, 1, 10, 20)
	appendCell(1, 0, 15, 20)
	appendCell(1, 1, 15, 20)

	res, err := FitLogistic(x1, x2, y)
	if err != nil {
		t.Fatalf("FitLogistic: %v", err)
	}
	if !res.Converged {
		t.Fatal("fit should converge on this dataset")
	}
	if math.Abs(res.Intercept) > 1e-3 {
		t.Errorf("intercept = %v, want ~0", res.Intercept)
	}
	if want := math.Log(3); math.Abs(res.BetaChineseLLM-want) > 1e-3 {
		t.Errorf("beta1 = %v, want %v", res.BetaChineseLLM, want)
	}
	if math.Abs(res.BetaRecQuery) > 1e-3 {
		t.Errorf("beta2 = %v, want ~0", res.BetaRecQuery)
	}
	if math.Abs(res.ORChineseLLM-3) > 1e-2 {
		t.Errorf("odds ratio = %v, want 3", res.ORChineseLLM)
	}
	if res.NObservations != 80 || res.NMentions != 50 {
		t.Errorf("n = %d, mentions = %d, want 80 and 50", res.NObservations, res.NMentions)
	}
	if res.NegLogLikelihood <= 0 {
		t.Errorf("negative log-likelihood = %v, want > 0", res.NegLogLikelihood)
	}
}

// Perfectly separated data has no finite MLE; the clipped loss caps the
// coefficients instead of letting the line search diverge, so the fit must
// still return finite numbers rather than an error or NaN.
func TestFitLogisticSeparableData(t *testing.T) {
	var x1, x2, y []float64
	for i := 0; i < 40; i++ {
		v := float64(i % 2)
		x1 = append(x1, v)
		x2 = append(x2, 0)
		y = append(y, v)
	}

	res, err := FitLogistic(x1, x2, y)
	if err != nil {
		t.Fatalf("FitLogistic: %v", err)
	}
	for name, v := range map[string]float64{
		"intercept": res.Intercept,
		"beta1":     res.BetaChineseLLM,
		"beta2":     res.BetaRecQuery,
		"nll":       res.NegLogLikelihood,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s = %v, want finite", name, v)
		}
	}
	if res.BetaChineseLLM <= 0 {
		t.Errorf("beta1 = %v, want positive for a perfectly predictive x1", res.BetaChineseLLM)
	}
	if res.NegLogLikelihood < 0 {
		t.Errorf("negative log-likelihood = %v, want >= 0", res.NegLogLikelihood)
	}
}

func TestFitLogisticLengthMismatch(t *testing.T) {
	if _, err := FitLogistic([]float64{1}, []float64{1, 2}, []float64{1, 0}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := FitLogistic(nil, nil, nil); err == nil {
		t.Error("expected error for empty inputs")
	}
}

func TestSigmoidAndClip(t *testing.T) {
	if got := sigmoid(0); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("sigmoid(0) = %v, want 0.5", got)
	}
	if got := clip(2, 0, 1); got != 1 {
		t.Errorf("clip(2,0,1) = %v, want 1", got)
	}
	if got := clip(-1, 0, 1); got != 0 {
		t.Errorf("clip(-1,0,1) = %v, want 0", got)
	}
}
