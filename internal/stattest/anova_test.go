package stattest

import (
	"math"
	"testing"
)

func TestOneWayANOVAKnownValue(t *testing.T) {
	groups := map[string][]float64{
		"a": {0, 1},
		"b": {1, 2},
	}
	res, err := OneWayANOVA(groups, 0)
	if err != nil {
		t.Fatalf("OneWayANOVA: %v", err)
	}
	// ssBetween=1, ssWithin=1, dfB=1, dfW=2 -> F=2
	if math.Abs(res.F-2) > 1e-9 {
		t.Errorf("F = %v, want 2", res.F)
	}
	if res.DFBetween != 1 || res.DFWithin != 2 {
		t.Errorf("df = %d/%d, want 1/2", res.DFBetween, res.DFWithin)
	}
	// balanced groups: mean-of-means equals pooled mean, eta = 1/2
	if math.Abs(res.EtaSquared-0.5) > 1e-9 {
		t.Errorf("eta squared = %v, want 0.5", res.EtaSquared)
	}
	if got := res.Groups["b"]; math.Abs(got.Mean-1.5) > 1e-9 || got.N != 2 {
		t.Errorf("group b stats = %+v", got)
	}
}

func TestOneWayANOVAIdenticalGroups(t *testing.T) {
	groups := map[string][]float64{
		"a": {1, 2, 3},
		"b": {1, 2, 3},
	}
	res, err := OneWayANOVA(groups, 0)
	if err != nil {
		t.Fatalf("OneWayANOVA: %v", err)
	}
	if res.F > 1e-12 {
		t.Errorf("F = %v, want 0 for identical groups", res.F)
	}
	if res.PValue < 0.999 {
		t.Errorf("p = %v, want ~1", res.PValue)
	}
	if res.Significant {
		t.Error("identical groups must not be significant")
	}
}

// Unbalanced groups make the eta-squared grand mean (mean of group means)
// differ from the pooled mean the F statistic uses; both must stay in range.
func TestOneWayANOVAUnbalanced(t *testing.T) {
	groups := map[string][]float64{
		"big":   {0, 0, 0, 0, 0, 0, 0, 1},
		"small": {1, 2},
	}
	res, err := OneWayANOVA(groups, 0)
	if err != nil {
		t.Fatalf("OneWayANOVA: %v", err)
	}
	if res.F <= 0 {
		t.Errorf("F = %v, want > 0", res.F)
	}
	if res.EtaSquared <= 0 || res.EtaSquared > 1 {
		t.Errorf("eta squared = %v, want in (0, 1]", res.EtaSquared)
	}
}

func TestOneWayANOVAErrors(t *testing.T) {
	if _, err := OneWayANOVA(map[string][]float64{"a": {1, 2}}, 0); err == nil {
		t.Error("expected error with a single group")
	}
	if _, err := OneWayANOVA(map[string][]float64{"a": {1, 2}, "b": {}}, 0); err == nil {
		t.Error("expected error with an empty group")
	}
	if _, err := OneWayANOVA(map[string][]float64{"a": {1}, "b": {2}}, 0); err == nil {
		t.Error("expected error when observations do not exceed groups")
	}
}
