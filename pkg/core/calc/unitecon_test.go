package calc

import (
	"math"
	"testing"
)

func TestCACLTV(t *testing.T) {
	// cac=150, arpu=250, margin=0.25, churn=0.05
	// ltv = (250*0.25)/0.05 = 1250, ratio = 1250/150 ≈ 8.333
	res := CACLTV(150, 250, 0.25, 0.05)

	if math.Abs(res.LTV-1250.0) > 0.0001 {
		t.Errorf("Expected LTV 1250, got %f", res.LTV)
	}
	if res.CAC != 150 {
		t.Errorf("Expected CAC 150, got %f", res.CAC)
	}
	if res.LTVCACRatio == nil {
		t.Fatal("Expected a ratio for non-zero CAC")
	}
	if math.Abs(*res.LTVCACRatio-1250.0/150.0) > 0.0001 {
		t.Errorf("Expected ratio %f, got %f", 1250.0/150.0, *res.LTVCACRatio)
	}
}

func TestCACLTVZeroChurnClamped(t *testing.T) {
	// churn=0 is clamped to 0.001 instead of dividing by zero
	res := CACLTV(150, 250, 0.25, 0)

	expected := (250 * 0.25) / 0.001
	if math.Abs(res.LTV-expected) > 0.0001 {
		t.Errorf("Expected clamped LTV %f, got %f", expected, res.LTV)
	}
}

func TestCACLTVZeroCAC(t *testing.T) {
	res := CACLTV(0, 250, 0.25, 0.05)

	if res.LTVCACRatio != nil {
		t.Errorf("Expected nil ratio for CAC=0, got %f", *res.LTVCACRatio)
	}
	if math.Abs(res.LTV-1250.0) > 0.0001 {
		t.Errorf("LTV should still be computed, got %f", res.LTV)
	}
}
