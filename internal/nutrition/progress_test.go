package nutrition_test

import (
	"math"
	"testing"

	"github.com/saadjs/caltrack/internal/nutrition"
)

func TestClassifyBands(t *testing.T) {
	t.Parallel()
	cases := []struct {
		current float64
		target  float64
		want    nutrition.Band
	}{
		{0, 2000, nutrition.BandUnder},
		{1799, 2000, nutrition.BandUnder},
		{1800, 2000, nutrition.BandWarning}, // exactly 90 %
		{1900, 2000, nutrition.BandWarning},
		{2200, 2000, nutrition.BandWarning}, // exactly 110 %
		{2201, 2000, nutrition.BandDanger},
		{2300, 2000, nutrition.BandDanger},
		{500, 0, nutrition.BandNeutral},
		{0, 0, nutrition.BandNeutral},
		{500, -100, nutrition.BandNeutral},
	}
	for _, tc := range cases {
		if got := nutrition.Classify(tc.current, tc.target); got != tc.want {
			t.Fatalf("classify(%v, %v): expected %s, got %s", tc.current, tc.target, tc.want, got)
		}
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()
	if p := nutrition.Percent(1900, 2000); math.Abs(p-95) > 1e-9 {
		t.Fatalf("expected 95%%, got %v", p)
	}
	if p := nutrition.Percent(1900, 0); p != 0 {
		t.Fatalf("expected 0%% for zero target, got %v", p)
	}
}
