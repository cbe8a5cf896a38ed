package enhance

import (
	"math"
	"testing"
)

func TestGetSuccessMultiplier(t *testing.T) {
	tests := []struct {
		name      string
		enhancing int
		item      int
		tool      float64
		want      float64
	}{
		{"equal levels no tool", 90, 90, 0, 1.0},
		{"equal levels with tool", 90, 90, 10, 1.1},
		{"ten levels over", 100, 90, 5, 1.055},
		{"half the required level", 45, 90, 0, 0.75},
		{"fresh character", 0, 90, 0, 0.5},
		{"under level with tool", 45, 90, 2, 0.77},
	}
	for _, tt := range tests {
		got := GetSuccessMultiplier(MultiplierParams{
			EnhancingLevel: tt.enhancing,
			ItemLevel:      tt.item,
			ToolBonus:      tt.tool,
		})
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: GetSuccessMultiplier = %.6f, want %.6f", tt.name, got, tt.want)
		}
	}
}

func TestApplyMultiplierToBaseRates(t *testing.T) {
	// multiplier 1.1 over the first nine levels reproduces the table a
	// level-100 enhancer with a +10% tool sees on a level-90 item
	want := []float64{0.55, 0.495, 0.495, 0.44, 0.44, 0.44, 0.385, 0.385, 0.385}
	got := ApplyMultiplierToBaseRates(1.1, 9)
	if len(got) != len(want) {
		t.Fatalf("got %d rates, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("rate[%d] = %.6f, want %.6f", i, got[i], want[i])
		}
	}
}

func TestApplyMultiplierCapsAtCertainty(t *testing.T) {
	got := ApplyMultiplierToBaseRates(3.0, 0)
	if len(got) != MaxEnhancementLevel {
		t.Fatalf("default length = %d, want %d", len(got), MaxEnhancementLevel)
	}
	for i, r := range got {
		if r > 1 {
			t.Errorf("rate[%d] = %f, want capped at 1.0", i, r)
		}
	}
	if got[0] != 1.0 {
		t.Errorf("rate[0] = %f, want exactly 1.0", got[0])
	}
}
