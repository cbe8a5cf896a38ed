package enhance

import (
	"errors"
	"math"
	"testing"
)

func within(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	scale := math.Abs(want)
	if scale < 1 {
		scale = 1
	}
	if math.Abs(got-want) > tol*scale {
		t.Errorf("%s = %.9f, want %.9f", name, got, want)
	}
}

func flatRates(n int, p float64) []float64 {
	rates := make([]float64, n)
	for i := range rates {
		rates[i] = p
	}
	return rates
}

func TestStatsCertainSuccess(t *testing.T) {
	// with every rate at 1.0 the chain walks straight up: one attempt per
	// level and no failures to protect against, whatever the threshold
	for _, protectFrom := range []int{0, 2, 3, 5} {
		stats, err := CalculateEnhancementStats(StatsParams{
			TargetLevel:  5,
			SuccessRates: flatRates(5, 1.0),
			ProtectFrom:  protectFrom,
		})
		if err != nil {
			t.Fatal(err)
		}
		within(t, "attempts", stats.Attempts, 5, 1e-12)
		if stats.ProtectionCount != 0 {
			t.Errorf("protectFrom=%d: protectionCount = %f, want 0", protectFrom, stats.ProtectionCount)
		}
	}
}

func TestStatsSingleLevelGeometric(t *testing.T) {
	// one level is a plain geometric distribution: E[attempts] = 1/p
	stats, err := CalculateEnhancementStats(StatsParams{
		TargetLevel:  1,
		SuccessRates: []float64{0.55},
	})
	if err != nil {
		t.Fatal(err)
	}
	within(t, "attempts", stats.Attempts, 1/0.55, 1e-12)
}

func TestStatsKnownChains(t *testing.T) {
	tests := []struct {
		name         string
		params       StatsParams
		wantAttempts float64
		wantProtect  float64
	}{
		{
			"five levels at 50% unprotected",
			StatsParams{TargetLevel: 5, SuccessRates: flatRates(5, 0.5)},
			62, 0,
		},
		{
			"five levels at 50% protected from 2",
			StatsParams{TargetLevel: 5, SuccessRates: flatRates(5, 0.5), ProtectFrom: 2},
			30, 6,
		},
		{
			"threshold above all transient states is a no-op",
			StatsParams{TargetLevel: 2, SuccessRates: flatRates(2, 0.5), ProtectFrom: 2},
			6, 0,
		},
		{
			"blessed tea shortens the protected climb",
			StatsParams{TargetLevel: 5, SuccessRates: flatRates(5, 0.5), ProtectFrom: 2, BlessedTea: true},
			29.145438835, 5.844564078,
		},
	}
	for _, tt := range tests {
		stats, err := CalculateEnhancementStats(tt.params)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		within(t, tt.name+" attempts", stats.Attempts, tt.wantAttempts, 1e-8)
		within(t, tt.name+" protection", stats.ProtectionCount, tt.wantProtect, 1e-8)
	}
}

func TestProtectionNeverIncreasesAttempts(t *testing.T) {
	rates := flatRates(6, 0.4)
	base, err := CalculateEnhancementStats(StatsParams{TargetLevel: 6, SuccessRates: rates})
	if err != nil {
		t.Fatal(err)
	}
	for protectFrom := 2; protectFrom <= 6; protectFrom++ {
		stats, err := CalculateEnhancementStats(StatsParams{
			TargetLevel:  6,
			SuccessRates: rates,
			ProtectFrom:  protectFrom,
		})
		if err != nil {
			t.Fatal(err)
		}
		if stats.Attempts > base.Attempts+1e-9 {
			t.Errorf("protectFrom=%d: attempts %.4f exceeds unprotected %.4f", protectFrom, stats.Attempts, base.Attempts)
		}
	}
}

func TestStatsValidation(t *testing.T) {
	tests := []struct {
		name    string
		params  StatsParams
		wantErr error
	}{
		{"target zero", StatsParams{TargetLevel: 0, SuccessRates: flatRates(5, 0.5)}, ErrInvalidTargetLevel},
		{"target above cap", StatsParams{TargetLevel: 21, SuccessRates: flatRates(21, 0.5)}, ErrInvalidTargetLevel},
		{"rates too short", StatsParams{TargetLevel: 5, SuccessRates: flatRates(3, 0.5)}, ErrInvalidRates},
		{"empty rates", StatsParams{TargetLevel: 5}, ErrInvalidRates},
		{"rate above one", StatsParams{TargetLevel: 2, SuccessRates: []float64{0.5, 1.5}}, ErrInvalidProb},
		{"negative protect_from", StatsParams{TargetLevel: 5, SuccessRates: flatRates(5, 0.5), ProtectFrom: -1}, ErrInvalidProtectFrom},
		{"protect_from past target", StatsParams{TargetLevel: 5, SuccessRates: flatRates(5, 0.5), ProtectFrom: 6}, ErrInvalidProtectFrom},
	}
	for _, tt := range tests {
		_, err := CalculateEnhancementStats(tt.params)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}
