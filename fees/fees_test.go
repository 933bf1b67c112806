package fees

import (
	"testing"

	"srms_go/models"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestCalculateDiscountedFee(t *testing.T) {
	tests := []struct {
		name        string
		score       *int
		expPercent  int
		expFinalFee int64
	}{
		{name: "no score", score: nil, expPercent: 0, expFinalFee: 1000000},
		{name: "below first tier", score: intPtr(550), expPercent: 0, expFinalFee: 1000000},
		{name: "just above 550", score: intPtr(551), expPercent: 20, expFinalFee: 800000},
		{name: "top of 20 percent tier", score: intPtr(580), expPercent: 20, expFinalFee: 800000},
		{name: "just above 580", score: intPtr(581), expPercent: 50, expFinalFee: 500000},
		{name: "top score", score: intPtr(600), expPercent: 50, expFinalFee: 500000},
		{name: "zero score", score: intPtr(0), expPercent: 0, expFinalFee: 1000000},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateDiscountedFee(tc.score)
			if got.DiscountPercentage != tc.expPercent {
				t.Fatalf("expected %d%% discount, got %d%%", tc.expPercent, got.DiscountPercentage)
			}
			if got.FinalFee != tc.expFinalFee {
				t.Fatalf("expected final fee %d, got %d", tc.expFinalFee, got.FinalFee)
			}
			if got.FinalFee > got.OriginalFee {
				t.Fatalf("final fee %d exceeds original fee %d", got.FinalFee, got.OriginalFee)
			}
			if got.OriginalFee-got.DiscountAmount != got.FinalFee {
				t.Fatalf("breakdown does not add up: %+v", got)
			}
		})
	}
}

func TestEffectiveFullFee(t *testing.T) {
	s := &models.Student{EntranceScore: intPtr(590)}
	if fee := EffectiveFullFee(s); fee != 500000 {
		t.Fatalf("expected policy fee 500000, got %d", fee)
	}

	s.CustomFee = int64Ptr(750000)
	if fee := EffectiveFullFee(s); fee != 750000 {
		t.Fatalf("custom fee should override policy, got %d", fee)
	}
}

func TestRemainingBalance(t *testing.T) {
	s := &models.Student{EntranceScore: intPtr(590), TotalPaid: 200000}
	if got := RemainingBalance(s); got != 300000 {
		t.Fatalf("expected remaining 300000, got %d", got)
	}

	// Never negative, even if a record overwrite left totalPaid above the fee.
	s.TotalPaid = 600000
	if got := RemainingBalance(s); got != 0 {
		t.Fatalf("expected remaining 0, got %d", got)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		student   models.Student
		expResult int
	}{
		{name: "nothing paid", student: models.Student{EntranceScore: intPtr(590)}, expResult: 0},
		{name: "half paid", student: models.Student{EntranceScore: intPtr(590), TotalPaid: 250000}, expResult: 50},
		{name: "fully paid", student: models.Student{EntranceScore: intPtr(590), TotalPaid: 500000}, expResult: 100},
		{name: "rounding", student: models.Student{CustomFee: int64Ptr(3), TotalPaid: 1}, expResult: 33},
		{name: "zero fee nothing paid", student: models.Student{CustomFee: int64Ptr(0)}, expResult: 0},
		{name: "zero fee something paid", student: models.Student{CustomFee: int64Ptr(0), TotalPaid: 1}, expResult: 100},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Progress(&tc.student); got != tc.expResult {
				t.Fatalf("expected %d%%, got %d%%", tc.expResult, got)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{100000, "₹1,00,000"},
		{1000000, "₹10,00,000"},
		{12345678, "₹1,23,45,678"},
		{-500000, "-₹5,00,000"},
	}

	for _, tc := range tests {
		if got := FormatCurrency(tc.amount); got != tc.want {
			t.Errorf("FormatCurrency(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
