package ledger

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"srms_go/models"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestValidatePayment(t *testing.T) {
	// Entrance score 590 -> 50% off 10,00,000 -> full fee 5,00,000.
	student := func(paid int64) *models.Student {
		return &models.Student{EntranceScore: intPtr(590), TotalPaid: paid}
	}

	tests := []struct {
		name    string
		student *models.Student
		amount  int64
		wantErr error
	}{
		{name: "zero amount", student: student(0), amount: 0, wantErr: ErrInvalidAmount},
		{name: "negative amount", student: student(0), amount: -100, wantErr: ErrInvalidAmount},
		{name: "full fee in one payment", student: student(0), amount: 500000, wantErr: nil},
		{name: "partial payment", student: student(100000), amount: 400000, wantErr: nil},
		{name: "one rupee over", student: student(100000), amount: 400001, wantErr: &ExceedsBalanceError{}},
		{name: "anything after fully paid", student: student(500000), amount: 1, wantErr: &ExceedsBalanceError{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePayment(tc.student, tc.amount)
			switch tc.wantErr.(type) {
			case nil:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			case *ExceedsBalanceError:
				var ebe *ExceedsBalanceError
				if !errors.As(err, &ebe) {
					t.Fatalf("expected ExceedsBalanceError, got %v", err)
				}
			default:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
			}
		})
	}
}

func TestExceedsBalanceCarriesRemaining(t *testing.T) {
	s := &models.Student{CustomFee: int64Ptr(750000), TotalPaid: 700000}
	err := ValidatePayment(s, 60000)

	var ebe *ExceedsBalanceError
	if !errors.As(err, &ebe) {
		t.Fatalf("expected ExceedsBalanceError, got %v", err)
	}
	if ebe.Remaining != 50000 {
		t.Fatalf("expected remaining 50000, got %d", ebe.Remaining)
	}
	if !strings.Contains(ebe.Error(), "₹50,000") {
		t.Fatalf("error message should carry the remaining balance: %q", ebe.Error())
	}
}

func TestValidatePaymentCustomFeeOverride(t *testing.T) {
	// Custom fee overrides the policy fee for all balance arithmetic.
	s := &models.Student{EntranceScore: intPtr(590), CustomFee: int64Ptr(200000)}
	if err := ValidatePayment(s, 200000); err != nil {
		t.Fatalf("payment up to custom fee should pass: %v", err)
	}

	var ebe *ExceedsBalanceError
	if err := ValidatePayment(s, 200001); !errors.As(err, &ebe) {
		t.Fatalf("payment over custom fee should fail, got %v", err)
	}
}

func TestValidateCustomFee(t *testing.T) {
	tests := []struct {
		name    string
		paid    int64
		fee     int64
		wantErr bool
	}{
		{name: "zero fee", paid: 0, fee: 0, wantErr: true},
		{name: "negative fee", paid: 0, fee: -500, wantErr: true},
		{name: "fee below amount already paid", paid: 300000, fee: 250000, wantErr: true},
		{name: "fee equal to amount paid", paid: 300000, fee: 300000, wantErr: false},
		{name: "fee above amount paid", paid: 300000, fee: 750000, wantErr: false},
		{name: "fresh student any positive fee", paid: 0, fee: 1, wantErr: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s := &models.Student{TotalPaid: tc.paid}
			err := ValidateCustomFee(s, tc.fee)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidCustomFee) {
					t.Fatalf("expected ErrInvalidCustomFee, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTruncateRemarks(t *testing.T) {
	if got := truncateRemarks("short note"); got != "short note" {
		t.Fatalf("short remarks should pass through unchanged, got %q", got)
	}

	long := strings.Repeat("a", maxRemarksLength+10)
	if got := truncateRemarks(long); len(got) != maxRemarksLength {
		t.Fatalf("expected %d bytes, got %d", maxRemarksLength, len(got))
	}

	// A multi-byte rune straddling the limit must be dropped whole, never
	// cut mid-sequence.
	padded := strings.Repeat("a", maxRemarksLength-1) + "₹"
	got := truncateRemarks(padded)
	if len(got) > maxRemarksLength {
		t.Fatalf("truncated remarks exceed limit: %d bytes", len(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if got != strings.Repeat("a", maxRemarksLength-1) {
		t.Fatalf("expected the straddling rune dropped whole, got %d bytes", len(got))
	}
}

func TestNormalizeMethod(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"", "Manual", true},
		{"Manual", "Manual", true},
		{"Cash", "Cash", true},
		{"Bank Transfer", "Bank Transfer", true},
		{"UPI", "UPI", true},
		{"bitcoin", "", false},
		{"cash", "", false}, // case-sensitive enum
	}

	for _, tc := range tests {
		got, ok := NormalizeMethod(tc.input)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NormalizeMethod(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}
