package fees

import (
	"fmt"
	"strings"

	"srms_go/models"
)

// BaseCourseFee is the full course fee in whole rupees before any discount.
const BaseCourseFee int64 = 1000000

// FeeBreakdown is the result of applying the discount policy to an
// entrance score.
type FeeBreakdown struct {
	OriginalFee        int64 `json:"original_fee"`
	DiscountPercentage int   `json:"discount_percentage"`
	DiscountAmount     int64 `json:"discount_amount"`
	FinalFee           int64 `json:"final_fee"`
}

// CalculateDiscountedFee computes the course fee for an entrance score.
// Tiers, first match wins: above 580 gets 50% off, above 550 gets 20% off,
// everything else (including a missing score) pays full fee.
func CalculateDiscountedFee(entranceScore *int) FeeBreakdown {
	discountPercentage := 0
	if entranceScore != nil {
		switch {
		case *entranceScore > 580:
			discountPercentage = 50
		case *entranceScore > 550:
			discountPercentage = 20
		}
	}

	discountAmount := BaseCourseFee * int64(discountPercentage) / 100
	return FeeBreakdown{
		OriginalFee:        BaseCourseFee,
		DiscountPercentage: discountPercentage,
		DiscountAmount:     discountAmount,
		FinalFee:           BaseCourseFee - discountAmount,
	}
}

// EffectiveFullFee returns the fee all balance arithmetic runs against:
// the custom fee when set, otherwise the policy-computed fee.
func EffectiveFullFee(s *models.Student) int64 {
	if s.CustomFee != nil {
		return *s.CustomFee
	}
	return CalculateDiscountedFee(s.EntranceScore).FinalFee
}

// RemainingBalance returns the effective full fee minus the total paid,
// floored at zero.
func RemainingBalance(s *models.Student) int64 {
	remaining := EffectiveFullFee(s) - s.TotalPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Progress returns the total paid as a percentage of the effective full
// fee, rounded and capped at 100. A zero fee is degenerate: anything paid
// counts as 100%, nothing paid as 0%.
func Progress(s *models.Student) int {
	fullFee := EffectiveFullFee(s)
	if fullFee <= 0 {
		if s.TotalPaid > 0 {
			return 100
		}
		return 0
	}
	pct := int((s.TotalPaid*100 + fullFee/2) / fullFee)
	if pct > 100 {
		return 100
	}
	return pct
}

// FormatCurrency renders an amount with Indian digit grouping, e.g.
// ₹10,00,000.
func FormatCurrency(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return sign + "₹" + strings.Join(groups, ",") + "," + tail
}
