package ledger

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"srms_go/fees"
	"srms_go/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Error kinds surfaced to callers. All are recoverable - the operation
// simply does not apply and must be resubmitted with corrected input.
var (
	ErrInvalidAmount    = errors.New("invalid payment amount")
	ErrInvalidMethod    = errors.New("unrecognized payment method")
	ErrNotFound         = errors.New("student not found")
	ErrInvalidSemester  = errors.New("semester must be between 1 and 8")
	ErrInvalidCustomFee = errors.New("custom fee must be a positive amount not below the total already paid")
	ErrInvalidScore     = errors.New("subject score must be between 0 and 100")
)

// ExceedsBalanceError rejects a payment larger than the remaining balance.
// It carries the exact remaining balance so callers can display it.
type ExceedsBalanceError struct {
	Remaining int64
}

func (e *ExceedsBalanceError) Error() string {
	return fmt.Sprintf("payment amount cannot exceed remaining balance of %s", fees.FormatCurrency(e.Remaining))
}

// DefaultMethod is used when a payment request does not name one.
const DefaultMethod = "Manual"

var paymentMethods = []string{"Manual", "Cash", "Check", "Bank Transfer", "UPI", "Card", "Other"}

// NormalizeMethod maps an incoming method string onto the enumerated set.
// Empty defaults to Manual; anything unrecognized is reported invalid.
func NormalizeMethod(method string) (string, bool) {
	if method == "" {
		return DefaultMethod, true
	}
	for _, m := range paymentMethods {
		if method == m {
			return m, true
		}
	}
	return "", false
}

const maxRemarksLength = 500

// truncateRemarks bounds remarks to maxRemarksLength bytes without
// splitting a multi-byte rune.
func truncateRemarks(s string) string {
	if len(s) <= maxRemarksLength {
		return s
	}
	cut := maxRemarksLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// RecordPaymentRequest carries the caller-supplied fields of one payment.
type RecordPaymentRequest struct {
	Amount     int64  `json:"amount"`
	Method     string `json:"payment_method"`
	Remarks    string `json:"remarks"`
	RecordedBy string `json:"recorded_by"`
}

// ValidatePayment checks a payment amount against a student's current
// balance without mutating anything. Returns ErrInvalidAmount for zero or
// negative amounts and ExceedsBalanceError when the amount is larger than
// the remaining balance.
func ValidatePayment(s *models.Student, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	remaining := fees.RemainingBalance(s)
	if amount > remaining {
		return &ExceedsBalanceError{Remaining: remaining}
	}
	return nil
}

// ValidateCustomFee checks a custom fee override against a student's
// payment state. The fee must be positive and may not undercut what has
// already been paid, which would leave the running total above the
// effective full fee.
func ValidateCustomFee(s *models.Student, fee int64) error {
	if fee <= 0 || fee < s.TotalPaid {
		return ErrInvalidCustomFee
	}
	return nil
}

// Recorder applies payments and marks updates against the record store.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// RecordPayment validates and appends a payment, incrementing the
// student's running total in the same transaction. The student row is
// locked for the duration so two in-flight payments cannot both pass the
// balance check; the payment insert and total_paid increment commit
// together or not at all.
func (r *Recorder) RecordPayment(studentID uint, req RecordPaymentRequest) (*models.Student, *models.Payment, error) {
	method, ok := NormalizeMethod(req.Method)
	if !ok {
		return nil, nil, ErrInvalidMethod
	}
	remarks := truncateRemarks(req.Remarks)

	var student models.Student
	var payment models.Payment

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&student, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := ValidatePayment(&student, req.Amount); err != nil {
			return err
		}

		payment = models.Payment{
			StudentID:  student.ID,
			Amount:     req.Amount,
			PaidAt:     time.Now(),
			Method:     method,
			Remarks:    remarks,
			RecordedBy: req.RecordedBy,
			ReceiptNo:  uuid.New().String(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if err := tx.Model(&student).
			Update("total_paid", gorm.Expr("total_paid + ?", req.Amount)).Error; err != nil {
			return err
		}
		student.TotalPaid += req.Amount
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &student, &payment, nil
}

// PaymentHistory returns a student's payments in insertion order together
// with the fee summary used for progress display.
func (r *Recorder) PaymentHistory(studentID uint) (*models.Student, []models.Payment, error) {
	var student models.Student
	if err := r.db.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var payments []models.Payment
	if err := r.db.Where("student_id = ?", studentID).
		Order("id asc").Find(&payments).Error; err != nil {
		return nil, nil, err
	}
	return &student, payments, nil
}
