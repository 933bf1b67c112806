package controllers

import (
	"errors"
	"strconv"

	"srms_go/database"
	"srms_go/ledger"
	"srms_go/middleware"
	"srms_go/permissions"

	"github.com/gofiber/fiber/v2"
)

type PaymentController struct{}

// RecordPayment appends a payment to a student's history and bumps the
// running total atomically. Rejections leave the record untouched.
func (pc *PaymentController) RecordPayment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	var req ledger.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.RecordedBy == "" {
		if user, err := middleware.GetCurrentUser(c); err == nil {
			req.RecordedBy = user.Name
		}
	}

	recorder := ledger.NewRecorder(database.DB)
	student, payment, err := recorder.RecordPayment(uint(id), req)
	if err != nil {
		var ebe *ledger.ExceedsBalanceError
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrInvalidMethod):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.As(err, &ebe):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":             ebe.Error(),
				"remaining_balance": ebe.Remaining,
			})
		case errors.Is(err, ledger.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to record payment",
			})
		}
	}

	middleware.LogActivity(c, "CREATE", "payments", payment.ID, fiber.Map{
		"student_id": student.StudentID,
		"amount":     payment.Amount,
		"method":     payment.Method,
		"receipt_no": payment.ReceiptNo,
	})

	return c.JSON(fiber.Map{
		"message": "Payment recorded successfully",
		"payment": payment,
		"student": student,
		"fees":    feeSummary(student),
	})
}

// GetPaymentHistory returns a student's payments in chronological order
// together with the balance summary. Students may only read their own.
func (pc *PaymentController) GetPaymentHistory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	recorder := ledger.NewRecorder(database.DB)
	student, payments, err := recorder.PaymentHistory(uint(id))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch payment history",
		})
	}

	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return err
	}
	if claims.Role == permissions.RoleStudent && student.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Students may only view their own payment history",
		})
	}

	return c.JSON(fiber.Map{
		"payment_history": payments,
		"fees":            feeSummary(student),
	})
}
