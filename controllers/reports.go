package controllers

import (
	"fmt"
	"time"

	"srms_go/database"
	"srms_go/fees"
	"srms_go/middleware"
	"srms_go/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type ReportController struct{}

// ExportFeeReport streams an xlsx sheet with the fee status of every
// student: computed fee, discount, payments to date and progress.
func (rc *ReportController) ExportFeeReport(c *fiber.Ctx) error {
	var students []models.Student
	if err := database.DB.Order("student_id asc").Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch students",
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Fee Report"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{
		"Student ID", "Name", "Email", "Entrance Score",
		"Original Fee", "Discount %", "Final Fee", "Custom Fee",
		"Effective Fee", "Total Paid", "Remaining", "Progress %",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build report",
		})
	}

	for i := range students {
		s := &students[i]
		breakdown := fees.CalculateDiscountedFee(s.EntranceScore)

		score := ""
		if s.EntranceScore != nil {
			score = fmt.Sprintf("%d", *s.EntranceScore)
		}
		customFee := ""
		if s.CustomFee != nil {
			customFee = fmt.Sprintf("%d", *s.CustomFee)
		}

		row := []interface{}{
			s.StudentID, s.Name, s.Email, score,
			breakdown.OriginalFee, breakdown.DiscountPercentage, breakdown.FinalFee, customFee,
			fees.EffectiveFullFee(s), s.TotalPaid, fees.RemainingBalance(s), fees.Progress(s),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to build report",
			})
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to write report",
		})
	}

	middleware.LogActivity(c, "EXPORT", "reports", 0, fiber.Map{
		"students": len(students),
	})

	filename := fmt.Sprintf("fee-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf.Bytes())
}
