package controllers

import (
	"errors"
	"strconv"

	"srms_go/database"
	"srms_go/ledger"
	"srms_go/middleware"
	"srms_go/models"

	"github.com/gofiber/fiber/v2"
)

type MarksController struct{}

// UpsertMarksRequest represents a semester marks submission
type UpsertMarksRequest struct {
	StudentID uint                  `json:"student_id"`
	Semester  int                   `json:"semester"`
	Subjects  []models.SubjectScore `json:"subjects"`
}

// GetMarks returns a name/email/marks projection of all students
func (mc *MarksController) GetMarks(c *fiber.Ctx) error {
	var students []models.Student
	if err := database.DB.Select("id", "student_id", "name", "email", "marks").
		Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch marks",
		})
	}

	out := make([]fiber.Map, 0, len(students))
	for i := range students {
		marks, err := ledger.DecodeMarks(students[i].Marks)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to read marks",
			})
		}
		out = append(out, fiber.Map{
			"id":         students[i].ID,
			"student_id": students[i].StudentID,
			"name":       students[i].Name,
			"email":      students[i].Email,
			"marks":      marks,
		})
	}

	return c.JSON(fiber.Map{"students": out})
}

// UpsertMarks replaces one semester's subject scores wholesale
func (mc *MarksController) UpsertMarks(c *fiber.Ctx) error {
	var req UpsertMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.StudentID == 0 || req.Semester == 0 || req.Subjects == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "student_id, semester and subjects are required",
		})
	}

	recorder := ledger.NewRecorder(database.DB)
	student, err := recorder.UpsertSemesterMarks(req.StudentID, req.Semester, req.Subjects)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidSemester), errors.Is(err, ledger.ErrInvalidScore):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, ledger.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save marks",
			})
		}
	}

	middleware.LogActivity(c, "UPDATE", "marks", student.ID, fiber.Map{
		"student_id": student.StudentID,
		"semester":   req.Semester,
	})

	marks, _ := ledger.DecodeMarks(student.Marks)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Marks saved successfully",
		"student": student,
		"marks":   marks,
	})
}

// DeleteMarks removes one semester's marks entry from a student
func (mc *MarksController) DeleteMarks(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}
	semester, err := strconv.Atoi(c.Params("semester"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid semester",
		})
	}

	recorder := ledger.NewRecorder(database.DB)
	student, err := recorder.DeleteSemesterMarks(uint(id), semester)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidSemester):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, ledger.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to delete marks",
			})
		}
	}

	middleware.LogActivity(c, "DELETE", "marks", student.ID, fiber.Map{
		"student_id": student.StudentID,
		"semester":   semester,
	})

	return c.JSON(fiber.Map{
		"message": "Marks deleted successfully",
	})
}
