package controllers

import (
	"strconv"

	"srms_go/database"
	"srms_go/fees"
	"srms_go/ledger"
	"srms_go/middleware"
	"srms_go/models"
	"srms_go/permissions"
	"srms_go/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StudentController struct{}

// CreateStudentRequest represents the student creation request body
type CreateStudentRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	Gender        string `json:"gender"`
	City          string `json:"city"`
	DateOfBirth   string `json:"dob"`
	Group12       string `json:"group12"`
	EntranceScore *int   `json:"entrance_score"`
}

// UpdateStudentRequest represents editable profile fields. Pointer fields
// distinguish "absent" from "set to zero value".
type UpdateStudentRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Gender        *string `json:"gender"`
	City          *string `json:"city"`
	DateOfBirth   *string `json:"dob"`
	Group12       *string `json:"group12"`
	EntranceScore *int    `json:"entrance_score"`
	CustomFee     *int64  `json:"custom_fee"`
}

// feeSummary assembles the balance view callers re-read after a mutation
func feeSummary(student *models.Student) fiber.Map {
	breakdown := fees.CalculateDiscountedFee(student.EntranceScore)
	return fiber.Map{
		"fee_breakdown":     breakdown,
		"custom_fee":        student.CustomFee,
		"effective_fee":     fees.EffectiveFullFee(student),
		"total_paid":        student.TotalPaid,
		"remaining_balance": fees.RemainingBalance(student),
		"progress":          fees.Progress(student),
	}
}

// GetStudents returns all students with pagination
func (sc *StudentController) GetStudents(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	var students []models.Student
	var total int64

	query := database.DB.Model(&models.Student{})

	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if group := c.Query("group12"); group != "" {
		query = query.Where("group12 = ?", group)
	}

	query.Count(&total)

	if err := query.Order("created_at desc").
		Offset(offset).Limit(limit).Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch students",
		})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetStudent returns a specific student by ID. Students may only fetch
// their own record; teachers and superadmins may fetch any.
func (sc *StudentController) GetStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	var student models.Student
	if err := database.DB.Preload("Payments").First(&student, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return err
	}
	if claims.Role == permissions.RoleStudent && student.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Students may only view their own record",
		})
	}

	return c.JSON(fiber.Map{
		"student": student,
		"fees":    feeSummary(&student),
	})
}

// GetStudentByEmail returns a student looked up by email
func (sc *StudentController) GetStudentByEmail(c *fiber.Ctx) error {
	email := utils.NormalizeEmail(c.Params("email"))
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}

	var student models.Student
	if err := database.DB.Where("email = ?", email).First(&student).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	return c.JSON(fiber.Map{
		"student": student,
		"fees":    feeSummary(&student),
	})
}

// GetMyRecord returns the calling student's own record with fee summary
// and marks
func (sc *StudentController) GetMyRecord(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return err
	}

	var student models.Student
	if err := database.DB.Preload("Payments").
		Where("user_id = ?", claims.UserID).First(&student).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student record not found",
		})
	}

	marks, err := ledger.DecodeMarks(student.Marks)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read marks",
		})
	}

	return c.JSON(fiber.Map{
		"student": student,
		"marks":   marks,
		"fees":    feeSummary(&student),
	})
}

// CreateStudent creates a login identity and student record together.
// The 4-digit display id is generated here and never changes.
func (sc *StudentController) CreateStudent(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name, email, and password are required",
		})
	}
	if req.EntranceScore != nil && (*req.EntranceScore < 0 || *req.EntranceScore > 600) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Entrance score must be between 0 and 600",
		})
	}

	email := utils.NormalizeEmail(req.Email)

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email already exists",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	studentID, err := utils.GenerateStudentID(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate student ID",
		})
	}

	var student models.Student
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:     req.Name,
			Email:    email,
			Password: hashedPassword,
			Role:     permissions.RoleStudent,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		student = models.Student{
			UserID:        user.ID,
			StudentID:     studentID,
			Name:          req.Name,
			Email:         email,
			Phone:         req.Phone,
			Gender:        req.Gender,
			City:          req.City,
			DateOfBirth:   req.DateOfBirth,
			Group12:       req.Group12,
			EntranceScore: req.EntranceScore,
		}
		return tx.Create(&student).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create student",
		})
	}

	middleware.LogActivity(c, "CREATE", "students", student.ID, fiber.Map{
		"student_id": student.StudentID,
		"email":      student.Email,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Student created successfully",
		"student": student,
		"fees":    feeSummary(&student),
	})
}

// UpdateStudent updates profile fields of a student. Only a superadmin may
// change the custom fee; display id, email and totals are immutable here.
func (sc *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	var student models.Student
	if err := database.DB.First(&student, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.DateOfBirth != nil {
		updates["date_of_birth"] = *req.DateOfBirth
	}
	if req.Group12 != nil {
		updates["group12"] = *req.Group12
	}
	if req.EntranceScore != nil {
		if *req.EntranceScore < 0 || *req.EntranceScore > 600 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Entrance score must be between 0 and 600",
			})
		}
		updates["entrance_score"] = *req.EntranceScore
	}
	if req.CustomFee != nil {
		if claims.Role != permissions.RoleSuperadmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Only a superadmin may change the custom fee",
			})
		}
		if err := ledger.ValidateCustomFee(&student, *req.CustomFee); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		updates["custom_fee"] = *req.CustomFee
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No updatable fields provided",
		})
	}

	if err := database.DB.Model(&student).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update student",
		})
	}

	database.DB.First(&student, student.ID)

	middleware.LogActivity(c, "UPDATE", "students", student.ID, updates)

	return c.JSON(fiber.Map{
		"message": "Student updated successfully",
		"student": student,
		"fees":    feeSummary(&student),
	})
}

// UpdateMyProfile lets a student edit contact fields of their own record
func (sc *StudentController) UpdateMyProfile(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return err
	}

	var student models.Student
	if err := database.DB.Where("user_id = ?", claims.UserID).First(&student).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student record not found",
		})
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Contact details only - academic and fee fields stay staff-managed
	updates := map[string]interface{}{}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.DateOfBirth != nil {
		updates["date_of_birth"] = *req.DateOfBirth
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No updatable fields provided",
		})
	}

	if err := database.DB.Model(&student).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	database.DB.First(&student, student.ID)
	middleware.LogActivity(c, "UPDATE", "students", student.ID, updates)

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"student": student,
	})
}

// DeleteStudent deletes a student and the backing login identity
func (sc *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	var student models.Student
	if err := database.DB.First(&student, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", student.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&student).Error; err != nil {
			return err
		}
		// Cascade the login identity
		return tx.Where("id = ?", student.UserID).Delete(&models.User{}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete student",
		})
	}

	middleware.LogActivity(c, "DELETE", "students", student.ID, fiber.Map{
		"student_id": student.StudentID,
	})

	return c.JSON(fiber.Map{
		"message": "Student deleted successfully",
	})
}
