package controllers

import (
	"strconv"

	"srms_go/database"
	"srms_go/middleware"
	"srms_go/models"
	"srms_go/permissions"
	"srms_go/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TeacherController struct{}

// CreateTeacherRequest represents the teacher creation request body
type CreateTeacherRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Subject    string `json:"subject"`
	Department string `json:"department"`
}

// GetTeachers returns all teachers with pagination
func (tc *TeacherController) GetTeachers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	var teachers []models.Teacher
	var total int64

	query := database.DB.Model(&models.Teacher{})

	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}
	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject = ?", subject)
	}

	query.Count(&total)

	if err := query.Order("created_at desc").
		Offset(offset).Limit(limit).Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch teachers",
		})
	}

	return c.JSON(fiber.Map{
		"teachers": teachers,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetTeacher returns a specific teacher by ID
func (tc *TeacherController) GetTeacher(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid teacher ID",
		})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Teacher not found",
		})
	}

	return c.JSON(fiber.Map{
		"teacher": teacher,
	})
}

// CreateTeacher creates a login identity and teacher record together
func (tc *TeacherController) CreateTeacher(c *fiber.Ctx) error {
	var req CreateTeacherRequest
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

	var teacher models.Teacher
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:     req.Name,
			Email:    email,
			Password: hashedPassword,
			Role:     permissions.RoleTeacher,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		teacher = models.Teacher{
			UserID:     user.ID,
			Name:       req.Name,
			Email:      email,
			Subject:    req.Subject,
			Department: req.Department,
		}
		return tx.Create(&teacher).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create teacher",
		})
	}

	middleware.LogActivity(c, "CREATE", "teachers", teacher.ID, fiber.Map{
		"email": teacher.Email,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Teacher created successfully",
		"teacher": teacher,
	})
}

// UpdateTeacher updates a teacher's profile fields
func (tc *TeacherController) UpdateTeacher(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid teacher ID",
		})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Teacher not found",
		})
	}

	var req struct {
		Name       *string `json:"name"`
		Subject    *string `json:"subject"`
		Department *string `json:"department"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No updatable fields provided",
		})
	}

	if err := database.DB.Model(&teacher).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update teacher",
		})
	}

	database.DB.First(&teacher, teacher.ID)
	middleware.LogActivity(c, "UPDATE", "teachers", teacher.ID, updates)

	return c.JSON(fiber.Map{
		"message": "Teacher updated successfully",
		"teacher": teacher,
	})
}

// DeleteTeacher deletes a teacher and the backing login identity
func (tc *TeacherController) DeleteTeacher(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid teacher ID",
		})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Teacher not found",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&teacher).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", teacher.UserID).Delete(&models.User{}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete teacher",
		})
	}

	middleware.LogActivity(c, "DELETE", "teachers", teacher.ID, fiber.Map{
		"email": teacher.Email,
	})

	return c.JSON(fiber.Map{
		"message": "Teacher deleted successfully",
	})
}
