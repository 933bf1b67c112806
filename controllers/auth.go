package controllers

import (
	"context"
	"strings"
	"time"

	"srms_go/database"
	"srms_go/middleware"
	"srms_go/models"
	"srms_go/permissions"
	"srms_go/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct{}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user by email and returns a JWT token
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	var user models.User
	if err := database.DB.Where("email = ?", utils.NormalizeEmail(req.Email)).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	if err := utils.CheckPassword(req.Password, user.Password); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	middleware.LogActivity(c, "LOGIN", "auth", user.ID, fiber.Map{
		"email": user.Email,
		"role":  user.Role,
	})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"landing_route":     permissions.DefaultLandingRoute(user.Role),
		"accessible_routes": permissions.AccessibleRoutes(user.Role),
	})
}

// GetProfile returns the current user's identity and linked record
func (ac *AuthController) GetProfile(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return err
	}

	resp := fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}

	switch user.Role {
	case permissions.RoleStudent:
		var student models.Student
		if err := database.DB.Where("user_id = ?", user.ID).First(&student).Error; err == nil {
			resp["student"] = student
		}
	case permissions.RoleTeacher:
		var teacher models.Teacher
		if err := database.DB.Where("user_id = ?", user.ID).First(&teacher).Error; err == nil {
			resp["teacher"] = teacher
		}
	}

	return c.JSON(fiber.Map{"user": resp})
}

// Logout invalidates the current JWT by storing it in the Redis blacklist
// for 24 hours
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing authorization header"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid authorization header format"})
	}

	if rc := database.GetRedisClient(); rc != nil {
		ctx := context.Background()
		key := "blacklist:jwt:" + tokenString
		if err := rc.Set(ctx, key, "1", 24*time.Hour).Err(); err != nil {
			middleware.LogActivity(c, "LOGOUT", "auth", 0, fiber.Map{"error": err.Error()})
		}
	}

	if user, err := middleware.GetCurrentUser(c); err == nil {
		middleware.LogActivity(c, "LOGOUT", "auth", user.ID, fiber.Map{"email": user.Email})
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
