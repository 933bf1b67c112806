package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"srms_go/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a password with its hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// RandomStudentID returns a random 4-digit display id candidate (1000-9999).
func RandomStudentID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}

// GenerateStudentID returns a 4-digit display id not yet taken by any
// student. The id is assigned once at creation and never changes.
func GenerateStudentID(db *gorm.DB) (string, error) {
	for attempt := 0; attempt < 50; attempt++ {
		candidate, err := RandomStudentID()
		if err != nil {
			return "", err
		}
		var count int64
		if err := db.Model(&models.Student{}).
			Where("student_id = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not find a free student id")
}

// NormalizeEmail lowercases and trims an email for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SanitizeString removes dangerous characters from string
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	return strings.TrimSpace(input)
}
