package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// User model - login identity backing students and teachers
type User struct {
	BaseModel
	Name     string `json:"name" gorm:"size:200;not null"`
	Email    string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:255;not null"`
	Role     string `json:"role" gorm:"size:50;not null;default:'student';type:enum('superadmin','teacher','student')"` // superadmin, teacher, student

	// Relationships
	Student *Student `json:"student,omitempty" gorm:"foreignKey:UserID"`
	Teacher *Teacher `json:"teacher,omitempty" gorm:"foreignKey:UserID"`
}

// Student model - aggregate root for fees and marks
type Student struct {
	BaseModel
	UserID    uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	StudentID string `json:"student_id" gorm:"size:4;not null;uniqueIndex"` // 4-digit display id, assigned once

	// Personal details
	Name        string `json:"name" gorm:"size:200;not null"`
	Email       string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Phone       string `json:"phone" gorm:"size:20"`
	Gender      string `json:"gender" gorm:"size:20"`
	City        string `json:"city" gorm:"size:100"`
	DateOfBirth string `json:"dob" gorm:"size:20"`

	// 12th class details
	Group12       string `json:"group12" gorm:"size:100"`
	EntranceScore *int   `json:"entrance_score"` // 0-600

	// Fees
	CustomFee *int64 `json:"custom_fee"` // overrides the policy-computed fee when set
	TotalPaid int64  `json:"total_paid" gorm:"not null;default:0"`

	// Semester marks, at most one entry per semester
	Marks JSON `json:"marks" gorm:"type:json"`

	// Relationships
	User     User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Payments []Payment `json:"payment_history,omitempty" gorm:"foreignKey:StudentID"`
}

// Payment model - one manually recorded payment against a student
type Payment struct {
	BaseModel
	StudentID  uint      `json:"student_id" gorm:"index;not null"`
	Amount     int64     `json:"amount" gorm:"not null"`
	PaidAt     time.Time `json:"paid_at" gorm:"not null"`
	Method     string    `json:"payment_method" gorm:"size:50;not null;default:'Manual';type:enum('Manual','Cash','Check','Bank Transfer','UPI','Card','Other')"`
	Remarks    string    `json:"remarks,omitempty" gorm:"size:500"`
	RecordedBy string    `json:"recorded_by,omitempty" gorm:"size:200"`
	ReceiptNo  string    `json:"receipt_no" gorm:"size:36;uniqueIndex"`
}

// Teacher model
type Teacher struct {
	BaseModel
	UserID     uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Name       string `json:"name" gorm:"size:200;not null"`
	Email      string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Subject    string `json:"subject" gorm:"size:100"`
	Department string `json:"department" gorm:"size:100"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// SemesterMark is one entry of a student's Marks JSON column.
type SemesterMark struct {
	Semester int            `json:"semester"`
	Subjects []SubjectScore `json:"subjects"`
}

// SubjectScore is a single (subject, score) pair inside a semester record.
type SubjectScore struct {
	Subject string `json:"subject"`
	Score   int    `json:"marks"`
}

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	UserID     uint   `json:"user_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
