package ledger

import (
	"encoding/json"
	"errors"
	"strings"

	"srms_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DecodeMarks unpacks a student's marks JSON column. A null column is an
// empty set.
func DecodeMarks(raw models.JSON) ([]models.SemesterMark, error) {
	if raw.IsNull() {
		return nil, nil
	}
	var marks []models.SemesterMark
	if err := json.Unmarshal(raw, &marks); err != nil {
		return nil, err
	}
	return marks, nil
}

// UpsertMarks replaces the entry for semester wholesale, or appends one if
// none exists. Subjects with blank names are dropped; out-of-range scores
// and semesters are rejected outright, never coerced.
func UpsertMarks(marks []models.SemesterMark, semester int, subjects []models.SubjectScore) ([]models.SemesterMark, error) {
	if semester < 1 || semester > 8 {
		return nil, ErrInvalidSemester
	}

	kept := make([]models.SubjectScore, 0, len(subjects))
	for _, sub := range subjects {
		name := strings.TrimSpace(sub.Subject)
		if name == "" {
			continue
		}
		if sub.Score < 0 || sub.Score > 100 {
			return nil, ErrInvalidScore
		}
		kept = append(kept, models.SubjectScore{Subject: name, Score: sub.Score})
	}

	entry := models.SemesterMark{Semester: semester, Subjects: kept}
	for i, m := range marks {
		if m.Semester == semester {
			out := make([]models.SemesterMark, len(marks))
			copy(out, marks)
			out[i] = entry
			return out, nil
		}
	}
	return append(marks, entry), nil
}

// RemoveMarks deletes the entry for semester, if present.
func RemoveMarks(marks []models.SemesterMark, semester int) []models.SemesterMark {
	out := marks[:0:0]
	for _, m := range marks {
		if m.Semester != semester {
			out = append(out, m)
		}
	}
	return out
}

// UpsertSemesterMarks loads the student, applies UpsertMarks and persists
// the result. Row-locked so concurrent upserts do not clobber each other's
// semesters.
func (r *Recorder) UpsertSemesterMarks(studentID uint, semester int, subjects []models.SubjectScore) (*models.Student, error) {
	var student models.Student
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&student, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		marks, err := DecodeMarks(student.Marks)
		if err != nil {
			return err
		}
		updated, err := UpsertMarks(marks, semester, subjects)
		if err != nil {
			return err
		}

		encoded, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		student.Marks = encoded
		return tx.Model(&student).Update("marks", models.JSON(encoded)).Error
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// DeleteSemesterMarks removes one semester's entry from the student's
// marks set.
func (r *Recorder) DeleteSemesterMarks(studentID uint, semester int) (*models.Student, error) {
	if semester < 1 || semester > 8 {
		return nil, ErrInvalidSemester
	}

	var student models.Student
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&student, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		marks, err := DecodeMarks(student.Marks)
		if err != nil {
			return err
		}
		encoded, err := json.Marshal(RemoveMarks(marks, semester))
		if err != nil {
			return err
		}
		student.Marks = encoded
		return tx.Model(&student).Update("marks", models.JSON(encoded)).Error
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}
