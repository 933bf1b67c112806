package ledger

import (
	"errors"
	"testing"

	"srms_go/models"
)

func TestUpsertMarksReplacesSemesterWholesale(t *testing.T) {
	marks, err := UpsertMarks(nil, 3, []models.SubjectScore{
		{Subject: "Math", Score: 85},
		{Subject: "Physics", Score: 70},
	})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	marks, err = UpsertMarks(marks, 3, []models.SubjectScore{
		{Subject: "Math", Score: 90},
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if len(marks) != 1 {
		t.Fatalf("expected one semester entry, got %d", len(marks))
	}
	got := marks[0]
	if got.Semester != 3 || len(got.Subjects) != 1 {
		t.Fatalf("semester 3 should hold exactly the second call's subjects, got %+v", got)
	}
	if got.Subjects[0].Subject != "Math" || got.Subjects[0].Score != 90 {
		t.Fatalf("expected Math=90, got %+v", got.Subjects[0])
	}
}

func TestUpsertMarksAppendsNewSemester(t *testing.T) {
	marks, _ := UpsertMarks(nil, 1, []models.SubjectScore{{Subject: "English", Score: 60}})
	marks, err := UpsertMarks(marks, 2, []models.SubjectScore{{Subject: "English", Score: 65}})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if len(marks) != 2 {
		t.Fatalf("expected two semester entries, got %d", len(marks))
	}
	if marks[0].Semester != 1 || marks[1].Semester != 2 {
		t.Fatalf("insertion order must be preserved, got %+v", marks)
	}
}

func TestUpsertMarksDropsBlankSubjects(t *testing.T) {
	marks, err := UpsertMarks(nil, 1, []models.SubjectScore{
		{Subject: "  ", Score: 50},
		{Subject: "", Score: 40},
		{Subject: " Chemistry ", Score: 88},
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if len(marks[0].Subjects) != 1 {
		t.Fatalf("blank subject names must be dropped, got %+v", marks[0].Subjects)
	}
	if marks[0].Subjects[0].Subject != "Chemistry" {
		t.Fatalf("subject names should be trimmed, got %q", marks[0].Subjects[0].Subject)
	}
}

func TestUpsertMarksValidation(t *testing.T) {
	tests := []struct {
		name     string
		semester int
		subjects []models.SubjectScore
		wantErr  error
	}{
		{name: "semester zero", semester: 0, wantErr: ErrInvalidSemester},
		{name: "semester nine", semester: 9, wantErr: ErrInvalidSemester},
		{name: "negative score", semester: 1, subjects: []models.SubjectScore{{Subject: "Math", Score: -1}}, wantErr: ErrInvalidScore},
		{name: "score above 100", semester: 1, subjects: []models.SubjectScore{{Subject: "Math", Score: 101}}, wantErr: ErrInvalidScore},
		{name: "boundary scores ok", semester: 8, subjects: []models.SubjectScore{{Subject: "Math", Score: 0}, {Subject: "Physics", Score: 100}}, wantErr: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := UpsertMarks(nil, tc.semester, tc.subjects)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRemoveMarks(t *testing.T) {
	marks, _ := UpsertMarks(nil, 1, []models.SubjectScore{{Subject: "Math", Score: 70}})
	marks, _ = UpsertMarks(marks, 2, []models.SubjectScore{{Subject: "Math", Score: 80}})

	marks = RemoveMarks(marks, 1)
	if len(marks) != 1 || marks[0].Semester != 2 {
		t.Fatalf("expected only semester 2 to survive, got %+v", marks)
	}

	// Removing a missing semester is a no-op.
	marks = RemoveMarks(marks, 5)
	if len(marks) != 1 {
		t.Fatalf("removing an absent semester should change nothing, got %+v", marks)
	}
}

func TestDecodeMarks(t *testing.T) {
	if marks, err := DecodeMarks(nil); err != nil || marks != nil {
		t.Fatalf("null column should decode to empty set, got %v / %v", marks, err)
	}

	raw := models.JSON(`[{"semester":3,"subjects":[{"subject":"Math","marks":85}]}]`)
	marks, err := DecodeMarks(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(marks) != 1 || marks[0].Subjects[0].Score != 85 {
		t.Fatalf("unexpected decode result: %+v", marks)
	}
}
