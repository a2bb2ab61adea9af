package csvimport_test

import (
	"strings"
	"testing"

	"github.com/capstonehub/capstonehub/internal/app/features/admin/csvimport"
)

func TestParseStudents_WithHeader(t *testing.T) {
	in := strings.NewReader(
		"full_name,email,roll_no\n" +
			"Ada Student,ada@uni.edu,FA21-001\n" +
			"Bo Student,bo@uni.edu,fa21-002,temp-pass\n")

	result, err := csvimport.ParseStudents(in, 0)
	if err != nil {
		t.Fatalf("ParseStudents failed: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected row errors: %+v", result.Errors)
	}
	if len(result.Students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(result.Students))
	}

	first := result.Students[0]
	if first.Email != "ada@uni.edu" {
		t.Errorf("email not normalized: %q", first.Email)
	}
	if first.RollNo != "fa21-001" {
		t.Errorf("roll number not normalized: %q", first.RollNo)
	}
	if result.Students[1].TempPassword != "temp-pass" {
		t.Errorf("optional password not picked up: %q", result.Students[1].TempPassword)
	}
}

func TestParseStudents_RowErrors(t *testing.T) {
	in := strings.NewReader(
		"Ada Student,ada@uni.edu,fa21-001\n" +
			"No Email,not-an-email,fa21-002\n" +
			"Missing Roll,roll@uni.edu\n" +
			"Dup Email,ada@uni.edu,fa21-003\n")

	result, err := csvimport.ParseStudents(in, 0)
	if err != nil {
		t.Fatalf("ParseStudents failed: %v", err)
	}
	if len(result.Students) != 1 {
		t.Errorf("expected 1 valid student, got %d", len(result.Students))
	}
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 row errors, got %+v", result.Errors)
	}
	// Line numbers point at the offending rows.
	if result.Errors[0].Line != 2 || result.Errors[1].Line != 3 || result.Errors[2].Line != 4 {
		t.Errorf("wrong line numbers: %+v", result.Errors)
	}
}

func TestParseStudents_TooManyRows(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteString("Student Name,s")
		b.WriteByte(byte('0' + i))
		b.WriteString("@uni.edu,fa21-00")
		b.WriteByte(byte('0' + i))
		b.WriteString("\n")
	}

	_, err := csvimport.ParseStudents(strings.NewReader(b.String()), 3)
	if err != csvimport.ErrTooManyRows {
		t.Errorf("expected ErrTooManyRows, got %v", err)
	}
}

func TestParseSupervisors(t *testing.T) {
	in := strings.NewReader(
		"name,email address,designation,slots\n" +
			"Dr. Super,super@uni.edu,Professor,3\n" +
			"Dr. Bad Slots,bad@uni.edu,Lecturer,minus-one\n")

	result, err := csvimport.ParseSupervisors(in, 0)
	if err != nil {
		t.Fatalf("ParseSupervisors failed: %v", err)
	}
	if len(result.Supervisors) != 1 {
		t.Fatalf("expected 1 valid supervisor, got %d", len(result.Supervisors))
	}
	if result.Supervisors[0].Slots != 3 {
		t.Errorf("slots: got %d, want 3", result.Supervisors[0].Slots)
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 row error, got %+v", result.Errors)
	}
}

func TestParseStudents_BOMAndEmptyLines(t *testing.T) {
	in := strings.NewReader("\uFEFFAda Student,ada@uni.edu,fa21-001\n\n , , \n")

	result, err := csvimport.ParseStudents(in, 0)
	if err != nil {
		t.Fatalf("ParseStudents failed: %v", err)
	}
	if len(result.Students) != 1 || len(result.Errors) != 0 {
		t.Errorf("expected a single clean row, got %+v / %+v", result.Students, result.Errors)
	}
}
