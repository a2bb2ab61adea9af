// Package csvimport parses the CSV files admins upload to bulk-create
// student and supervisor accounts. Parsing is all-or-nothing per row:
// a bad row is reported with its line number and the rest of the file
// still imports.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/normalize"
)

// ErrTooManyRows is returned when the file exceeds the row limit.
var ErrTooManyRows = errors.New("csv file has too many rows")

// RowError describes why one CSV row was rejected.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Student is a validated student row: full_name,email,roll_no[,password].
// Line is the source line, kept so the importer can report database
// duplicates against the file.
type Student struct {
	Line         int
	FullName     string
	Email        string
	RollNo       string
	TempPassword string // empty means the importer generates one
}

// Supervisor is a validated supervisor row:
// full_name,email,designation,slots[,password].
type Supervisor struct {
	Line         int
	FullName     string
	Email        string
	Designation  string
	Slots        int
	TempPassword string
}

// StudentResult holds the outcome of parsing a student CSV.
type StudentResult struct {
	Students []Student
	Errors   []RowError
}

// SupervisorResult holds the outcome of parsing a supervisor CSV.
type SupervisorResult struct {
	Supervisors []Supervisor
	Errors      []RowError
}

// ParseStudents reads a student CSV. A header row is detected by the
// second column containing the word "email" and skipped. Returns
// ErrTooManyRows when maxRows > 0 is exceeded.
func ParseStudents(r io.Reader, maxRows int) (StudentResult, error) {
	var result StudentResult

	rows, errs, err := readRows(r, maxRows)
	if err != nil {
		return result, err
	}
	result.Errors = errs

	seenEmails := make(map[string]int)
	seenRolls := make(map[string]int)
	for _, row := range rows {
		if len(row.fields) < 3 {
			result.Errors = append(result.Errors, RowError{
				Line:   row.line,
				Reason: "row must have at least 3 fields (full_name, email, roll_no)",
			})
			continue
		}

		st := Student{
			Line:     row.line,
			FullName: strings.TrimSpace(row.fields[0]),
			Email:    normalize.Email(row.fields[1]),
			RollNo:   normalize.RollNo(row.fields[2]),
		}
		if len(row.fields) >= 4 {
			st.TempPassword = strings.TrimSpace(row.fields[3])
		}

		if st.FullName == "" {
			result.Errors = append(result.Errors, RowError{Line: row.line, Reason: "missing full name"})
			continue
		}
		if !inputval.IsValidEmail(st.Email) {
			result.Errors = append(result.Errors, RowError{Line: row.line, Reason: "invalid email format"})
			continue
		}
		if st.RollNo == "" {
			result.Errors = append(result.Errors, RowError{Line: row.line, Reason: "missing roll number"})
			continue
		}

		if first, dup := seenEmails[st.Email]; dup {
			result.Errors = append(result.Errors, RowError{
				Line:   row.line,
				Reason: fmt.Sprintf("duplicate email (first appears on line %d)", first),
			})
			continue
		}
		if first, dup := seenRolls[st.RollNo]; dup {
			result.Errors = append(result.Errors, RowError{
				Line:   row.line,
				Reason: fmt.Sprintf("duplicate roll number (first appears on line %d)", first),
			})
			continue
		}
		seenEmails[st.Email] = row.line
		seenRolls[st.RollNo] = row.line

		result.Students = append(result.Students, st)
	}

	return result, nil
}

// ParseSupervisors reads a supervisor CSV.
func ParseSupervisors(r io.Reader, maxRows int) (SupervisorResult, error) {
	var result SupervisorResult

	rows, errs, err := readRows(r, maxRows)
	if err != nil {
		return result, err
	}
	result.Errors = errs

	seenEmails := make(map[string]int)
	for _, row := range rows {
		if len(row.fields) < 4 {
			result.Errors = append(result.Errors, RowError{
				Line:   row.line,
				Reason: "row must have at least 4 fields (full_name, email, designation, slots)",
			})
			continue
		}

		sv := Supervisor{
			Line:        row.line,
			FullName:    strings.TrimSpace(row.fields[0]),
			Email:       normalize.Email(row.fields[1]),
			Designation: strings.TrimSpace(row.fields[2]),
		}
		if len(row.fields) >= 5 {
			sv.TempPassword = strings.TrimSpace(row.fields[4])
		}

		if sv.FullName == "" {
			result.Errors = append(result.Errors, RowError{Line: row.line, Reason: "missing full name"})
			continue
		}
		if !inputval.IsValidEmail(sv.Email) {
			result.Errors = append(result.Errors, RowError{Line: row.line, Reason: "invalid email format"})
			continue
		}

		slots, convErr := strconv.Atoi(strings.TrimSpace(row.fields[3]))
		if convErr != nil || slots < 0 {
			result.Errors = append(result.Errors, RowError{Line: row.line, Reason: "slots must be a non-negative integer"})
			continue
		}
		sv.Slots = slots

		if first, dup := seenEmails[sv.Email]; dup {
			result.Errors = append(result.Errors, RowError{
				Line:   row.line,
				Reason: fmt.Sprintf("duplicate email (first appears on line %d)", first),
			})
			continue
		}
		seenEmails[sv.Email] = row.line

		result.Supervisors = append(result.Supervisors, sv)
	}

	return result, nil
}

type rawRow struct {
	line   int
	fields []string
}

// readRows collects non-empty data rows, skipping a detected header and
// reporting unreadable lines as row errors.
func readRows(r io.Reader, maxRows int) ([]rawRow, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		rows    []rawRow
		rowErrs []RowError
		line    int
	)
	for {
		rec, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: err.Error()})
			continue
		}
		if len(rec) == 0 {
			continue
		}
		if line == 1 {
			rec[0] = strings.TrimPrefix(rec[0], "\uFEFF")
		}
		if isHeaderRow(rec) {
			continue
		}
		if allEmpty(rec) {
			continue
		}

		if maxRows > 0 && len(rows) >= maxRows {
			return nil, nil, ErrTooManyRows
		}
		rows = append(rows, rawRow{line: line, fields: rec})
	}

	return rows, rowErrs, nil
}

// isHeaderRow detects a header by header-like text in the second column
// instead of an email address. Header rows can appear anywhere, so
// concatenated CSV exports still parse.
func isHeaderRow(rec []string) bool {
	if len(rec) < 2 {
		return false
	}
	c0 := strings.ToLower(strings.TrimSpace(rec[0]))
	c1 := strings.ToLower(strings.TrimSpace(rec[1]))

	for _, hw := range []string{"full_name", "fullname", "full name", "name"} {
		if c0 == hw {
			return true
		}
	}
	return strings.Contains(c1, "email") && !strings.Contains(c1, "@")
}

func allEmpty(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
