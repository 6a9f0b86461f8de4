// Package export serializes a session's result ledger as a delimited
// table and writes it next to the other run outputs.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mcquiz/internal/session"
)

// Columns is the fixed header of the results table.
var Columns = []string{"Question_ID", "Student_Answer", "Correct_Answer", "Points"}

// WriteCSV writes the ledger in append order with a header row.
func WriteCSV(w io.Writer, rows []session.ResultRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.QuestionID,
			row.StudentAnswer,
			row.CorrectAnswer,
			strconv.Itoa(row.PointsEarned),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Filename derives the results file name from a user identity. Every
// character outside [A-Za-z0-9] becomes an underscore.
func Filename(user string) string {
	var sanitized strings.Builder
	for _, r := range user {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sanitized.WriteRune(r)
		} else {
			sanitized.WriteRune('_')
		}
	}
	return sanitized.String() + "_results.csv"
}

// WriteFile writes the ledger CSV for user into dir, creating the
// directory when needed, and returns the written path.
func WriteFile(dir, user string, rows []session.ResultRow) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, Filename(user))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create results file: %w", err)
	}
	defer file.Close()
	if err := WriteCSV(file, rows); err != nil {
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close results file: %w", err)
	}
	return path, nil
}
