package storage

import (
	"bufio"
	"os"

	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// Newline-delimited JSON storage: one record per line for both input form
// responses and output events/diagnostics.

const maxLineBytes = 4 * 1024 * 1024

// ReadFormResponses reads canonical form responses from a JSONL file. Blank
// lines are skipped; a malformed line fails with its line number.
func ReadFormResponses(path string) ([]*models.FormResponse, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, exceptions.ErrStorage(err, "cannot open input file")
	}
	defer file.Close()

	var records []*models.FormResponse
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		record := &models.FormResponse{}
		if err := json.Unmarshal(line, record); err != nil {
			return nil, exceptions.ErrInvalidJSONLine(err, lineNum)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, exceptions.ErrStorage(err, "cannot read input file")
	}
	return records, nil
}

// ReadCanonicalSubmissions reads canonical form submissions (the upstream
// connector shape) from a JSONL file. Blank lines are skipped; a malformed
// line fails with its line number.
func ReadCanonicalSubmissions(path string) ([]*models.CanonicalFormSubmission, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, exceptions.ErrStorage(err, "cannot open input file")
	}
	defer file.Close()

	var records []*models.CanonicalFormSubmission
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		record := &models.CanonicalFormSubmission{}
		if err := json.Unmarshal(line, record); err != nil {
			return nil, exceptions.ErrInvalidJSONLine(err, lineNum)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, exceptions.ErrStorage(err, "cannot read input file")
	}
	return records, nil
}

// WriteEvents writes measurement events to a JSONL file and returns the
// number of records written.
func WriteEvents(path string, events []models.MeasurementEvent) (int, error) {
	records := make([]any, len(events))
	for i := range events {
		records[i] = &events[i]
	}
	return writeRecords(path, records)
}

// WriteDiagnostics writes form diagnostics to a JSONL file and returns the
// number of records written.
func WriteDiagnostics(path string, diagnostics []*models.FormDiagnostic) (int, error) {
	records := make([]any, len(diagnostics))
	for i := range diagnostics {
		records[i] = diagnostics[i]
	}
	return writeRecords(path, records)
}

func writeRecords(path string, records []any) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, exceptions.ErrStorage(err, "cannot create output file")
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	count := 0
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return count, exceptions.ErrStorage(err, "cannot marshal record")
		}
		if _, err := writer.Write(append(data, '\n')); err != nil {
			return count, exceptions.ErrStorage(err, "cannot write record")
		}
		count++
	}
	if err := writer.Flush(); err != nil {
		return count, exceptions.ErrStorage(err, "cannot flush output file")
	}
	return count, nil
}
