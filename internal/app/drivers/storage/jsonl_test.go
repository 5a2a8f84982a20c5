package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFormResponses(t *testing.T) {
	t.Run("ReadsRecordsAndSkipsBlankLines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input.jsonl")
		content := strings.Join([]string{
			`{"form_id":"intake","form_submission_id":"sub-001","subject_id":"s1","timestamp":"2026-08-01T10:00:00Z","items":[{"field_key":"q1","answer":"several days"}]}`,
			``,
			`{"form_id":"intake","form_submission_id":"sub-002","subject_id":"s2","timestamp":"2026-08-01T11:00:00Z","items":[]}`,
		}, "\n")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		records, err := ReadFormResponses(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "sub-001", records[0].FormSubmissionID)
		require.Len(t, records[0].Items, 1)
		assert.Equal(t, "several days", records[0].Items[0].RawAnswer().Display())
		assert.Equal(t, "sub-002", records[1].FormSubmissionID)
	})

	t.Run("MalformedLineReportsLineNumber", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input.jsonl")
		content := `{"form_id":"intake","form_submission_id":"sub-001","subject_id":"s1","timestamp":"t","items":[]}` + "\n{not json}\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := ReadFormResponses(path)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindStorage))
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := ReadFormResponses(filepath.Join(t.TempDir(), "nope.jsonl"))
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindStorage))
	})
}

func TestReadCanonicalSubmissions(t *testing.T) {
	t.Run("ReadsRecords", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "submissions.jsonl")
		content := `{"form_id":"intake","submission_id":"resp-1","respondent":{"id":"subject-1"},"submitted_at":"2026-08-01T10:00:00Z","items":[{"field_id":"q1","raw_value":"several days"}]}` + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		records, err := ReadCanonicalSubmissions(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "resp-1", records[0].SubmissionID)
		assert.Equal(t, "subject-1", records[0].Respondent.ID)
		require.Len(t, records[0].Items, 1)
		assert.Equal(t, "q1", records[0].Items[0].FieldID)
	})

	t.Run("MalformedLineReportsLineNumber", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "submissions.jsonl")
		require.NoError(t, os.WriteFile(path, []byte("{broken\n"), 0o644))

		_, err := ReadCanonicalSubmissions(path)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindStorage))
		assert.Contains(t, err.Error(), "line 1")
	})
}

func TestWriteEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	events := []models.MeasurementEvent{
		{SchemaTag: "com.lifeos.measurement_event.v1", MeasurementEventID: "evt-1", MeasureID: "phq9"},
		{SchemaTag: "com.lifeos.measurement_event.v1", MeasurementEventID: "evt-2", MeasureID: "gad7"},
	}

	count, err := WriteEvents(path, events)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"measurement_event_id":"evt-1"`)
	assert.Contains(t, lines[1], `"measure_id":"gad7"`)
}

func TestWriteDiagnostics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnostics.jsonl")
	diagnostics := []*models.FormDiagnostic{{
		FormSubmissionID: "sub-001",
		FormID:           "intake",
		Status:           models.ProcessingSuccess,
	}}

	count, err := WriteDiagnostics(path, diagnostics)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"status":"success"`)
}
